package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/slimmom/diet-service/internal/api/metrics"
	"github.com/slimmom/diet-service/internal/core/ports"
)

// DietHandler serves calorie advice and the product catalog.
type DietHandler struct {
	service ports.DietService
}

func NewDietHandler(service ports.DietService) *DietHandler {
	return &DietHandler{service: service}
}

// Advise computes the daily calorie target for anonymous callers.
//
// @Summary      Daily calorie advice
// @Tags         diet
// @Accept       json
// @Produce      json
// @Param        body  body      dietRequest  true  "Body metrics"
// @Success      200   {object}  dataResponse{data=domain.DietAdvice}
// @Failure      400   {object}  messageResponse
// @Router       /diet/ [post]
func (h *DietHandler) Advise(c echo.Context) error {
	var req dietRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	advice, err := h.service.Advise(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	metrics.AdviceTotal.WithLabelValues(strconv.Itoa(req.BloodType), "false").Inc()

	return c.JSON(http.StatusOK, dataResponse{Status: http.StatusOK, Data: advice})
}

// AdviseForUser computes the advice and stores it on the caller's profile.
//
// @Summary      Daily calorie advice for the current user
// @Tags         diet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dietRequest  true  "Body metrics"
// @Success      200   {object}  dataResponse{data=domain.DietAdvice}
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /diet/users [post]
func (h *DietHandler) AdviseForUser(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req dietRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	advice, err := h.service.AdviseAndSave(c.Request().Context(), p.User.ID, req.toInput())
	if err != nil {
		return err
	}
	metrics.AdviceTotal.WithLabelValues(strconv.Itoa(req.BloodType), "true").Inc()

	return c.JSON(http.StatusOK, dataResponse{Status: http.StatusOK, Data: advice})
}

// SearchProducts looks products up by English title.
//
// @Summary      Search products
// @Tags         products
// @Produce      json
// @Param        search  query     string  false  "Case-insensitive title fragment"
// @Success      200     {object}  dataResponse{data=[]domain.Product}
// @Router       /products [get]
func (h *DietHandler) SearchProducts(c echo.Context) error {
	products, err := h.service.SearchProducts(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Status: http.StatusOK, Data: products})
}
