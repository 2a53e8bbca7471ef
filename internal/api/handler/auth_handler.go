package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/slimmom/diet-service/internal/api/metrics"
	"github.com/slimmom/diet-service/internal/core/domain"
	"github.com/slimmom/diet-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{
		Status:  http.StatusCreated,
		Message: "Registration successful",
	})
}

// Login authenticates a user and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  dataResponse{data=domain.TokenPair}
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthLoginsTotal.WithLabelValues(resultOf(err, domain.ErrInvalidCredentials)).Inc()
		return err
	}
	metrics.AuthLoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.SessionsIssuedTotal.Inc()

	return c.JSON(http.StatusOK, dataResponse{Status: http.StatusOK, Data: pair})
}

// Refresh exchanges a refresh token for a new token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  dataResponse{data=domain.TokenPair}
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		metrics.AuthRefreshTotal.WithLabelValues(resultOf(err, domain.ErrUnauthorized)).Inc()
		return err
	}
	metrics.AuthRefreshTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.SessionsIssuedTotal.Inc()

	return c.JSON(http.StatusOK, dataResponse{Status: http.StatusOK, Data: pair})
}

// Logout ends the session named by the refresh token, or the caller's
// current session when the body is empty.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  logoutRequest  false  "Refresh token of the session to end"
// @Success      204
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.authService.Logout(c.Request().Context(), ports.LogoutInput{
		RefreshToken: req.RefreshToken,
		SessionID:    p.SessionID,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Daily lists the users registered on a calendar day.
//
// @Summary      Users registered on a day
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  true  "Day in YYYY-MM-DD form (UTC)"
// @Success      200   {object}  dataResponse{data=[]domain.User}
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/daily [get]
func (h *AuthHandler) Daily(c echo.Context) error {
	raw := c.QueryParam("date")
	if raw == "" {
		return domain.NewValidationError("date is required")
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return domain.NewValidationError("date must be in YYYY-MM-DD format")
	}

	users, err := h.authService.UsersCreatedOn(c.Request().Context(), day)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, dataResponse{Status: http.StatusOK, Data: users})
}

// resultOf classifies a failed auth call: rejected is a client failure,
// anything else an internal error.
func resultOf(err, rejected error) string {
	if errors.Is(err, rejected) || errors.Is(err, domain.ErrValidation) {
		return metrics.ResultFailure
	}
	return metrics.ResultError
}
