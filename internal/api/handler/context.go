package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/slimmom/diet-service/internal/core/domain"
)

// principal returns the identity the Auth middleware attached to the request.
// A missing principal means the route was mounted without the middleware.
func principal(c echo.Context) (*domain.Principal, error) {
	p, ok := domain.PrincipalFromContext(c.Request().Context())
	if !ok || p.User == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}
	return p, nil
}
