package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/slimmom/diet-service/internal/core/domain"
	"github.com/slimmom/diet-service/internal/core/ports"
	"github.com/slimmom/diet-service/pkg/logger"
)

// Auth resolves the bearer access token through authenticator and stores the
// resulting principal in the request context. Every failure is a 401.
func Auth(authenticator ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
			}

			req := c.Request()
			p, err := authenticator.Authenticate(req.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.FromContext(req.Context()).Error().Err(err).Msg("authenticate")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
			}

			c.SetRequest(req.WithContext(domain.WithPrincipal(req.Context(), p)))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
