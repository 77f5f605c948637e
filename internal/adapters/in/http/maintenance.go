package http

import (
	"net/http"

	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// maintenanceGuard rejects mutating requests with 503 while the admin settings
// have maintenance mode on. Reads always pass. If the settings cannot be read
// the request is let through.
func (s *Server) maintenanceGuard(settings ports.SettingsProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			current, err := settings.Current(c.Request().Context())
			if err != nil {
				s.logger.WarnContext(c.Request().Context(), "maintenance check skipped", "error", err)
				return next(c)
			}
			if current.MaintenanceMode {
				return c.JSON(http.StatusServiceUnavailable, Error{
					Code:    http.StatusServiceUnavailable,
					Message: "Service is in maintenance mode",
				})
			}
			return next(c)
		}
	}
}
