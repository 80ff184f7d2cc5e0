package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/session"
)

const MsgAuthRequired = "Authentication required."

// RequireLogin stops anonymous requests before the handler reads the body.
// It expects session.Middleware to have run.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if !session.FromContext(ctx).Authenticated() {
			logging.FromContext(ctx).Warn("auth_required", "status", http.StatusUnauthorized, "path", c.Path())
			return echo.NewHTTPError(http.StatusUnauthorized, MsgAuthRequired)
		}
		return next(c)
	}
}

// UserID returns the id of the logged-in user of the request.
func UserID(c echo.Context) int64 {
	return session.FromContext(c.Request().Context()).UserID
}
