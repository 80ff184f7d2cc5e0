package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const (
	MsgInvalidCredentials = "Invalid email or password."
	MsgLoginSuccessful    = "Login successful."
	MsgNotLoggedIn        = "No user is logged in."
	MsgUserNotFound       = "User not found."
	MsgLoggedOut          = "Logged out."
)

type AuthHTTP struct {
	Svc      *service.UserService
	Sessions session.Store
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	bindBody(c, &req)

	user, err := h.Svc.Authenticate(ctx, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			l.Warn("login_failed", "status", 400, "reason", msg)
			return echo.NewHTTPError(http.StatusBadRequest, msg)
		}
		if errors.Is(err, service.ErrUnauthorized) {
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidCredentials)
		}
		l.Error("login_failed", "status", 500, "error", err)
		return internalError(err)
	}

	sess := session.Session{UserID: user.ID, UserName: user.Name, UserEmail: user.Email}
	if err := session.Set(c, h.Sessions, sess); err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot save session", "error", err)
		return internalError(err)
	}

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.UserResponse{Message: MsgLoginSuccessful, User: user})
}

// CurrentUser re-reads the session user. A session pointing at a deleted
// user is cleared.
func (h *AuthHTTP) CurrentUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.current_user")

	sess := session.FromContext(ctx)
	if !sess.Authenticated() {
		return echo.NewHTTPError(http.StatusUnauthorized, MsgNotLoggedIn)
	}

	user, err := h.Svc.Get(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("current_user_failed", "status", 401, "reason", "stale session", "user_id", sess.UserID)
			if err := session.Reset(c, h.Sessions); err != nil {
				return internalError(err)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, MsgUserNotFound)
		}
		l.Error("current_user_failed", "status", 500, "error", err)
		return internalError(err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	if err := session.Reset(c, h.Sessions); err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: MsgLoggedOut})
}
