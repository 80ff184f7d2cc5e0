package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const (
	MsgEmailTaken  = "Email already registered."
	MsgUserCreated = "User created successfully."
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	users, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_users_failed", "status", 500, "error", err)
		return internalError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.create")

	var req transport.CreateUserRequest
	bindBody(c, &req)

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			l.Warn("create_user_failed", "status", 400, "reason", msg)
			return echo.NewHTTPError(http.StatusBadRequest, msg)
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("create_user_failed", "status", 409, "reason", "email taken")
			return echo.NewHTTPError(http.StatusConflict, MsgEmailTaken)
		}
		l.Error("create_user_failed", "status", 500, "error", err)
		return internalError(err)
	}

	l.Info("create_user_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.UserResponse{Message: MsgUserCreated, User: user})
}
