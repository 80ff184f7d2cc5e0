package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const (
	MsgCartUpdated = "Cart updated."
	MsgNotInCart   = "Product is not in cart."
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	items, err := h.Svc.Items(ctx, auth.UserID(c))
	if err != nil {
		l.Error("get_cart_failed", "status", 500, "error", err)
		return internalError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.CartRequest
	bindBody(c, &req)

	change, err := h.Svc.Add(ctx, auth.UserID(c), req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			l.Warn("add_to_cart_failed", "status", 400, "reason", msg)
			return echo.NewHTTPError(http.StatusBadRequest, msg)
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("add_to_cart_failed", "status", 404, "product_id", change.ProductID)
			return echo.NewHTTPError(http.StatusNotFound, noProduct(change.ProductID))
		}
		l.Error("add_to_cart_failed", "status", 500, "error", err)
		return internalError(err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: MsgCartUpdated})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	var req transport.CartRequest
	bindBody(c, &req)

	change, err := h.Svc.Remove(ctx, auth.UserID(c), req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			l.Warn("remove_from_cart_failed", "status", 400, "reason", msg)
			return echo.NewHTTPError(http.StatusBadRequest, msg)
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_from_cart_failed", "status", 404, "product_id", change.ProductID)
			return echo.NewHTTPError(http.StatusNotFound, MsgNotInCart)
		}
		l.Error("remove_from_cart_failed", "status", 500, "error", err)
		return internalError(err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: MsgCartUpdated})
}
