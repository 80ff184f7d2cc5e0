package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type VatHTTP struct {
	Svc *service.VatService
}

func (h *VatHTTP) ListVats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vats.list")

	vats, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_vats_failed", "status", 500, "error", err)
		return internalError(err)
	}
	return c.JSON(http.StatusOK, vats)
}

func (h *VatHTTP) CreateVat(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vats.create")

	var req transport.VatRequest
	bindBody(c, &req)

	vat, err := h.Svc.Create(ctx, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			l.Warn("create_vat_failed", "status", 400, "reason", msg)
			return echo.NewHTTPError(http.StatusBadRequest, msg)
		}
		l.Error("create_vat_failed", "status", 500, "error", err)
		return internalError(err)
	}

	return c.JSON(http.StatusCreated, transport.VatResponse{
		Message: fmt.Sprintf("vats '%s' was created successfully.", vat.Description),
		Vat:     &vat,
	})
}

// UpdateVat answers 201 like the create route; existing clients depend on it.
func (h *VatHTTP) UpdateVat(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vats.update")

	id, ok := pathID(c)
	if !ok {
		return echo.ErrNotFound
	}

	var req transport.VatRequest
	bindBody(c, &req)

	if err := h.Svc.Update(ctx, id, req); err != nil {
		if msg, ok := validationMessage(err); ok {
			l.Warn("update_vat_failed", "status", 400, "reason", msg)
			return echo.NewHTTPError(http.StatusBadRequest, msg)
		}
		l.Error("update_vat_failed", "status", 500, "error", err)
		return internalError(err)
	}

	return c.JSON(http.StatusCreated, transport.VatResponse{
		Message: fmt.Sprintf("vats '%s' was updated successfully.", req.Description),
	})
}
