package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

func noProduct(id int64) string {
	return fmt.Sprintf("No product found with id %d.", id)
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.list")

	products, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return internalError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.get")

	id, ok := pathID(c)
	if !ok {
		return echo.ErrNotFound
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, noProduct(id))
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return internalError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.create")

	var req transport.CreateProductRequest
	bindBody(c, &req)

	product, err := h.Svc.Create(ctx, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			l.Warn("create_product_failed", "status", 400, "reason", msg)
			return echo.NewHTTPError(http.StatusBadRequest, msg)
		}
		l.Error("create_product_failed", "status", 500, "error", err)
		return internalError(err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, transport.ProductResponse{
		Message: fmt.Sprintf("Product '%s' was created successfully.", product.Name),
		Product: product,
	})
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.delete")

	id, ok := pathID(c)
	if !ok {
		return echo.ErrNotFound
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		l.Error("delete_product_failed", "status", 500, "error", err)
		return internalError(err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: fmt.Sprintf("Product with id %d was deleted.", id),
	})
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.search")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("limit"))
	products, err := h.Svc.Find(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return echo.NewHTTPError(http.StatusBadRequest, msg)
		}
		l.Error("search_products_failed", "status", 500, "error", err)
		return internalError(err)
	}
	return c.JSON(http.StatusOK, products)
}
