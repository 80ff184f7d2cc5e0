package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
	"github.com/Skotchmaster/storefront/internal/session"
)

type Deps struct {
	DB       *gorm.DB
	Sessions session.Store

	Users    *UserHTTP
	Auth     *AuthHTTP
	Products *ProductHTTP
	Cart     *CartHTTP
	Vats     *VatHTTP

	SearchEnabled bool
	CSRF          *csrf.Config
}

// New builds the echo instance with the shared middleware chain and all
// routes mounted.
func New(logger *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	if d.CSRF != nil {
		e.Use(csrf.Middleware(*d.CSRF))
	}
	e.Use(session.Middleware(d.Sessions))

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)

	e.GET("/users", d.Users.ListUsers)
	e.POST("/users", d.Users.CreateUser)

	e.POST("/login", d.Auth.Login)
	e.GET("/login", d.Auth.CurrentUser)
	e.DELETE("/login", d.Auth.Logout)

	e.GET("/products", d.Products.ListProducts)
	e.POST("/products", d.Products.CreateProduct, auth.RequireLogin)
	if d.SearchEnabled {
		e.GET("/products/search", d.Products.SearchProducts)
	}
	e.GET("/products/:id", d.Products.GetProduct)
	e.DELETE("/products/:id", d.Products.DeleteProduct, auth.RequireLogin)

	cart := e.Group("/cart", auth.RequireLogin)
	cart.GET("", d.Cart.GetCart)
	cart.POST("", d.Cart.AddToCart)
	cart.DELETE("", d.Cart.RemoveFromCart)

	vats := e.Group("/vats", auth.RequireLogin)
	vats.GET("", d.Vats.ListVats)
	vats.POST("", d.Vats.CreateVat)
	vats.PUT("/:id", d.Vats.UpdateVat)
}

func (d *Deps) ready(c echo.Context) error {
	if d.DB == nil {
		return c.NoContent(http.StatusOK)
	}
	if err := db.Ping(c.Request().Context(), d.DB); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Database unavailable.").SetInternal(err)
	}
	return c.NoContent(http.StatusOK)
}
