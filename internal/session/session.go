// Package session keeps the logged-in user of a client between requests.
package session

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
)

type Session struct {
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

func (s Session) Authenticated() bool {
	return s.UserID != 0
}

type Store interface {
	Load(c echo.Context) (Session, error)
	Save(c echo.Context, s Session) error
	Clear(c echo.Context) error
}

type ctxKey struct{}

func IntoContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the anonymous session when none was loaded.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(ctxKey{}).(Session)
	return s
}

// Middleware loads the client's session once per request and exposes it
// through the request context.
func Middleware(store Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			s, err := store.Load(c)
			if err != nil {
				logging.FromContext(ctx).Error("session_load_failed", "error", err)
				return err
			}
			if s.Authenticated() {
				l := logging.FromContext(ctx).With("user_id", s.UserID)
				ctx = logging.IntoContext(ctx, l)
			}

			c.SetRequest(c.Request().WithContext(IntoContext(ctx, s)))
			return next(c)
		}
	}
}

// Set replaces the session of the current request as well as the stored one.
func Set(c echo.Context, store Store, s Session) error {
	if err := store.Save(c, s); err != nil {
		return err
	}
	c.SetRequest(c.Request().WithContext(IntoContext(c.Request().Context(), s)))
	return nil
}

func Reset(c echo.Context, store Store) error {
	if err := store.Clear(c); err != nil {
		return err
	}
	c.SetRequest(c.Request().WithContext(IntoContext(c.Request().Context(), Session{})))
	return nil
}
