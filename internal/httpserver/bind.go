package httpserver

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
)

var binder = &echo.DefaultBinder{}

// bindBody decodes the JSON body into dst. An unreadable body leaves dst at
// its zero value, which then fails the required field checks. The field that
// broke decoding is only logged.
func bindBody[T any](c echo.Context, dst *T) {
	err := binder.BindBody(c, dst)
	if err == nil {
		return
	}

	l := logging.FromContext(c.Request().Context())
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		l = l.With("field", typeErr.Field, "expected", typeErr.Type.String(), "got", typeErr.Value)
	}
	l.Warn("bind_body_failed", "error", err)

	var zero T
	*dst = zero
}

// pathID parses a non-negative integer path parameter.
func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
