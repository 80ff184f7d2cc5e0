package httpserver

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/models"
)

func cartItems(t *testing.T, env *testEnv) []models.CartItem {
	t.Helper()
	rec := env.do(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var items []models.CartItem
	decode(t, rec, &items)
	return items
}

func TestCartRequiresLoginBeforeBody(t *testing.T) {
	env := newTestEnv(t)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		rec := env.do(method, "/cart", "{broken")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, auth.MsgAuthRequired, message(t, rec))
	}
}

func TestAddToCartAccumulates(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()
	p := env.createProduct("Tea", 2.5)

	require.Empty(t, cartItems(t, env))

	rec := env.do(http.MethodPost, "/cart", map[string]any{"product_id": p.ID, "amount": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, MsgCartUpdated, message(t, rec))

	rec = env.do(http.MethodPost, "/cart", map[string]any{"product_id": p.ID, "amount": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	items := cartItems(t, env)
	require.Len(t, items, 1)
	require.Equal(t, p.ID, items[0].ProductID)
	require.Equal(t, "Tea", items[0].ProductName)
	require.Equal(t, 5, items[0].Amount)
	require.NotNil(t, items[0].TotalPrice)
	require.InDelta(t, 12.5, *items[0].TotalPrice, 1e-9)

	require.Len(t, env.Events.ofType("cart_item_added"), 2)
}

func TestAddToCartDefaultsAndCoercion(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()
	p := env.createProduct("Tea", 1)

	rec := env.do(http.MethodPost, "/cart", map[string]any{"product_id": p.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/cart", map[string]any{"product_id": strconv.FormatInt(p.ID, 10), "amount": "4"})
	require.Equal(t, http.StatusOK, rec.Code)

	items := cartItems(t, env)
	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Amount)
}

func TestAddToCartValidation(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()
	p := env.createProduct("Tea", 1)

	cases := []struct {
		name string
		body any
		msg  string
	}{
		{"missing product", map[string]any{"amount": 1}, "Please provide product_id."},
		{"zero product", map[string]any{"product_id": 0}, "Please provide product_id."},
		{"empty body", "", "Please provide product_id."},
		{"text product", map[string]any{"product_id": "tea"}, "Product id must be an integer."},
		{"fractional product", map[string]any{"product_id": 1.5, "amount": 2}, "Product id must be an integer."},
		{"boolean product", map[string]any{"product_id": true}, "Product id must be an integer."},
		{"text amount", map[string]any{"product_id": p.ID, "amount": "lots"}, "Amount must be an integer."},
		{"null amount", map[string]any{"product_id": p.ID, "amount": nil}, "Amount must be an integer."},
		{"zero amount", map[string]any{"product_id": p.ID, "amount": 0}, "Amount must be greater than 0."},
		{"negative amount", map[string]any{"product_id": p.ID, "amount": -2}, "Amount must be greater than 0."},
	}
	for _, tc := range cases {
		rec := env.do(http.MethodPost, "/cart", tc.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, tc.name)
		require.Equal(t, tc.msg, message(t, rec), tc.name)
	}
	require.Empty(t, cartItems(t, env))
}

func TestAddUnknownProductToCart(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()

	rec := env.do(http.MethodPost, "/cart", map[string]any{"product_id": 99, "amount": 1})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "No product found with id 99.", message(t, rec))
	require.Empty(t, cartItems(t, env))
}

func TestRemoveFromCart(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()
	p := env.createProduct("Tea", 1)

	rec := env.do(http.MethodPost, "/cart", map[string]any{"product_id": p.ID, "amount": 5})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodDelete, "/cart", map[string]any{"product_id": p.ID, "amount": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, MsgCartUpdated, message(t, rec))

	items := cartItems(t, env)
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Amount)

	rec = env.do(http.MethodDelete, "/cart", map[string]any{"product_id": p.ID, "amount": 10})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, cartItems(t, env))

	rec = env.do(http.MethodDelete, "/cart", map[string]any{"product_id": p.ID})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, MsgNotInCart, message(t, rec))

	require.Len(t, env.Events.ofType("cart_item_removed"), 2)
}

func TestRemoveFromCartValidation(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()
	p := env.createProduct("Tea", 1)

	rec := env.do(http.MethodPost, "/cart", map[string]any{"product_id": p.ID, "amount": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	cases := []struct {
		body any
		msg  string
	}{
		{map[string]any{"product_id": p.ID, "amount": 0}, "Amount must be greater than 0."},
		{map[string]any{"amount": 1}, "Please provide product_id."},
		{map[string]any{"product_id": float64(p.ID) + 0.9, "amount": 5}, "Product id must be an integer."},
	}
	for _, tc := range cases {
		rec := env.do(http.MethodDelete, "/cart", tc.body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, tc.msg, message(t, rec))
	}

	items := cartItems(t, env)
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Amount)
	require.Empty(t, env.Events.ofType("cart_item_removed"))
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()
	p := env.createProduct("Tea", 1)

	rec := env.do(http.MethodPost, "/cart", map[string]any{"product_id": p.ID, "amount": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	env.register("Other", "other@x.com", "pw")
	env.login("other@x.com", "pw")
	require.Empty(t, cartItems(t, env))

	rec = env.do(http.MethodDelete, "/cart", map[string]any{"product_id": p.ID})
	require.Equal(t, http.StatusNotFound, rec.Code)

	env.login("shopper@x.com", "pw")
	items := cartItems(t, env)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Amount)
}

func TestCartLineSurvivesProductDeletion(t *testing.T) {
	env := newTestEnv(t)
	env.signIn()
	p := env.createProduct("Tea", 1)

	rec := env.do(http.MethodPost, "/cart", map[string]any{"product_id": p.ID, "amount": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodDelete, "/products/"+strconv.FormatInt(p.ID, 10), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Empty(t, cartItems(t, env))
}
