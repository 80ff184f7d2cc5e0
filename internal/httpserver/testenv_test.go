package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db/dbtest"
	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/session"
)

type publishedEvent struct {
	Topic string
	Key   string
	Event mykafka.Event
}

type eventRecorder struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (r *eventRecorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, publishedEvent{Topic: topic, Key: key, Event: event.(mykafka.Event)})
	return nil
}

func (r *eventRecorder) Close() error { return nil }

func (r *eventRecorder) ofType(typ string) []publishedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []publishedEvent
	for _, ev := range r.events {
		if ev.Event.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

type fakeIndex struct {
	mu       sync.Mutex
	products map[int64]models.Product
	deleted  []int64
	searches [][2]int
}

func (f *fakeIndex) IndexProduct(_ context.Context, p models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ID] = p
	return nil
}

func (f *fakeIndex) DeleteProduct(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, query string, from, size int) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, [2]int{from, size})
	out := []models.Product{}
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Events *eventRecorder
	Index  *fakeIndex

	jar []*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, hash.Plain{})
}

func newTestEnvWith(t *testing.T, passwords hash.Scheme) *testEnv {
	t.Helper()

	gdb := dbtest.New(t)
	gw := repo.NewGateway(gdb)
	events := &eventRecorder{}
	index := &fakeIndex{products: map[int64]models.Product{}}

	store, err := session.NewCookieStore([]byte("test-secret"), false)
	require.NoError(t, err)

	users := &service.UserService{Gateway: gw, Passwords: passwords, Events: events}
	deps := &Deps{
		DB:            gdb,
		Sessions:      store,
		Users:         &UserHTTP{Svc: users},
		Auth:          &AuthHTTP{Svc: users, Sessions: store},
		Products:      &ProductHTTP{Svc: &service.ProductService{Gateway: gw, Events: events, Search: index}},
		Cart:          &CartHTTP{Svc: &service.CartService{Gateway: gw, Events: events}},
		Vats:          &VatHTTP{Svc: &service.VatService{Gateway: gw, Events: events}},
		SearchEnabled: true,
	}

	return &testEnv{
		T:      t,
		E:      New(logging.Discard(), deps),
		DB:     gdb,
		Events: events,
		Index:  index,
	}
}

// do sends a request through the full middleware chain and keeps the
// session cookie between calls like a browser would. A string body is sent
// as is, anything else is JSON encoded.
func (env *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(env.T, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range env.jar {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name != session.DefaultCookieName {
			continue
		}
		if ck.Value == "" || ck.MaxAge < 0 {
			env.jar = nil
		} else {
			env.jar = []*http.Cookie{{Name: ck.Name, Value: ck.Value}}
		}
	}
	return rec
}

func (env *testEnv) register(name, email, password string) models.User {
	env.T.Helper()
	rec := env.do(http.MethodPost, "/users", map[string]string{"name": name, "email": email, "password": password})
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		User models.User `json:"user"`
	}
	decode(env.T, rec, &resp)
	return resp.User
}

func (env *testEnv) login(email, password string) {
	env.T.Helper()
	rec := env.do(http.MethodPost, "/login", map[string]string{"email": email, "password": password})
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())
}

// signIn registers a fresh user and logs in as them.
func (env *testEnv) signIn() models.User {
	env.T.Helper()
	u := env.register("Shopper", "shopper@x.com", "pw")
	env.login("shopper@x.com", "pw")
	return u
}

func (env *testEnv) createProduct(name string, price float64) models.Product {
	env.T.Helper()
	rec := env.do(http.MethodPost, "/products", map[string]any{
		"name": name, "price": price, "stock": 10, "currency": "SEK", "vat": 1,
	})
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Product models.Product `json:"product"`
	}
	decode(env.T, rec, &resp)
	return resp.Product
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, rec, &body)
	return body.Message
}
