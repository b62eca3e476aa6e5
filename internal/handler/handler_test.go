package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/equipment-rental/internal/config"
	"github.com/iliyamo/equipment-rental/internal/handler"
	"github.com/iliyamo/equipment-rental/internal/middleware"
	"github.com/iliyamo/equipment-rental/internal/payment"
	"github.com/iliyamo/equipment-rental/internal/router"
	"github.com/iliyamo/equipment-rental/internal/store"
)

// testApp wires the full route table against an in-memory processor, so
// tests exercise the same middleware chain as production.
type testApp struct {
	e     *echo.Echo
	store *store.Store
	proc  *payment.MemoryProcessor
	cfg   config.Config
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := config.Config{
		Env:             "test",
		Port:            "0",
		SessionSecret:   "test-secret",
		SessionTTLMin:   60,
		BcryptCost:      4,
		PaymentProvider: config.ProviderMock,
		StripePublicKey: "pk_test_123",
		PaymentMinCents: 50,
		Currency:        "usd",
	}
	for _, m := range mutate {
		m(&cfg)
	}

	st := store.New()
	require.NoError(t, store.Seed(st, cfg.BcryptCost))
	proc := payment.NewMemoryProcessor()
	zlog := zap.NewNop()

	e := echo.New()
	router.Register(e, router.Handlers{
		Meta:      handler.NewMetaHandler(cfg),
		Auth:      handler.NewAuthHandler(cfg, st, zlog),
		Equipment: handler.NewEquipmentHandler(st, cfg.Currency, zlog),
		Booking:   handler.NewBookingHandler(cfg, st, proc, zlog),
	}, st, cfg.SessionSecret, nil)

	return &testApp{e: e, store: st, proc: proc, cfg: cfg}
}

// do performs one request against the app.  A non-nil cookie is attached
// as the session cookie.
func (a *testApp) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// login authenticates and returns the session cookie.
func (a *testApp) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	rec := a.do(http.MethodPost, "/api/login", `{"email":"`+email+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}

// decode unmarshals a JSON response body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}
