package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/eventhub/internal/api/http/handlers"
	"github.com/spec-kit/eventhub/internal/auth"
	"github.com/spec-kit/eventhub/internal/config"
	"github.com/spec-kit/eventhub/internal/events"
	"github.com/spec-kit/eventhub/internal/observability"
	"github.com/spec-kit/eventhub/internal/persistence"
	"github.com/spec-kit/eventhub/internal/repository"
	"github.com/spec-kit/eventhub/internal/service"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// frozenStore rejects every write once frozen.
type frozenStore struct {
	persistence.Store
	frozen bool
}

func (s *frozenStore) Set(ctx context.Context, key, value string) error {
	if s.frozen {
		return fmt.Errorf("%w: set %q", apperrors.ErrStorageUnavailable, key)
	}
	return s.Store.Set(ctx, key, value)
}

func newTestApp(t *testing.T, store persistence.Store) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	cfg := config.AuthConfig{
		BcryptCost:    4,
		AdminEmail:    "admin@eventhub.com",
		AdminPassword: "admin123",
		DemoOTP:       "123456",
	}

	regs := repository.NewRegistrationRepository(store)
	feedback := repository.NewFeedbackRepository(store)
	logins := repository.NewLoginLogRepository(store)
	verifier, err := auth.NewDemoVerifier(cfg, regs)
	require.NoError(t, err)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	portal := service.NewPortalService(service.PortalDependencies{
		RegistrationRepo: regs, FeedbackRepo: feedback, LoginLogRepo: logins,
		Dispatcher: dispatcher, Logger: logger,
		Event: config.EventConfig{Name: "Tech Conference 2026", PDFURL: "/sample.pdf"},
	})
	authService := service.NewAuthService(service.AuthDependencies{
		RegistrationRepo: regs, LoginLogRepo: logins,
		Dispatcher: dispatcher, Logger: logger, DemoOTP: cfg.DemoOTP,
	})
	admin := service.NewAdminService(service.AdminDependencies{
		RegistrationRepo: regs, FeedbackRepo: feedback, LoginLogRepo: logins,
		Dispatcher: dispatcher, Logger: logger,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("eventhub", "test", config.StoreBackendMemory, store),
		Metrics: handlers.NewMetricsHandler(metrics),
		Public:  handlers.NewPublicHandler(portal, service.NewRegistrationService(regs, dispatcher, logger)),
		Auth:    handlers.NewAuthHandler(authService),
		Portal:  handlers.NewPortalHandler(portal),
		Admin:   handlers.NewAdminHandler(admin),
		Client:  auth.NewClientMiddleware(auth.NewTokenManager("test-secret", time.Hour), store, verifier, false, logger),
	})
	return app
}

// client replays the token it was issued, as a cookie-keeping browser would.
type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c *client) do(method, path string, body any) (*http.Response, map[string]any) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 Chrome/120.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	if issued := resp.Header.Get(auth.ClientTokenHeader); issued != "" {
		c.token = issued
	}

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(raw, &out))
	} else {
		out["raw"] = string(raw)
	}
	return resp, out
}

func data(body map[string]any) map[string]any {
	d, _ := body["data"].(map[string]any)
	return d
}

func errorOf(body map[string]any) map[string]any {
	e, _ := body["error"].(map[string]any)
	return e
}

var ann = map[string]any{
	"name":       "Ann",
	"email":      "ann@x.com",
	"phone":      "9876543210",
	"gender":     "female",
	"ticketType": "vip",
}

func TestRouter_PublicEndpoints(t *testing.T) {
	c := &client{t: t, app: newTestApp(t, persistence.NewMemoryStore())}

	resp, body := c.do(http.MethodGet, "/api/event", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Tech Conference 2026", data(body)["name"])
	assert.NotEmpty(t, c.token)

	resp, _ = c.do(http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = c.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apperrors.CodeNotFound, errorOf(body)["code"])
}

func TestRouter_UserFlow(t *testing.T) {
	app := newTestApp(t, persistence.NewMemoryStore())
	c := &client{t: t, app: app}

	resp, body := c.do(http.MethodGet, "/api/portal", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	details := errorOf(body)["details"].(map[string]any)
	assert.Equal(t, "/login", details["redirect"])

	resp, body = c.do(http.MethodPost, "/api/registrations", ann)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), data(body)["id"])

	_, body = c.do(http.MethodGet, "/api/session", nil)
	assert.Equal(t, "ann@x.com", data(body)["currentUserEmail"])
	assert.Equal(t, false, data(body)["userAuthenticated"])

	resp, _ = c.do(http.MethodPost, "/api/auth/otp", map[string]any{"email": "ann@x.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = c.do(http.MethodPost, "/api/auth/login", map[string]any{"email": "ann@x.com", "otp": "654321"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeInvalidCredentials, errorOf(body)["code"])

	resp, _ = c.do(http.MethodPost, "/api/auth/login", map[string]any{"email": "ann@x.com", "otp": "123456"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = c.do(http.MethodGet, "/api/portal", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := data(body)["profile"].(map[string]any)
	assert.Equal(t, "Ann", profile["name"])
	assert.Equal(t, "VIP Pass", profile["ticketLabel"])

	resp, body = c.do(http.MethodPost, "/api/portal/tiles/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/sample.pdf", data(body)["url"])

	resp, _ = c.do(http.MethodPost, "/api/portal/feedback", map[string]any{
		"rating": 5, "category": "venue", "message": "Loved it", "recommendation": "definitely",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body = c.do(http.MethodGet, "/api/portal/feedback/stats", nil)
	assert.Equal(t, float64(1), data(body)["count"])
	assert.Equal(t, float64(5), data(body)["averageRating"])

	// A separate client has its own session.
	other := &client{t: t, app: app}
	resp, _ = other.do(http.MethodGet, "/api/portal", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = c.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = c.do(http.MethodGet, "/api/portal", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RegistrationValidation(t *testing.T) {
	c := &client{t: t, app: newTestApp(t, persistence.NewMemoryStore())}

	bad := map[string]any{"name": "", "email": "nope", "phone": "1", "gender": "x", "ticketType": "vip"}
	resp, body := c.do(http.MethodPost, "/api/registrations", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	details := errorOf(body)["details"].(map[string]any)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "phone")
	assert.Contains(t, details, "gender")
}

func TestRouter_AdminFlow(t *testing.T) {
	app := newTestApp(t, persistence.NewMemoryStore())
	user := &client{t: t, app: app}
	_, _ = user.do(http.MethodPost, "/api/registrations", ann)

	c := &client{t: t, app: app}
	resp, body := c.do(http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/admin/login", errorOf(body)["details"].(map[string]any)["redirect"])

	resp, _ = c.do(http.MethodPost, "/api/admin/login", map[string]any{"email": "admin@eventhub.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = c.do(http.MethodPost, "/api/admin/login", map[string]any{"email": "admin@eventhub.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = c.do(http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, float64(1), data(body)["totalRegistrations"])

	_, body = c.do(http.MethodGet, "/api/admin/registrations?ticketType=vip", nil)
	assert.Equal(t, float64(1), data(body)["totalItems"])

	resp, body = c.do(http.MethodPost, "/api/admin/registrations/1/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "blocked", data(body)["status"])

	resp, body = c.do(http.MethodPatch, "/api/admin/registrations/1/status", map[string]any{"status": "registered"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "registered", data(body)["status"])

	resp, _ = c.do(http.MethodPost, "/api/admin/registrations/42/toggle", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = c.do(http.MethodGet, "/api/admin/registrations.csv", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "registrations_data.csv")
	assert.Contains(t, body["raw"], "ann@x.com")

	// Admin and user sessions are independent.
	resp, _ = c.do(http.MethodGet, "/api/portal", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = c.do(http.MethodPost, "/api/admin/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = c.do(http.MethodGet, "/api/admin/feedback", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_StorageFailureIsReported(t *testing.T) {
	store := &frozenStore{Store: persistence.NewMemoryStore()}
	c := &client{t: t, app: newTestApp(t, store)}
	_, _ = c.do(http.MethodGet, "/api/event", nil)

	store.frozen = true
	resp, body := c.do(http.MethodPost, "/api/registrations", ann)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, apperrors.CodeStorageUnavailable, errorOf(body)["code"])
}
