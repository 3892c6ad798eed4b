package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/service"
	"github.com/spec-kit/portfolio-service/internal/storage"
)

type testEnv struct {
	app    *fiber.App
	store  *memStore
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		App:     config.AppConfig{Name: "portfolio-test", Env: "test", FrontendURL: "*"},
		Auth:    config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4},
		Uploads: config.UploadsConfig{Driver: config.UploadsDriverLocal, MaxBytes: 1 << 20},
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	files, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	mem := newMemStore()
	logger := zap.NewNop()
	metrics := observability.NewMetrics("portfolio_test")
	revoker := auth.NewRedisRevoker(client, logger)

	authSvc := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: memUsers{mem}, Revoker: revoker, Logger: logger})
	offerings := service.NewOfferingService(service.OfferingDependencies{OfferingRepo: memOfferings{mem}, Logger: logger})
	projects := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo: memProjects{mem},
		Store:       files,
		Logger:      logger,
		MaxUpload:   cfg.Uploads.MaxBytes,
	})
	subs := service.NewSubscriptionService(service.SubscriptionDependencies{
		SubscriptionRepo: memSubscriptions{mem},
		OfferingRepo:     memOfferings{mem},
		Metrics:          metrics,
		Logger:           logger,
	})

	app := NewApp(cfg, logger, metrics, RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, "test", nil, nil),
		Auth:          handlers.NewAuthHandler(authSvc),
		Users:         handlers.NewUsersHandler(service.NewUserService(memUsers{mem})),
		Projects:      handlers.NewProjectsHandler(projects),
		Services:      handlers.NewOfferingsHandler(offerings),
		Subscriptions: handlers.NewSubscriptionsHandler(subs),
		Uploads:       handlers.NewUploadsHandler(files),
		Authenticator: auth.NewAuthenticator(authSvc.TokenManager(), revoker),
		Metrics:       metrics.Handler(),
	})
	return &testEnv{app: app, store: mem, tokens: authSvc.TokenManager()}
}

func (e *testEnv) token(t *testing.T, id int64, role domain.Role) string {
	t.Helper()
	tok, _, err := e.tokens.Issue(&domain.User{ID: id, Email: "u@example.com", Role: role})
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, body
}

func jsonRequest(method, target, token string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, jsonRequest(http.MethodGet, "/api/nope", "", nil))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, jsonRequest(http.MethodGet, "/api/health", "", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Server is running", body["message"])
}

func TestReadinessFailsWithoutPostgres(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, jsonRequest(http.MethodGet, "/health/ready", "", nil))

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", body["code"])
}

func TestAuthenticationAndRoleGuards(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, 1, domain.RoleAdmin)
	client := env.token(t, 2, domain.RoleClient)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		status  int
		message string
	}{
		{"no token", http.MethodGet, "/api/users/profile", "", http.StatusUnauthorized, "No token provided"},
		{"garbage token", http.MethodGet, "/api/users/profile", "garbage", http.StatusUnauthorized, "Invalid or expired token"},
		{"client on admin route", http.MethodPost, "/api/services", client, http.StatusForbidden, "Admin access required"},
		{"client lists users", http.MethodGet, "/api/users", client, http.StatusForbidden, "Admin access required"},
		{"admin on client route", http.MethodGet, "/api/subscriptions/my-subscriptions", admin, http.StatusForbidden, "Client access required"},
		{"client lists all subscriptions", http.MethodGet, "/api/subscriptions", client, http.StatusForbidden, "Admin access required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := env.do(t, jsonRequest(tc.method, tc.path, tc.token, nil))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, body["message"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, jsonRequest(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ana", "email": "Ana@Example.com", "password": "secret1",
	}))
	require.Equal(t, http.StatusCreated, status, body)
	user := body["user"].(map[string]any)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, "client", user["role"])
	assert.NotContains(t, user, "password")

	status, body = env.do(t, jsonRequest(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "secret1",
	}))
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "wrong-pass",
	}))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["message"])

	status, body = env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "secret1",
	}))
	require.Equal(t, http.StatusOK, status, body)
	token := body["token"].(string)

	status, body = env.do(t, jsonRequest(http.MethodGet, "/api/auth/me", token, nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ana@example.com", body["user"].(map[string]any)["email"])

	status, _ = env.do(t, jsonRequest(http.MethodPost, "/api/auth/logout", token, nil))
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, jsonRequest(http.MethodGet, "/api/auth/me", token, nil))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token has been revoked", body["message"])
}

func TestSubscriptionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, 1, domain.RoleAdmin)

	_, body := env.do(t, jsonRequest(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Cliente", "email": "cliente@example.com", "password": "cliente123",
	}))
	client := body["token"].(string)

	status, body := env.do(t, jsonRequest(http.MethodPost, "/api/services", admin, map[string]any{
		"category": "Web", "title": "Mantenimiento", "description": "Soporte mensual",
		"features": []string{"Backups", "Updates"}, "price": 49.5, "period": "mes",
	}))
	require.Equal(t, http.StatusCreated, status, body)
	serviceID := body["service"].(map[string]any)["id"].(float64)

	status, body = env.do(t, jsonRequest(http.MethodPost, "/api/subscriptions", client, map[string]any{"serviceId": "abc"}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Service ID must be a valid integer", body["errors"].(map[string]any)["serviceId"])

	status, body = env.do(t, jsonRequest(http.MethodPost, "/api/subscriptions", client, map[string]any{"serviceId": 9999}))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Service not found", body["message"])

	status, body = env.do(t, jsonRequest(http.MethodPost, "/api/subscriptions", client, map[string]any{"serviceId": serviceID}))
	require.Equal(t, http.StatusCreated, status, body)
	sub := body["subscription"].(map[string]any)
	assert.Equal(t, "active", sub["status"])
	assert.Equal(t, 49.5, sub["price"])
	assert.NotNil(t, sub["endDate"])
	subID := int64(sub["id"].(float64))

	// later price changes do not touch the snapshot
	status, _ = env.do(t, jsonRequest(http.MethodPut, "/api/services/"+itoa(int64(serviceID)), admin, map[string]any{"price": 99}))
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, jsonRequest(http.MethodGet, "/api/subscriptions/my-subscriptions", client, nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
	mine := body["subscriptions"].([]any)[0].(map[string]any)
	assert.Equal(t, 49.5, mine["price"])

	other := env.token(t, 777, domain.RoleClient)
	status, body = env.do(t, jsonRequest(http.MethodPut, "/api/subscriptions/"+itoa(subID)+"/cancel", other, nil))
	assert.Equal(t, http.StatusForbidden, status)

	status, body = env.do(t, jsonRequest(http.MethodPut, "/api/subscriptions/"+itoa(subID)+"/cancel", client, nil))
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "cancelled", body["subscription"].(map[string]any)["status"])

	status, body = env.do(t, jsonRequest(http.MethodPut, "/api/subscriptions/"+itoa(subID)+"/cancel", client, nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cancelled", body["subscription"].(map[string]any)["status"])

	status, body = env.do(t, jsonRequest(http.MethodGet, "/api/subscriptions", admin, nil))
	require.Equal(t, http.StatusOK, status)
	all := body["subscriptions"].([]any)
	require.Len(t, all, 1)
	row := all[0].(map[string]any)
	assert.Equal(t, "cliente@example.com", row["user"].(map[string]any)["email"])
	assert.Equal(t, "Mantenimiento", row["service"].(map[string]any)["title"])
	assert.NotContains(t, row["service"].(map[string]any), "price")
}

func TestProjectMultipartCreateServesCover(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, 1, domain.RoleAdmin)
	image := []byte("\x89PNG\r\n\x1a\nfake-image")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Tienda Online"))
	require.NoError(t, w.WriteField("description", "E-commerce"))
	require.NoError(t, w.WriteField("technologies", "Go, React ,,PostgreSQL"))
	part, err := w.CreateFormFile("coverImage", "cover.png")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/projects", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+admin)

	status, body := env.do(t, req)
	require.Equal(t, http.StatusCreated, status, body)
	project := body["project"].(map[string]any)
	assert.Equal(t, []any{"Go", "React", "PostgreSQL"}, project["technologies"])
	assert.Equal(t, "/projects/tienda-online", project["detailsUrl"])

	imageURL := project["image"].(string)
	name, ok := storage.NameFromURL(imageURL)
	require.True(t, ok, imageURL)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, storage.PublicPrefix+name, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	served, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image, served)

	status, body = env.do(t, jsonRequest(http.MethodGet, "/api/projects", "", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
}

func TestProjectRejectsUnsupportedCover(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, 1, domain.RoleAdmin)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Doc"))
	require.NoError(t, w.WriteField("description", "Docs"))
	require.NoError(t, w.WriteField("technologies", "Go"))
	part, err := w.CreateFormFile("coverImage", "notes.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/projects", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+admin)

	status, _ := env.do(t, req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Empty(t, env.store.projects)
}

func TestUploadsRejectsTraversal(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/uploads/..%2Fsecret", nil))
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestInvalidIDParam(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, jsonRequest(http.MethodGet, "/api/services/abc", "", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestServicePriceMustBeFinite(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, 1, domain.RoleAdmin)

	for _, price := range []any{"Inf", "NaN", 1e12} {
		status, body := env.do(t, jsonRequest(http.MethodPost, "/api/services", admin, map[string]any{
			"category": "Web", "title": "Hosting", "description": "Plan",
			"features": []string{"SSL"}, "price": price, "period": "mes",
		}))
		assert.Equal(t, http.StatusBadRequest, status, "price %v", price)
		assert.Contains(t, body["errors"], "price")
	}
	assert.Empty(t, env.store.offerings)
}
