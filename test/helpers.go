package test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourorg/shipkeeper/internal/handler"
	"github.com/yourorg/shipkeeper/internal/infrastructure/logger"
	"github.com/yourorg/shipkeeper/internal/repository"
	"github.com/yourorg/shipkeeper/internal/security/auth"
	"github.com/yourorg/shipkeeper/internal/security/middleware"
	"github.com/yourorg/shipkeeper/internal/service"
)

// TestServerHelper runs the full API over an in-memory snapshot store with
// the seed document loaded, behind the same JWT middleware as production.
type TestServerHelper struct {
	Server *httptest.Server
	Logger *slog.Logger
	States *repository.StateRepository
	Tokens *auth.TokenManager
}

func NewTestServer(t *testing.T) *TestServerHelper {
	t.Helper()
	log := logger.NewLogger("error")

	states := repository.NewStateRepository(repository.NewMemorySnapshotStore(), log)
	if err := states.Initialize(t.Context()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	tokens := auth.NewTokenManager("test-secret", "shipkeeper", time.Hour)
	authService := service.NewAuthService(states, tokens, log)
	shipService := service.NewShipService(states, log)
	componentService := service.NewComponentService(states, log)
	jobService := service.NewJobService(states, componentService, log)
	notificationService := service.NewNotificationService(states, log)
	analyticsService := service.NewAnalyticsService(states, 6, log)

	loginHandler := handler.NewLoginHandler(authService, log)
	shipsHandler := handler.NewShipsHandler(shipService, log)
	componentsHandler := handler.NewComponentsHandler(componentService, log)
	jobsHandler := handler.NewJobsHandler(jobService, log)
	notificationsHandler := handler.NewNotificationsHandler(notificationService, log)
	kpiHandler := handler.NewKPIHandler(analyticsService, log)
	permissionsHandler := handler.NewPermissionsHandler(authService, log)
	healthHandler := handler.NewHealthHandler(states)

	mux := http.NewServeMux()
	mux.Handle("POST /api/login", loginHandler)

	mux.HandleFunc("GET /api/ships", shipsHandler.List)
	mux.HandleFunc("POST /api/ships", shipsHandler.Create)
	mux.HandleFunc("GET /api/ships/{id}", shipsHandler.Get)
	mux.HandleFunc("PUT /api/ships/{id}", shipsHandler.Update)
	mux.HandleFunc("DELETE /api/ships/{id}", shipsHandler.Delete)

	mux.HandleFunc("GET /api/components", componentsHandler.List)
	mux.HandleFunc("POST /api/components", componentsHandler.Create)
	mux.HandleFunc("GET /api/components/{id}", componentsHandler.Get)
	mux.HandleFunc("PUT /api/components/{id}", componentsHandler.Update)
	mux.HandleFunc("DELETE /api/components/{id}", componentsHandler.Delete)

	mux.HandleFunc("GET /api/jobs", jobsHandler.List)
	mux.HandleFunc("POST /api/jobs", jobsHandler.Create)
	mux.HandleFunc("GET /api/jobs/{id}", jobsHandler.Get)
	mux.HandleFunc("PUT /api/jobs/{id}", jobsHandler.Update)
	mux.HandleFunc("DELETE /api/jobs/{id}", jobsHandler.Delete)
	mux.HandleFunc("GET /api/calendar", jobsHandler.Calendar)

	mux.HandleFunc("GET /api/notifications", notificationsHandler.List)
	mux.HandleFunc("GET /api/notifications/unread-count", notificationsHandler.UnreadCount)
	mux.HandleFunc("POST /api/notifications/read-all", notificationsHandler.MarkAllRead)
	mux.HandleFunc("POST /api/notifications/{id}/read", notificationsHandler.MarkRead)
	mux.HandleFunc("DELETE /api/notifications/{id}", notificationsHandler.Delete)

	mux.Handle("GET /api/kpis", kpiHandler)
	mux.Handle("GET /api/permissions", permissionsHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", healthHandler.Live)
	mux.HandleFunc("/readyz", healthHandler.Ready)

	server := httptest.NewServer(middleware.JWTMiddleware(tokens, log)(mux))

	return &TestServerHelper{
		Server: server,
		Logger: log,
		States: states,
		Tokens: tokens,
	}
}

func (h *TestServerHelper) Close() {
	h.Server.Close()
}

func (h *TestServerHelper) URL() string {
	return h.Server.URL
}

// Login authenticates against the seeded accounts and returns the token
func (h *TestServerHelper) Login(t *testing.T, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(h.URL()+"/api/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return result.Token
}

// Do issues an authenticated request with an optional JSON body
func (h *TestServerHelper) Do(t *testing.T, token, method, path string, payload interface{}) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, h.URL()+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

// DecodeJSON decodes a response body and closes it
func DecodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// AssertStatusCode helper function
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}
