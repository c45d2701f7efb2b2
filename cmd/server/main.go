package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/featureflags"
	"github.com/yourorg/shipkeeper/internal/handler"
	"github.com/yourorg/shipkeeper/internal/infrastructure/logger"
	"github.com/yourorg/shipkeeper/internal/infrastructure/redis"
	"github.com/yourorg/shipkeeper/internal/observability/metrics"
	"github.com/yourorg/shipkeeper/internal/observability/tracing"
	"github.com/yourorg/shipkeeper/internal/reliability/retry"
	"github.com/yourorg/shipkeeper/internal/repository"
	"github.com/yourorg/shipkeeper/internal/security/audit"
	"github.com/yourorg/shipkeeper/internal/security/auth"
	"github.com/yourorg/shipkeeper/internal/security/middleware"
	"github.com/yourorg/shipkeeper/internal/security/ratelimit"
	"github.com/yourorg/shipkeeper/internal/service"
	"github.com/yourorg/shipkeeper/internal/worker"
	"github.com/yourorg/shipkeeper/pkg/config"
	"github.com/yourorg/shipkeeper/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting shipkeeper server",
		slog.String("environment", cfg.Environment),
		slog.String("storage", cfg.StorageBackend),
	)

	// 3. Initialize tracing (no-op unless an OTLP endpoint is configured)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, log, "shipkeeper", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Open the snapshot store
	snaps, err := openSnapshotStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open snapshot store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer snaps.Close()

	// 5. Initialize the state repository and seed the demo document
	states := repository.NewStateRepository(snaps, log)
	if err := states.Initialize(ctx); err != nil {
		log.Error("failed to initialize state", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 6. Initialize services
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, "shipkeeper",
		time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	authService := service.NewAuthService(states, tokenManager, log)
	shipService := service.NewShipService(states, log)
	componentService := service.NewComponentService(states, log)
	jobService := service.NewJobService(states, componentService, log)
	notificationService := service.NewNotificationService(states, log)
	analyticsService := service.NewAnalyticsService(states, cfg.OverdueAfterMonths, log)

	// 7. Initialize handlers
	loginHandler := handler.NewLoginHandler(authService, log)
	shipsHandler := handler.NewShipsHandler(shipService, log)
	componentsHandler := handler.NewComponentsHandler(componentService, log)
	jobsHandler := handler.NewJobsHandler(jobService, log)
	notificationsHandler := handler.NewNotificationsHandler(notificationService, log)
	kpiHandler := handler.NewKPIHandler(analyticsService, log)
	permissionsHandler := handler.NewPermissionsHandler(authService, log)
	stateHandler := handler.NewStateHandler(states, authService, log)
	feedHandler := handler.NewNotificationsFeedHandler(notificationService, log, cfg.CORSAllowedOrigins)
	healthHandler := handler.NewHealthHandler(states)

	// 7a. Initialize security components
	rateLimiter := ratelimit.NewLimiter(cfg.RateLimitPerMinute, time.Minute)
	auditLogger := audit.NewLogger(log)

	// 8. Setup HTTP routes
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
	mux.HandleFunc("GET /api/state/export", stateHandler.Export)
	if featureflags.Enabled("state_import") {
		mux.HandleFunc("POST /api/state/import", stateHandler.Import)
	}

	mux.Handle("GET /ws/notifications", feedHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", healthHandler.Live)
	mux.HandleFunc("/readyz", healthHandler.Ready)

	// CORS middleware honoring configured origins
	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})

	// Chain middleware: request ID -> JWT -> rate limit -> audit -> CORS -> mux
	rootHandler := withRequestID(
		middleware.JWTMiddleware(tokenManager, log)(
			middleware.RateLimitMiddleware(rateLimiter, log)(
				middleware.AuditMiddleware(auditLogger)(handlerWithCORS),
			),
		),
		log,
	)
	instrumented := otelhttp.NewHandler(metrics.HTTPMetricsMiddleware(rootHandler), "http.server")

	// 9. Start maintenance monitor in background
	monitor := worker.NewMaintenanceMonitor(
		analyticsService,
		notificationService,
		log,
		time.Duration(cfg.MonitorIntervalMinutes)*time.Minute,
	)
	go monitor.Start(ctx)

	// 10. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      instrumented,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("auth", "jwt"),
		slog.Int("rate_limit", cfg.RateLimitPerMinute),
		slog.String("rate_limit_window", "1m"),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Info("shutdown signal received")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	cancel() // Stop maintenance monitor
	rateLimiter.Stop()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}
	log.Info("server stopped")
}

// openSnapshotStore connects the configured backend, retrying transient
// connection failures at startup.
func openSnapshotStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (domain.Snapshotter, error) {
	switch cfg.StorageBackend {
	case "redis":
		client, err := retry.Do(ctx, retry.DefaultConfig(), log, "connect redis",
			func(ctx context.Context) (*redis.Client, error) {
				return redis.NewClient(cfg.RedisURL)
			})
		if err != nil {
			return nil, err
		}
		return repository.NewRedisSnapshotStore(client, cfg.StorageKey, log), nil

	case "postgres":
		pool, err := retry.Do(ctx, retry.DefaultConfig(), log, "connect postgres",
			func(ctx context.Context) (*database.ConnectionPool, error) {
				return database.NewConnectionPool(ctx, &database.Config{DSN: cfg.PostgresDSN}, log)
			})
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresSnapshotStore(ctx, pool.GetDB(), cfg.StorageKey, log)

	case "memory":
		log.Warn("using in-memory storage, state will not survive restarts")
		return repository.NewMemorySnapshotStore(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

type requestIDKey struct{}

// withRequestID attaches a request ID to the context and response headers for traceability
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestID()
		w.Header().Set("X-Request-ID", reqID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}
