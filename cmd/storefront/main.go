package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sellora/saree-storefront/internal/pkg/cache"
	"github.com/sellora/saree-storefront/internal/pkg/telemetry"
	"github.com/sellora/saree-storefront/internal/storefront/analytics"
	analyticsqlite "github.com/sellora/saree-storefront/internal/storefront/analytics/sqlite"
	"github.com/sellora/saree-storefront/internal/storefront/carousel"
	"github.com/sellora/saree-storefront/internal/storefront/catalog"
	"github.com/sellora/saree-storefront/internal/storefront/httpx"
	"github.com/sellora/saree-storefront/internal/storefront/session"
)

func main() {
	telemetry.InitLogger(getEnv("OTEL_SERVICE_NAME", "storefront"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "storefront"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	// The product API base URL is the one piece of config with no sane
	// default; the core never reads it from the environment itself.
	apiURL := os.Getenv("PRODUCT_API_URL")
	if apiURL == "" {
		slog.Error("PRODUCT_API_URL is required")
		os.Exit(1)
	}

	var catalogClient catalog.Client = catalog.NewHTTPClient(apiURL)
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		ttl := getDuration("CATALOG_CACHE_TTL", 5*time.Minute)
		catalogClient = catalog.NewCachedClient(catalogClient, cache.NewRedisCache(redisAddr, "storefront"), ttl)
		slog.Info("catalog cache enabled", "redis_addr", redisAddr, "ttl", ttl)
	}

	// Setting EVENT_LOG_PATH to the empty string disables the local event
	// log; events then go to the collector only.
	eventLogPath, eventLogSet := os.LookupEnv("EVENT_LOG_PATH")
	if !eventLogSet {
		eventLogPath = "data/events.db"
	}
	var eventRepo analytics.Repository
	if eventLogPath != "" {
		repo, err := analyticsqlite.Open(eventLogPath)
		if err != nil {
			slog.Error("failed to open event log", "path", eventLogPath, "error", err)
			os.Exit(1)
		}
		defer repo.Close()
		eventRepo = repo
	} else {
		slog.Info("event log disabled")
	}

	var tracker analytics.Tracker = analytics.NopTracker{}
	if collectorURL := os.Getenv("ANALYTICS_COLLECTOR_URL"); collectorURL != "" {
		tracker = analytics.NewDispatcher(analytics.NewCollector(collectorURL), eventRepo)
	} else {
		slog.Warn("ANALYTICS_COLLECTOR_URL not set, analytics disabled")
	}

	registry := session.NewRegistry(session.Config{
		Catalog:  catalogClient,
		Tracker:  tracker,
		Autoplay: getDuration("AUTOPLAY_INTERVAL", carousel.DefaultAutoplayInterval),
	}, getDuration("SESSION_IDLE_TTL", session.DefaultIdleTTL))
	registry.StartJanitor(time.Minute)
	defer registry.Close()

	addr := ":" + getEnv("PORT", "8080")
	server := &http.Server{
		Addr:    addr,
		Handler: httpx.NewRouter(httpx.NewHandler(registry)),
	}

	go func() {
		slog.Info("storefront section service running", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("invalid duration, using fallback", "key", key, "value", raw, "fallback", fallback)
		return fallback
	}
	return d
}
