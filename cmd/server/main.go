// Command server starts the career mentor HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careermitra/mentor-engine/internal/adapter/ai"
	"github.com/careermitra/mentor-engine/internal/adapter/ai/gemini"
	"github.com/careermitra/mentor-engine/internal/adapter/ai/stub"
	"github.com/careermitra/mentor-engine/internal/adapter/dataset"
	"github.com/careermitra/mentor-engine/internal/adapter/history/memstore"
	"github.com/careermitra/mentor-engine/internal/adapter/history/redisstore"
	httpserver "github.com/careermitra/mentor-engine/internal/adapter/httpserver"
	"github.com/careermitra/mentor-engine/internal/app"
	"github.com/careermitra/mentor-engine/internal/config"
	"github.com/careermitra/mentor-engine/internal/domain"
	"github.com/careermitra/mentor-engine/internal/match"
	"github.com/careermitra/mentor-engine/internal/observability"
	"github.com/careermitra/mentor-engine/internal/usecase"
)

// redisAdapter narrows *redis.Client to the readiness interface.
type redisAdapter struct{ *redis.Client }

func (a redisAdapter) Ping(ctx context.Context) app.RedisPingResult {
	return a.Client.Ping(ctx)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, AI, and resolution instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Career catalog
	ds, err := dataset.Open(cfg.DatasetPath)
	if err != nil {
		slog.Error("dataset load failed", slog.String("path", cfg.DatasetPath), slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("dataset loaded", slog.String("path", cfg.DatasetPath), slog.Int("entries", len(ds.Entries())))

	// Conversation history: Redis when configured, in-process otherwise.
	var history domain.HistoryStore
	var redisCheck app.RedisClient
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = rdb.Close() }()
		history = redisstore.New(rdb, cfg.HistoryMaxTurns, cfg.HistoryTTL)
		redisCheck = redisAdapter{rdb}
	} else {
		history = memstore.New(cfg.HistoryMaxTurns)
		slog.Warn("REDIS_ADDR not set; history is in-process only")
	}

	// Text-generation delegate. Dev without a key falls back to the stub so
	// the whole flow stays runnable locally.
	var gen domain.TextGenerator
	if cfg.GeminiAPIKey == "" && cfg.IsDev() {
		gen = stub.New()
	} else {
		gen = gemini.New(cfg)
	}

	scorer := match.NewScorer(cfg.ScorerMode)

	cleaner := ai.NewResponseCleaner()
	tiers := usecase.BuildTiers(cfg, ds, gen, scorer, cleaner.Extract)
	resolver := usecase.NewResolveService(tiers...)
	slog.Info("resolution chain assembled", slog.Any("tiers", cfg.ResolveTiers))

	// Readiness checks
	rCheck, dsCheck := app.BuildReadinessChecks(redisCheck, ds)
	ready := app.ReadyzHandler(map[string]func(context.Context) error{
		"redis":   rCheck,
		"dataset": dsCheck,
	})

	// HTTP server
	srv := httpserver.NewServer(cfg, resolver, history, ds)
	handler := app.BuildRouter(cfg, srv, ready)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
