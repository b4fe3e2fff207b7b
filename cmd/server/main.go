// Command server starts the AI Interview Platform HTTP server.
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

	ai "github.com/balajircs83/AI-Interview-Platform/internal/adapter/ai"
	rediscache "github.com/balajircs83/AI-Interview-Platform/internal/adapter/cache/redis"
	httpserver "github.com/balajircs83/AI-Interview-Platform/internal/adapter/httpserver"
	"github.com/balajircs83/AI-Interview-Platform/internal/adapter/observability"
	"github.com/balajircs83/AI-Interview-Platform/internal/adapter/queue/kafka"
	"github.com/balajircs83/AI-Interview-Platform/internal/adapter/repo/postgres"
	"github.com/balajircs83/AI-Interview-Platform/internal/app"
	"github.com/balajircs83/AI-Interview-Platform/internal/config"
	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
	"github.com/balajircs83/AI-Interview-Platform/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

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

	questions, err := config.LoadQuestions(cfg.QuestionsFile)
	if err != nil {
		slog.Error("question bank load failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Infra: DB pool
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(pool)
	sessionRepo := postgres.NewSessionRepo(pool)
	responseRepo := postgres.NewResponseRepo(pool)

	// Analytics cache (optional)
	var cache *rediscache.Cache
	if cfg.RedisAddr != "" {
		cache = rediscache.New(cfg.RedisAddr, cfg.AnalyticsCacheTTL)
	}

	// Metric event stream (optional)
	var metricSink domain.MetricSink
	if cfg.MetricsEnabled() {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.MetricsTopic)
		if err != nil {
			slog.Error("metric producer connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() { _ = producer.Close() }()
		metricSink = producer
	}

	// Scoring client
	aiClient := ai.New(cfg)

	// Usecases
	sessionSvc := usecase.NewSessionService(userRepo, sessionRepo, responseRepo, len(questions))
	evalSvc := usecase.NewEvaluateService(aiClient, responseRepo)
	analyticsSvc := usecase.NewAnalyticsService(userRepo, sessionRepo, responseRepo, analyticsCache(cache), metricSink)

	dbCheck, redisCheck := app.BuildReadinessChecks(pool, cache)

	srv := httpserver.NewServer(cfg, sessionSvc, evalSvc, analyticsSvc, dbCheck, redisCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port), slog.Int("questions", len(questions)))
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

// analyticsCache keeps the usecase wiring free of typed-nil interface values
// when Redis is not configured.
func analyticsCache(c *rediscache.Cache) domain.AnalyticsCache {
	if c == nil {
		return nil
	}
	return c
}
