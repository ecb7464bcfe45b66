// Command worker probes every configured news source on a cron schedule and
// exports per-source availability as Prometheus metrics. It stores nothing.
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

	"github.com/prometheus/client_golang/prometheus"

	"drupal-news/internal/infra/fetcher"
	workerPkg "drupal-news/internal/infra/worker"
	"drupal-news/internal/observability/logging"
	"drupal-news/internal/observability/tracing"
	"drupal-news/internal/registry"
	"drupal-news/internal/usecase/news"
	"drupal-news/pkg/config"
)

func main() {
	logger := logging.New(logging.LoadOptionsFromEnv())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Setup()
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	// Load worker configuration (fail-open strategy)
	metrics := workerPkg.NewMetrics(prometheus.DefaultRegisterer)
	cfg := workerPkg.LoadConfigFromEnv(logger, metrics)
	logger.Info("worker configuration loaded",
		slog.String("schedule", cfg.Schedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("timeout", cfg.Timeout),
		slog.Int("health_port", cfg.HealthPort))

	svc, err := setupService(logger)
	if err != nil {
		logger.Error("failed to initialize news service", slog.Any("error", err))
		os.Exit(1)
	}

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	prober := workerPkg.NewProber(svc, metrics, logger, cfg.Timeout)
	c, err := workerPkg.NewScheduler(ctx, cfg, prober, logger)
	if err != nil {
		logger.Error("failed to schedule probe", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()
	healthServer.SetReady(true)
	logger.Info("probe worker started", slog.String("schedule", cfg.Schedule))

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	// Wait for a running probe; the shared ctx is already cancelled so it ends promptly.
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

func setupService(logger *slog.Logger) (*news.Service, error) {
	reg, err := registry.FromFileOrDefault(config.GetEnvString("NEWS_SOURCES_FILE", ""))
	if err != nil {
		return nil, err
	}
	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	logger.Info("news sources loaded", slog.Int("count", reg.Len()))
	return news.NewService(reg, fetcher.New(fetchCfg)), nil
}
