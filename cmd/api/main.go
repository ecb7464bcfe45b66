// Command api serves the aggregated Drupal news feed over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	hhttp "drupal-news/internal/handler/http"
	"drupal-news/internal/handler/http/middleware"
	"drupal-news/internal/infra/fetcher"
	"drupal-news/internal/observability/logging"
	"drupal-news/internal/observability/tracing"
	"drupal-news/internal/registry"
	"drupal-news/internal/usecase/news"
	"drupal-news/pkg/config"
	"drupal-news/pkg/ratelimit"
)

// DefaultPort is the listen port when NEWS_SCRAPER_PORT is unset.
const DefaultPort = 3001

// @title           Drupal News API
// @version         1.0
// @description     Aggregates Drupal community blogs and news sites into one article list.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3001
// @BasePath  /

func main() {
	logger := logging.New(logging.LoadOptionsFromEnv())
	slog.SetDefault(logger)

	shutdownTracing := tracing.Setup()
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler, err := setupServer(ctx, logger)
	if err != nil {
		logger.Error("failed to initialize server", slog.Any("error", err))
		os.Exit(1)
	}
	runServer(ctx, cancel, logger, handler)
}

// setupServer wires the aggregation service and the middleware chain. The
// rate limit cleanup goroutine lives until ctx is cancelled.
func setupServer(ctx context.Context, logger *slog.Logger) (http.Handler, error) {
	reg, err := registry.FromFileOrDefault(config.GetEnvString("NEWS_SOURCES_FILE", ""))
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	svc := news.NewService(reg, fetcher.New(fetchCfg))
	logger.Info("news sources loaded",
		slog.Int("count", reg.Len()),
		slog.Duration("fetch_timeout", fetchCfg.Timeout))

	corsCfg, err := middleware.LoadCORSConfigFromEnv()
	if err != nil {
		return nil, err
	}
	corsCfg.Logger = logger
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsCfg.AllowedOrigins),
		slog.Any("allowed_methods", corsCfg.AllowedMethods),
		slog.Int("max_age", corsCfg.MaxAge))

	rateLimiter, err := setupRateLimiter(ctx, logger)
	if err != nil {
		return nil, err
	}

	return hhttp.NewRouter(hhttp.Deps{
		Logger:         logger,
		Aggregator:     svc,
		CORS:           corsCfg,
		RateLimiter:    rateLimiter,
		RequestTimeout: config.GetEnvDuration("REQUEST_TIMEOUT", hhttp.DefaultRequestTimeout),
	}), nil
}

// setupRateLimiter returns nil when inbound throttling is disabled.
func setupRateLimiter(ctx context.Context, logger *slog.Logger) (*middleware.RateLimiter, error) {
	cfg, err := ratelimit.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		logger.Info("rate limiting disabled; set RATE_LIMIT_ENABLED=true to throttle per client")
		return nil, nil
	}

	proxyCfg, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		return nil, err
	}
	if proxyCfg.Enabled {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyCfg.AllowedCIDRs)))
	} else {
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	}

	limiter := ratelimit.New(cfg, ratelimit.SystemClock{})
	go hhttp.StartRateLimitCleanup(ctx, limiter, cfg.CleanupInterval)

	logger.Info("rate limiting initialized",
		slog.Float64("rps", cfg.RPS),
		slog.Int("burst", cfg.Burst),
		slog.Int("max_keys", cfg.MaxKeys))
	return middleware.NewRateLimiter(limiter, middleware.NewIPExtractor(proxyCfg)), nil
}

// runServer serves until SIGINT or SIGTERM, then drains within 5 seconds.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, handler http.Handler) {
	addr := fmt.Sprintf(":%d", config.GetEnvInt("NEWS_SCRAPER_PORT", DefaultPort))
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
