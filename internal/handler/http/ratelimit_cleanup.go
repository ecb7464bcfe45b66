package http

import (
	"context"
	"log/slog"
	"time"

	"drupal-news/pkg/ratelimit"
)

// StartRateLimitCleanup sweeps idle buckets from limiter every interval until
// ctx is done. It blocks; run it in its own goroutine.
func StartRateLimitCleanup(ctx context.Context, limiter *ratelimit.Limiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			removed := limiter.Cleanup()
			slog.Debug("rate limit cleanup completed",
				slog.Int("keys_removed", removed),
				slog.Int("active_keys", limiter.Len()))
		}
	}
}
