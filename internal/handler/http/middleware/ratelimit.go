package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"drupal-news/internal/handler/http/pathutil"
	"drupal-news/internal/handler/http/respond"
	"drupal-news/internal/observability/metrics"
	"drupal-news/pkg/ratelimit"
)

// ErrRateLimited is the body of every 429 response.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiter throttles requests per client IP.
type RateLimiter struct {
	limiter   *ratelimit.Limiter
	extractor IPExtractor
}

// NewRateLimiter wires a keyed limiter to an IP extractor. A nil extractor
// means RemoteAddrExtractor.
func NewRateLimiter(limiter *ratelimit.Limiter, extractor IPExtractor) *RateLimiter {
	if extractor == nil {
		extractor = RemoteAddrExtractor{}
	}
	return &RateLimiter{limiter: limiter, extractor: extractor}
}

// Middleware answers 429 with Retry-After once a client's bucket is empty.
// Requests whose address cannot be determined are let through.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !rl.limiter.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, err := rl.extractor.ExtractIP(r)
			if err != nil {
				slog.Error("rate limiter: failed to extract IP, allowing request",
					slog.String("remote_addr", r.RemoteAddr),
					slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			d := rl.limiter.Allow(ip)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.Allowed {
				metrics.RecordRateLimited(pathutil.NormalizePath(r.URL.Path))
				slog.Debug("rate limit exceeded",
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
					slog.Duration("retry_after", d.RetryAfter))
				w.Header().Set("Retry-After", strconv.FormatInt(d.RetryAfterSeconds(), 10))
				respond.SafeError(w, http.StatusTooManyRequests, ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
