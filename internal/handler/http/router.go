package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "drupal-news/docs" // swagger docs
	"drupal-news/internal/handler/http/middleware"
	"drupal-news/internal/handler/http/news"
	"drupal-news/internal/handler/http/requestid"
	"drupal-news/internal/observability/tracing"
)

// Deps are the collaborators of the public HTTP surface.
type Deps struct {
	Logger      *slog.Logger
	Aggregator  news.Aggregator
	CORS        middleware.CORSConfig
	RateLimiter *middleware.RateLimiter

	// RequestTimeout bounds /api/news. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// NewRouter returns the route table wrapped in the middleware chain, outer to
// inner: CORS, request id, tracing, rate limit, recover, access log, metrics.
func NewRouter(d Deps) http.Handler {
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	mux := http.NewServeMux()
	mux.Handle("/api/news", Timeout(timeout)(news.Handler{Svc: d.Aggregator}))
	mux.Handle("/api/news/health", news.HealthHandler{})
	mux.Handle("/metrics", MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = MetricsMiddleware(h)
	h = Logging(d.Logger)(h)
	h = Recover(d.Logger)(h)
	if d.RateLimiter != nil {
		h = d.RateLimiter.Middleware()(h)
	}
	h = tracing.Middleware(h)
	h = requestid.Middleware(h)
	h = middleware.CORS(d.CORS)(h)
	return h
}
