package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"drupal-news/pkg/config"
)

// AnyOrigin allows every origin.
const AnyOrigin = "*"

// CORSConfig holds the CORS policy.
type CORSConfig struct {
	// AllowedOrigins lists permitted origins. A single "*" allows all.
	AllowedOrigins []string

	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int

	Logger *slog.Logger
}

// DefaultCORSConfig allows any origin to read the public endpoints.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{AnyOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Trace-Id", "Retry-After"},
		MaxAge:         86400,
	}
}

// LoadCORSConfigFromEnv reads CORS_ALLOWED_ORIGINS, CORS_ALLOWED_METHODS,
// CORS_ALLOWED_HEADERS and CORS_MAX_AGE on top of DefaultCORSConfig.
func LoadCORSConfigFromEnv() (CORSConfig, error) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = config.GetEnvStringList("CORS_ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.AllowedMethods = config.GetEnvStringList("CORS_ALLOWED_METHODS", cfg.AllowedMethods)
	cfg.AllowedHeaders = config.GetEnvStringList("CORS_ALLOWED_HEADERS", cfg.AllowedHeaders)
	cfg.MaxAge = config.GetEnvInt("CORS_MAX_AGE", cfg.MaxAge)

	if err := cfg.Validate(); err != nil {
		return CORSConfig{}, fmt.Errorf("cors configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that every origin is "*" or a bare http(s) origin.
func (c CORSConfig) Validate() error {
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin is required")
	}
	for _, origin := range c.AllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("max age must not be negative")
	}
	return nil
}

func validateOrigin(origin string) error {
	if origin == AnyOrigin {
		return nil
	}
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", origin)
	}
	if u.Host == "" {
		return fmt.Errorf("origin must include a host: %s", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin must not include path, query or fragment: %s", origin)
	}
	return nil
}

func (c CORSConfig) allowsAny() bool {
	for _, o := range c.AllowedOrigins {
		if o == AnyOrigin {
			return true
		}
	}
	return false
}

// CORS applies the policy. Requests without an Origin header pass through
// untouched. Disallowed origins get no CORS headers and the browser blocks
// the response. Preflight requests from allowed origins end with 204.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowAny := cfg.allowsAny()
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.ToLower(strings.TrimSuffix(o, "/"))] = struct{}{}
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			if allowAny {
				h.Set("Access-Control-Allow-Origin", AnyOrigin)
			} else {
				h.Add("Vary", "Origin")
				if _, ok := allowed[strings.ToLower(origin)]; !ok {
					if cfg.Logger != nil {
						cfg.Logger.Warn("CORS: origin not allowed",
							slog.String("origin", origin),
							slog.String("path", r.URL.Path),
							slog.String("method", r.Method))
					}
					next.ServeHTTP(w, r)
					return
				}
				h.Set("Access-Control-Allow-Origin", origin)
			}
			if exposed != "" {
				h.Set("Access-Control-Expose-Headers", exposed)
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				h.Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
