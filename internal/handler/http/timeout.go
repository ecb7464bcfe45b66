package http

import (
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds one /api/news request. Every source fetch has
// its own shorter deadline, so this only trips when the whole fan-out stalls.
const DefaultRequestTimeout = 30 * time.Second

const timeoutBody = `{"error":"request timeout"}`

// Timeout cancels the request context after d and answers 503 with a JSON
// body if the handler has not written anything by then.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		h := http.TimeoutHandler(next, d, timeoutBody)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			h.ServeHTTP(w, r)
		})
	}
}
