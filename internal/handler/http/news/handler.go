// Package news serves the aggregated article envelope over HTTP.
package news

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"drupal-news/internal/domain/entity"
	"drupal-news/internal/handler/http/respond"
	"drupal-news/internal/observability/logging"
)

// CacheControl is sent with every successful envelope.
const CacheControl = "public, max-age=300"

// SourceParam is the query parameter that narrows aggregation to one source.
const SourceParam = "source"

const methodNotAllowed = "method not allowed"

// Aggregator builds an envelope for every source or for one source id.
type Aggregator interface {
	Aggregate(ctx context.Context, sourceID string) (*entity.Envelope, error)
}

// Handler serves GET /api/news.
type Handler struct{ Svc Aggregator }

// ServeHTTP aggregates every source, or one source when ?source= is set.
// @Summary      Aggregated Drupal news
// @Description  Fetches every configured source concurrently and returns the merged articles, newest first.
// @Description  A failing source is reported in errors and never fails the request.
// @Tags         news
// @Produce      json
// @Param        source query string false "Source id; limits aggregation to that source"
// @Success      200 {object} entity.Envelope "Aggregated articles" headers(Cache-Control=string)
// @Failure      400 {object} respond.ErrorBody "Unknown source id"
// @Failure      405 {object} respond.ErrorBody "Method not allowed"
// @Failure      500 {object} respond.ErrorBody "Internal server error"
// @Router       /api/news [get]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		respond.Message(w, http.StatusMethodNotAllowed, methodNotAllowed)
		return
	}

	sourceID := r.URL.Query().Get(SourceParam)
	env, err := h.Svc.Aggregate(r.Context(), sourceID)
	if err != nil {
		if errors.Is(err, entity.ErrUnknownSource) {
			respond.Error(w, http.StatusBadRequest, entity.ErrUnknownSource)
			return
		}
		logging.FromContext(r.Context()).Error("aggregation failed",
			slog.String("source", sourceID), slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Cache-Control", CacheControl)
	respond.JSON(w, http.StatusOK, env)
}

// HealthHandler serves GET /api/news/health. It reports liveness only and
// never contacts a source.
type HealthHandler struct{}

// ServeHTTP reports liveness.
// @Summary      Liveness check
// @Tags         news
// @Produce      json
// @Success      200 {object} map[string]string "{\"status\": \"ok\"}"
// @Failure      405 {object} respond.ErrorBody "Method not allowed"
// @Router       /api/news/health [get]
func (HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		respond.Message(w, http.StatusMethodNotAllowed, methodNotAllowed)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
