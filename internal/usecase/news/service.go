package news

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"drupal-news/internal/domain/entity"
	"drupal-news/internal/infra/scraper"
	"drupal-news/internal/observability/logging"
	"drupal-news/internal/observability/metrics"
	"drupal-news/internal/observability/tracing"
)

// Fetcher retrieves raw documents. Implementations report failures as
// *entity.FetchError.
type Fetcher interface {
	FetchFeed(ctx context.Context, url string) (string, error)
	FetchHTML(ctx context.Context, url string) (string, error)
}

// SourceRegistry resolves a source filter. An empty id means every source;
// an unknown id fails with entity.ErrUnknownSource.
type SourceRegistry interface {
	Resolve(id string) ([]entity.Source, error)
}

// Service aggregates articles from the registry's sources.
//
// Every call recomputes everything from the origins; nothing is cached
// between calls.
type Service struct {
	Registry SourceRegistry
	Fetcher  Fetcher

	// Now stamps the envelope. Defaults to time.Now.
	Now func() time.Time
	// PageLimit bounds articles taken from one listing page.
	// Zero means scraper.DefaultLimit.
	PageLimit int
}

// NewService creates a Service reading sources from reg and documents from f.
func NewService(reg SourceRegistry, f Fetcher) *Service {
	return &Service{
		Registry: reg,
		Fetcher:  f,
		Now:      time.Now,
	}
}

// sourceResult is the outcome slot written by exactly one pipeline goroutine.
type sourceResult struct {
	articles []entity.Article
	strategy string
	err      error
}

// Aggregate runs every requested source concurrently and merges the results.
//
// sourceID "" selects the whole registry. An id matching no source fails with
// entity.ErrUnknownSource; that is the only error Aggregate returns. A failing
// source never affects the others: its failure is reported in Errors under
// its id and it contributes no articles. Articles are merged without dedup
// and ordered newest first.
func (s *Service) Aggregate(ctx context.Context, sourceID string) (*entity.Envelope, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "news.Aggregate")
	defer span.End()

	sources, err := s.Registry.Resolve(sourceID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	start := time.Now()
	logger := logging.WithRequestID(ctx, logging.FromContext(ctx))

	results := make([]sourceResult, len(sources))
	var g errgroup.Group
	for i := range sources {
		src := &sources[i]
		g.Go(func() error {
			results[i] = s.runSource(ctx, src)
			return nil
		})
	}
	_ = g.Wait() // pipelines never return errors

	env := &entity.Envelope{
		Sources:  make([]entity.PublicSource, 0, len(sources)),
		Articles: []entity.Article{},
		Errors:   map[string]string{},
	}
	for i := range sources {
		src := &sources[i]
		env.Sources = append(env.Sources, src.Public())

		res := results[i]
		if res.err != nil {
			env.Errors[src.ID] = errorMessage(res.err)
			logger.Warn("source failed",
				slog.String("source_id", src.ID),
				slog.String("strategy", res.strategy),
				slog.Any("error", res.err))
			continue
		}
		env.Articles = append(env.Articles, res.articles...)
	}

	SortByPublished(env.Articles)
	env.UpdatedAt = s.now().UTC()

	scope := "all"
	if sourceID != "" {
		scope = "single"
	}
	duration := time.Since(start)
	metrics.RecordAggregation(scope, duration)

	span.SetAttributes(
		attribute.Int("news.sources", len(sources)),
		attribute.Int("news.articles", len(env.Articles)),
		attribute.Int("news.failed_sources", len(env.Errors)),
	)
	logger.Info("aggregation completed",
		slog.String("scope", scope),
		slog.Int("sources", len(sources)),
		slog.Int("articles", len(env.Articles)),
		slog.Int("failed_sources", len(env.Errors)),
		slog.Duration("duration", duration))

	return env, nil
}

// runSource wraps one per-source pipeline with its span, metrics and log line.
func (s *Service) runSource(ctx context.Context, src *entity.Source) sourceResult {
	ctx, span := tracing.GetTracer().Start(ctx, "news.source",
		trace.WithAttributes(attribute.String("news.source_id", src.ID)),
	)
	defer span.End()

	start := time.Now()
	res := s.pipeline(ctx, src)
	duration := time.Since(start)

	span.SetAttributes(
		attribute.String("news.strategy", res.strategy),
		attribute.Int("news.articles", len(res.articles)),
	)
	if res.err != nil {
		span.RecordError(res.err)
		span.SetStatus(codes.Error, errorMessage(res.err))
		metrics.RecordSourceFailure(src.ID, res.strategy, errorType(res.err), duration)
		return res
	}

	metrics.RecordSourceSuccess(src.ID, res.strategy, duration, len(res.articles))
	logging.FromContext(ctx).Debug("source aggregated",
		slog.String("source_id", src.ID),
		slog.String("strategy", res.strategy),
		slog.Int("articles", len(res.articles)),
		slog.Duration("duration", duration))
	return res
}

// pipeline prefers the feed. The page is only fetched when there is no feed
// or the feed produced no articles.
func (s *Service) pipeline(ctx context.Context, src *entity.Source) sourceResult {
	if src.HasFeed() {
		raw, err := s.Fetcher.FetchFeed(ctx, src.FeedURL)
		if err != nil {
			return sourceResult{strategy: metrics.StrategyFeed, err: err}
		}
		articles, err := scraper.ParseFeed(raw, src)
		if err != nil {
			return sourceResult{strategy: metrics.StrategyFeed, err: err}
		}
		if len(articles) > 0 {
			return sourceResult{strategy: metrics.StrategyFeed, articles: articles}
		}
	}

	if !src.HasPage() {
		return sourceResult{strategy: metrics.StrategyNone, articles: []entity.Article{}}
	}

	raw, err := s.Fetcher.FetchHTML(ctx, src.PageURL)
	if err != nil {
		return sourceResult{strategy: metrics.StrategyPage, err: err}
	}
	articles, err := scraper.ExtractArticles(raw, src, s.PageLimit)
	if err != nil {
		return sourceResult{strategy: metrics.StrategyPage, err: err}
	}
	if len(articles) == 0 {
		return sourceResult{strategy: metrics.StrategyNone, articles: articles}
	}
	return sourceResult{strategy: metrics.StrategyPage, articles: articles}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
