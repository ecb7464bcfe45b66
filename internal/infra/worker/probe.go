package worker

import (
	"context"
	"log/slog"
	"time"

	"drupal-news/internal/domain/entity"
	"drupal-news/internal/observability/slo"
)

// Aggregator runs one aggregation over the source filter.
type Aggregator interface {
	Aggregate(ctx context.Context, sourceID string) (*entity.Envelope, error)
}

// ProbeResult summarises one probe run.
type ProbeResult struct {
	Sources      int
	Articles     int
	Failed       map[string]string
	Availability float64
	Duration     time.Duration
}

// Prober runs a full aggregation and records which sources answered.
// Results are not stored.
type Prober struct {
	Aggregator Aggregator
	Metrics    *Metrics
	Logger     *slog.Logger
	Timeout    time.Duration

	now func() time.Time
}

// NewProber returns a Prober bound to agg. A zero timeout leaves the run
// bounded only by ctx. m may be nil.
func NewProber(agg Aggregator, m *Metrics, logger *slog.Logger, timeout time.Duration) *Prober {
	return &Prober{
		Aggregator: agg,
		Metrics:    m,
		Logger:     logger,
		Timeout:    timeout,
		now:        time.Now,
	}
}

// Run probes every source once. A source is up when it is listed in the
// envelope and has no entry in its errors map.
func (p *Prober) Run(ctx context.Context) (ProbeResult, error) {
	start := p.clock()
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	logger := p.logger()
	env, err := p.Aggregator.Aggregate(ctx, "")
	elapsed := p.clock().Sub(start)
	if p.Metrics != nil {
		p.Metrics.JobDurationSeconds.Observe(elapsed.Seconds())
	}
	if err != nil {
		logger.Error("probe failed", slog.Any("error", err), slog.Duration("duration", elapsed))
		if p.Metrics != nil {
			p.Metrics.JobRunsTotal.WithLabelValues(StatusFailure).Inc()
		}
		return ProbeResult{Duration: elapsed}, err
	}

	up := make(map[string]bool, len(env.Sources))
	for _, s := range env.Sources {
		_, failed := env.Errors[s.ID]
		up[s.ID] = !failed
	}
	for id, msg := range env.Errors {
		logger.Warn("source probe failed", slog.String("source_id", id), slog.String("error", msg))
		if p.Metrics != nil {
			p.Metrics.SourceFailuresTotal.WithLabelValues(id).Inc()
		}
	}
	ratio := slo.UpdateSources(up)

	res := ProbeResult{
		Sources:      len(env.Sources),
		Articles:     len(env.Articles),
		Failed:       env.Errors,
		Availability: ratio,
		Duration:     elapsed,
	}

	if p.Metrics != nil {
		p.Metrics.JobRunsTotal.WithLabelValues(StatusSuccess).Inc()
		p.Metrics.SourcesProbedTotal.Add(float64(res.Sources))
		p.Metrics.LastSuccessTimestamp.SetToCurrentTime()
	}

	level := slog.LevelInfo
	if res.Sources > 0 && !slo.MeetsTarget(ratio) {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "probe completed",
		slog.Int("sources", res.Sources),
		slog.Int("failed", len(res.Failed)),
		slog.Int("articles", res.Articles),
		slog.Float64("availability", ratio),
		slog.Duration("duration", elapsed))

	return res, nil
}

func (p *Prober) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}

func (p *Prober) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}
