package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drupal-news/internal/domain/entity"
)

func TestNewScheduler(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "Europe/Brussels"
	p := NewProber(&stubAggregator{env: &entity.Envelope{}}, nil, discardLogger(), cfg.Timeout)

	c, err := NewScheduler(context.Background(), cfg, p, discardLogger())

	require.NoError(t, err)
	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Europe/Brussels", c.Location().String())
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Schedule = "not a schedule"
	p := NewProber(&stubAggregator{}, nil, discardLogger(), 0)

	_, err := NewScheduler(context.Background(), cfg, p, discardLogger())

	assert.Error(t, err)
}

func TestCronLogger(t *testing.T) {
	l := cronLogger{logger: discardLogger()}
	assert.NotPanics(t, func() {
		l.Info("start", "now", 1)
		l.Error(assert.AnError, "job failed", "entry", 2)
	})
}
