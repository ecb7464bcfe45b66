package slo_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"drupal-news/internal/observability/slo"
)

func TestUpdateSources(t *testing.T) {
	ratio := slo.UpdateSources(map[string]bool{
		"dries":    true,
		"lullabot": true,
		"pantheon": false,
		"wimleers": true,
	})

	assert.Equal(t, 0.75, ratio)
	assert.Equal(t, 0.75, testutil.ToFloat64(slo.SourceAvailability))
	assert.Equal(t, 1.0, testutil.ToFloat64(slo.SourceUp.WithLabelValues("dries")))
	assert.Equal(t, 0.0, testutil.ToFloat64(slo.SourceUp.WithLabelValues("pantheon")))
}

func TestUpdateSources_Recovers(t *testing.T) {
	slo.UpdateSources(map[string]bool{"recovering": false})
	slo.UpdateSources(map[string]bool{"recovering": true})

	assert.Equal(t, 1.0, testutil.ToFloat64(slo.SourceUp.WithLabelValues("recovering")))
}

func TestUpdateSources_Empty(t *testing.T) {
	slo.UpdateSources(map[string]bool{"x": true})

	assert.Equal(t, 0.0, slo.UpdateSources(nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(slo.SourceAvailability))
}

func TestMeetsTarget(t *testing.T) {
	assert.True(t, slo.MeetsTarget(1))
	assert.True(t, slo.MeetsTarget(slo.SourceAvailabilitySLO))
	assert.False(t, slo.MeetsTarget(0.5))
}
