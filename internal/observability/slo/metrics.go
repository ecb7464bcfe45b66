// Package slo tracks how many configured sources answered the last probe.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SourceAvailabilitySLO is the target share of sources that must yield
// articles on each probe.
const SourceAvailabilitySLO = 0.85

var (
	// SourceUp is 1 when a source produced articles without error on the
	// last probe and 0 otherwise.
	SourceUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "slo_source_up",
			Help: "1 if the source answered the last probe, 0 otherwise",
		},
		[]string{"source_id"},
	)

	SourceAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_source_availability_ratio",
			Help: "Share of sources that answered the last probe (0-1), target: 0.85",
		},
	)
)

// UpdateSources records one probe outcome per source id and returns the
// resulting availability ratio. An empty map leaves the gauges untouched
// and returns 0.
func UpdateSources(up map[string]bool) float64 {
	if len(up) == 0 {
		return 0
	}
	healthy := 0
	for id, ok := range up {
		v := 0.0
		if ok {
			v = 1
			healthy++
		}
		SourceUp.WithLabelValues(id).Set(v)
	}
	ratio := float64(healthy) / float64(len(up))
	SourceAvailability.Set(ratio)
	return ratio
}

// MeetsTarget reports whether ratio satisfies SourceAvailabilitySLO.
func MeetsTarget(ratio float64) bool {
	return ratio >= SourceAvailabilitySLO
}
