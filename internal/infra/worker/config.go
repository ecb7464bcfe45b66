package worker

import (
	"log/slog"
	"time"

	"drupal-news/internal/pkg/config"
)

// Environment variables read by LoadConfigFromEnv.
const (
	EnvSchedule   = "PROBE_SCHEDULE"
	EnvTimezone   = "PROBE_TIMEZONE"
	EnvTimeout    = "PROBE_TIMEOUT"
	EnvHealthPort = "WORKER_HEALTH_PORT"
)

const (
	MinProbeTimeout = 10 * time.Second
	MaxProbeTimeout = 30 * time.Minute
)

// ProbeConfig controls the source probe schedule.
type ProbeConfig struct {
	// Schedule is a five-field cron expression.
	Schedule string
	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string
	// Timeout bounds one probe run.
	Timeout time.Duration
	// HealthPort serves /health, /health/ready and /metrics.
	HealthPort int
}

func DefaultConfig() ProbeConfig {
	return ProbeConfig{
		Schedule:   "*/15 * * * *",
		Timezone:   "UTC",
		Timeout:    2 * time.Minute,
		HealthPort: 9091,
	}
}

// Validate checks every field.
func (c ProbeConfig) Validate() error {
	if err := config.ValidateCronSchedule(c.Schedule); err != nil {
		return err
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		return err
	}
	if err := config.ValidateDuration(c.Timeout, MinProbeTimeout, MaxProbeTimeout); err != nil {
		return err
	}
	return config.ValidatePort(c.HealthPort)
}

// Location resolves Timezone, falling back to UTC.
func (c ProbeConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfigFromEnv reads the probe settings. It never fails: each invalid
// value is replaced by its default, logged as a warning and counted in m.
// m may be nil.
func LoadConfigFromEnv(logger *slog.Logger, m *Metrics) ProbeConfig {
	def := DefaultConfig()
	fallback := false

	note := func(field, warning string) {
		fallback = true
		logger.Warn(warning, slog.String("field", field))
		if m != nil {
			m.Config.RecordFallback(field)
		}
	}

	schedule := config.LoadEnvString(EnvSchedule, def.Schedule, config.ValidateCronSchedule)
	if schedule.FallbackApplied {
		note("schedule", schedule.Warning)
	}
	tz := config.LoadEnvString(EnvTimezone, def.Timezone, config.ValidateTimezone)
	if tz.FallbackApplied {
		note("timezone", tz.Warning)
	}
	timeout := config.LoadEnvDuration(EnvTimeout, def.Timeout, func(d time.Duration) error {
		return config.ValidateDuration(d, MinProbeTimeout, MaxProbeTimeout)
	})
	if timeout.FallbackApplied {
		note("timeout", timeout.Warning)
	}
	port := config.LoadEnvInt(EnvHealthPort, def.HealthPort, config.ValidatePort)
	if port.FallbackApplied {
		note("health_port", port.Warning)
	}

	if m != nil {
		m.Config.SetFallbackActive(fallback)
		m.Config.RecordLoadTimestamp()
	}

	return ProbeConfig{
		Schedule:   schedule.Value,
		Timezone:   tz.Value,
		Timeout:    timeout.Value,
		HealthPort: port.Value,
	}
}
