// Package config reads typed settings from environment variables.
//
// Every getter falls back to its default when the variable is unset or
// blank. Values that fail to parse also fall back, with a warning logged, so
// a typo in a deployment never prevents startup.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup returns the trimmed value of key and whether it carries anything.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func warnInvalid(key, value string, def any, err error) {
	attrs := []any{
		slog.String("key", key),
		slog.String("value", value),
		slog.Any("default", def),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	slog.Warn("invalid value for environment variable, using default", attrs...)
}

// GetEnvString returns the value of key, or defaultValue when unset.
//
// Example:
//
//	port := GetEnvString("NEWS_SCRAPER_PORT", "3001")
func GetEnvString(key, defaultValue string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return defaultValue
}

// GetEnvInt returns key parsed as a base-10 int.
func GetEnvInt(key string, defaultValue int) int {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		warnInvalid(key, v, defaultValue, err)
		return defaultValue
	}
	return n
}

// GetEnvInt64 returns key parsed as a base-10 int64. Used for byte sizes.
func GetEnvInt64(key string, defaultValue int64) int64 {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		warnInvalid(key, v, defaultValue, err)
		return defaultValue
	}
	return n
}

// GetEnvFloat64 returns key parsed as a float64.
func GetEnvFloat64(key string, defaultValue float64) float64 {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		warnInvalid(key, v, defaultValue, err)
		return defaultValue
	}
	return f
}

// GetEnvBool returns key parsed with strconv.ParseBool
// ("1", "t", "true", "0", "f", "false" and their capitalized forms).
//
// Example:
//
//	enabled := GetEnvBool("RATE_LIMIT_ENABLED", true)
func GetEnvBool(key string, defaultValue bool) bool {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		warnInvalid(key, v, defaultValue, err)
		return defaultValue
	}
	return b
}

// GetEnvDuration returns key parsed by time.ParseDuration ("15s", "2m").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		warnInvalid(key, v, defaultValue.String(), err)
		return defaultValue
	}
	return d
}

// GetEnvStringList splits key on commas, trimming each element and dropping
// empty ones. An all-empty list yields defaultValue.
//
// Example:
//
//	// CORS_ALLOWED_ORIGINS="https://a.example, https://b.example"
//	origins := GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"*"})
func GetEnvStringList(key string, defaultValue []string) []string {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
