package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"drupal-news/pkg/config"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("NEWS_TEST_STRING", "  value ")
	assert.Equal(t, "value", config.GetEnvString("NEWS_TEST_STRING", "def"))
	assert.Equal(t, "def", config.GetEnvString("NEWS_TEST_UNSET", "def"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid", value: "42", want: 42},
		{name: "negative", value: "-3", want: -3},
		{name: "invalid falls back", value: "4x", want: 7},
		{name: "blank falls back", value: "   ", want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NEWS_TEST_INT", tt.value)
			assert.Equal(t, tt.want, config.GetEnvInt("NEWS_TEST_INT", 7))
		})
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("NEWS_TEST_INT64", "10485760")
	assert.Equal(t, int64(10485760), config.GetEnvInt64("NEWS_TEST_INT64", 1))

	t.Setenv("NEWS_TEST_INT64", "ten")
	assert.Equal(t, int64(1), config.GetEnvInt64("NEWS_TEST_INT64", 1))
}

func TestGetEnvFloat64(t *testing.T) {
	t.Setenv("NEWS_TEST_FLOAT", "2.5")
	assert.InDelta(t, 2.5, config.GetEnvFloat64("NEWS_TEST_FLOAT", 1), 1e-9)

	t.Setenv("NEWS_TEST_FLOAT", "fast")
	assert.InDelta(t, 1.0, config.GetEnvFloat64("NEWS_TEST_FLOAT", 1), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{value: "true", def: false, want: true},
		{value: "1", def: false, want: true},
		{value: "FALSE", def: true, want: false},
		{value: "0", def: true, want: false},
		{value: "yes", def: true, want: true},
		{value: "", def: false, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("NEWS_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, config.GetEnvBool("NEWS_TEST_BOOL", tt.def))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("NEWS_TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, config.GetEnvDuration("NEWS_TEST_DURATION", time.Second))

	t.Setenv("NEWS_TEST_DURATION", "soon")
	assert.Equal(t, time.Second, config.GetEnvDuration("NEWS_TEST_DURATION", time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	def := []string{"*"}

	t.Setenv("NEWS_TEST_LIST", "https://a.example, ,https://b.example ")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.GetEnvStringList("NEWS_TEST_LIST", def))

	t.Setenv("NEWS_TEST_LIST", " , ,")
	assert.Equal(t, def, config.GetEnvStringList("NEWS_TEST_LIST", def))
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, config.ValidatePositiveDuration(time.Millisecond))
	assert.Error(t, config.ValidatePositiveDuration(0))
	assert.Error(t, config.ValidatePositiveDuration(-time.Second))
}
