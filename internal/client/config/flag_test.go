package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	full := defaults()
	full.APIBaseURL = "https://shop.example/V1"
	full.RequestTimeout = 5 * time.Second
	full.DatabasePath = "/tmp/shop.db"
	full.OnlineCheckInterval = 10 * time.Second
	full.LogLevel = "debug"
	full.MetricsAddr = ":9464"
	full.OTLPEndpoint = "localhost:4318"

	tests := []struct {
		expected    Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"-a", "https://shop.example/V1", "-t", "5", "-d", "/tmp/shop.db", "-i", "10", "-l", "debug", "-m", ":9464", "-o", "localhost:4318"},
			expected: full},
		{name: "unrelated flags ignored", args: []string{"-c", "cfg.json", "-x", "-a=https://shop.example/V1"},
			expected: func() Config { c := defaults(); c.APIBaseURL = "https://shop.example/V1"; return c }()},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, expectPanic: true},
		{name: "incorrect check interval", args: []string{"-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := defaults()

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(&config, tt.args) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(&config, tt.args) })
			}
		})
	}
}

func TestParseFlags_KeepsSubSecondWhenUnset(t *testing.T) {
	config := defaults()
	config.RequestTimeout = 1500 * time.Millisecond

	parseFlags(&config, []string{"-l", "warn"})
	assert.Equal(t, 1500*time.Millisecond, config.RequestTimeout)
}
