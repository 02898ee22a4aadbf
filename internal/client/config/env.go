package config

import (
	"fmt"
	"strconv"
	"time"
)

const envPrefix = "GOPHERSHOP_"

// parseEnv overlays Config with GOPHERSHOP_* variables. lookup is
// os.LookupEnv outside tests.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return
		}
		d, err := parseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s%s: %w", envPrefix, name, err))
		}
		*dst = d
	}

	str("API_URL", &cfg.APIBaseURL)
	dur("TIMEOUT", &cfg.RequestTimeout)
	str("DB", &cfg.DatabasePath)
	dur("ONLINE_CHECK", &cfg.OnlineCheckInterval)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("METRICS_ADDR", &cfg.MetricsAddr)
	str("OTLP_ENDPOINT", &cfg.OTLPEndpoint)
}

// parseDuration accepts "1m30s" style strings or a whole number of seconds.
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
