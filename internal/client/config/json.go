package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophershop/internal/flagx"
	"github.com/dmitrijs2005/gophershop/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell keys that are absent from keys set to a zero value.
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	DatabasePath        *string         `json:"database_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogLevel            *string         `json:"log_level"`
	MetricsAddr         *string         `json:"metrics_addr"`
	OTLPEndpoint        *string         `json:"otlp_endpoint"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read or unmarshal
// errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.MetricsAddr != nil {
		cfg.MetricsAddr = *jc.MetricsAddr
	}
	if jc.OTLPEndpoint != nil {
		cfg.OTLPEndpoint = *jc.OTLPEndpoint
	}
}
