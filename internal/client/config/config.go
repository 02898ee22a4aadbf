package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the gophershop CLI.
//
// Units: RequestTimeout and OnlineCheckInterval are time.Duration values.
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	DatabasePath        string
	OnlineCheckInterval time.Duration
	LogLevel            string
	MetricsAddr         string
	OTLPEndpoint        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8017/V1"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "gophershop.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
	c.MetricsAddr = ""
	c.OTLPEndpoint = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones. Invalid input panics.
func LoadConfig() *Config {
	// A missing .env file is the normal case.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, os.LookupEnv)
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
