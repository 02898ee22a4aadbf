// Package config handles configuration for the mock API server, including
// defaults, JSON overlay, and command-line flags.
package config

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/flagx"
	"github.com/dmitrijs2005/gophershop/internal/timex"
)

// Config holds runtime settings for the mock API.
//
// Fields:
//   - ListenAddr: bind address of the HTTP endpoint.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - AccessTokenTTL / RefreshTokenTTL: token lifetimes. The access token is
//     short-lived on purpose so the refresh path gets exercised.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ListenAddr      string
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	LogLevel        string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8017"
	c.SecretKey = "secretKey"
	c.AccessTokenTTL = time.Minute
	c.RefreshTokenTTL = 24 * time.Hour
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}

type JsonConfig struct {
	ListenAddr      *string         `json:"listen_addr"`
	SecretKey       *string         `json:"secret_key"`
	AccessTokenTTL  *timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL *timex.Duration `json:"refresh_token_ttl"`
	LogLevel        *string         `json:"log_level"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Read or unmarshal errors panic.
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
	if jc.ListenAddr != nil {
		cfg.ListenAddr = *jc.ListenAddr
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.AccessTokenTTL != nil {
		cfg.AccessTokenTTL = jc.AccessTokenTTL.Duration
	}
	if jc.RefreshTokenTTL != nil {
		cfg.RefreshTokenTTL = jc.RefreshTokenTTL.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}

// parseFlags populates Config from command-line flags.
//
// Supported flags:
//
//	-a string   listen address (e.g., ":8017")
//	-s string   JWT HMAC secret key
//	-ttl int    access token lifetime, seconds
//	-rttl int   refresh token lifetime, minutes
//	-l string   log level
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-ttl", "-rttl", "-l"})

	fs := flag.NewFlagSet("mockapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "JWT secret key")
	ttl := fs.Int("ttl", int(cfg.AccessTokenTTL.Seconds()), "access token lifetime (in seconds)")
	rttl := fs.Int("rttl", int(cfg.RefreshTokenTTL.Minutes()), "refresh token lifetime (in minutes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ttl":
			cfg.AccessTokenTTL = time.Duration(*ttl) * time.Second
		case "rttl":
			cfg.RefreshTokenTTL = time.Duration(*rttl) * time.Minute
		}
	})
}
