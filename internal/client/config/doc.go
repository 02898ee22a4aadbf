// Package config loads runtime configuration for the gophershop CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then the process environment
//     (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the storefront API, e.g. http://localhost:8017/V1
//	-t int      request timeout (seconds)
//	-d string   path of the local SQLite database
//	-i int      online status check interval (seconds)
//	-l string   log level: debug, info, warn, error
//	-m string   listen address for the /metrics endpoint, empty to disable
//	-o string   OTLP/HTTP trace collector endpoint, empty to disable
//
// Environment
//
//	GOPHERSHOP_API_URL, GOPHERSHOP_TIMEOUT, GOPHERSHOP_DB,
//	GOPHERSHOP_ONLINE_CHECK, GOPHERSHOP_LOG_LEVEL, GOPHERSHOP_METRICS_ADDR,
//	GOPHERSHOP_OTLP_ENDPOINT
//
// Durations in the environment accept "10s" style strings or whole seconds.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8017/V1",
//	  "request_timeout": "10s",
//	  "database_path": "gophershop.db",
//	  "online_check_interval": "3s",
//	  "log_level": "info",
//	  "metrics_addr": "127.0.0.1:9464",
//	  "otlp_endpoint": "localhost:4318"
//	}
//
// Only keys present in the file override earlier values.
package config
