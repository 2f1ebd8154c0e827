package config

import "time"

// Config represents the complete application configuration.
// Layer 1: defaults set on the viper instance by the root command.
// Layer 2: user config file discovered via XDG paths.
// Layer 3: environment variables (CALLPACE_* per app identity) and flags.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Pacing  PacingConfig  `mapstructure:"pacing"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Limiter LimiterConfig `mapstructure:"limiter"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Health  HealthConfig  `mapstructure:"health"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PacingConfig controls the outbound call pacing applied by the run command.
//
// DefaultRate is the requests-per-minute ceiling used for any host without an
// explicit entry in HostRates. Rates must be positive; validation happens when
// a limiter is built so a bad value fails before the first request.
type PacingConfig struct {
	DefaultRate float64            `mapstructure:"default_rate"`
	HostRates   map[string]float64 `mapstructure:"host_rates"`
}

// FetchConfig contains outbound HTTP client configuration.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// LimiterConfig throttles inbound requests on the ops server. This is the
// server-side guard, unrelated to the outbound pacing primitive.
type LimiterConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// LoggingConfig contains logging configuration.
// Valid levels: trace, debug, info, warn, error.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HealthConfig contains health check configuration.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
