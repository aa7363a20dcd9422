// Package config loads wabbit configuration from TOML files, environment
// variables, and defaults, in that precedence order.
package config

import "time"

// Config is the full wabbit configuration.
type Config struct {
	VW      VWConfig      `mapstructure:"vw"`
	History HistoryConfig `mapstructure:"history"`
	Teach   TeachConfig   `mapstructure:"teach"`
}

// VWConfig configures the external learner and the session speaking to it.
type VWConfig struct {
	// Command is the full command line for the learner. Piping predictions
	// to stdout and suppressing progress output are mandatory for the line
	// protocol to work.
	Command string `mapstructure:"command"`

	TimeoutSeconds int  `mapstructure:"timeout_seconds"` // per-exchange deadline
	RawOutput      bool `mapstructure:"raw_output"`      // skip numeric decoding
	Escape         bool `mapstructure:"escape"`          // escape reserved characters in labels
	Validate       bool `mapstructure:"validate"`        // reject reserved characters (when escape is off)

	// EchoLines is how many lines the channel echoes back before the true
	// response: 1 under a pty, usually 0 over plain pipes.
	EchoLines int `mapstructure:"echo_lines"`
}

// Timeout returns the per-exchange deadline as a duration.
func (c VWConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HistoryConfig configures the exchange journal.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// TeachConfig configures bulk training feeds.
type TeachConfig struct {
	// RatePerSecond caps examples sent per second; 0 means unlimited.
	RatePerSecond float64 `mapstructure:"rate_per_second"`
}
