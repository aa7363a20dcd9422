package config

import (
	"strings"

	"github.com/teranos/wabbit/errors"
)

// Validate rejects configurations the session layer cannot honor.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.VW.Command) == "" {
		return errors.New("config: vw.command must not be empty")
	}
	if cfg.VW.TimeoutSeconds < 0 {
		return errors.Newf("config: vw.timeout_seconds must be >= 0, got %d", cfg.VW.TimeoutSeconds)
	}
	if cfg.VW.EchoLines < 0 {
		return errors.Newf("config: vw.echo_lines must be >= 0, got %d", cfg.VW.EchoLines)
	}
	if cfg.Teach.RatePerSecond < 0 {
		return errors.Newf("config: teach.rate_per_second must be >= 0, got %g", cfg.Teach.RatePerSecond)
	}
	if cfg.History.Enabled && strings.TrimSpace(cfg.History.Path) == "" {
		return errors.New("config: history.path must not be empty when history is enabled")
	}
	return nil
}
