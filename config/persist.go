package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/wabbit/errors"
)

// fileConfig mirrors Config with TOML tags for writing. mapstructure tags
// drive reading through viper; pelletier drives writing.
type fileConfig struct {
	VW struct {
		Command        string `toml:"command"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		RawOutput      bool   `toml:"raw_output"`
		Escape         bool   `toml:"escape"`
		Validate       bool   `toml:"validate"`
		EchoLines      int    `toml:"echo_lines"`
	} `toml:"vw"`
	History struct {
		Enabled bool   `toml:"enabled"`
		Path    string `toml:"path"`
	} `toml:"history"`
	Teach struct {
		RatePerSecond float64 `toml:"rate_per_second"`
	} `toml:"teach"`
}

func toFileConfig(cfg *Config) fileConfig {
	var fc fileConfig
	fc.VW.Command = cfg.VW.Command
	fc.VW.TimeoutSeconds = cfg.VW.TimeoutSeconds
	fc.VW.RawOutput = cfg.VW.RawOutput
	fc.VW.Escape = cfg.VW.Escape
	fc.VW.Validate = cfg.VW.Validate
	fc.VW.EchoLines = cfg.VW.EchoLines
	fc.History.Enabled = cfg.History.Enabled
	fc.History.Path = cfg.History.Path
	fc.Teach.RatePerSecond = cfg.Teach.RatePerSecond
	return fc
}

// Marshal renders a config as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(toFileConfig(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "marshal config")
	}
	return data, nil
}

// Write persists cfg to path, backing up any existing file to path+".back"
// first and creating parent directories as needed.
func Write(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrapf(err, "create config directory for %s", path)
	}

	if prev, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+".back", prev, 0o644); err != nil {
			return errors.Wrap(err, "back up existing config")
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}

// WriteDefault writes the default configuration to path. It refuses to
// clobber an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf("config: %s already exists", path)
	}
	return Write(Default(), path)
}
