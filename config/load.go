package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/wabbit/errors"
)

// FileName is the config file wabbit looks for in the project tree and in
// the user config directory.
const FileName = "wabbit.toml"

// Load reads configuration with the standard layering: defaults, then the
// user file (~/.wabbit/wabbit.toml), then the nearest project file found by
// walking up from the working directory, then WABBIT_* environment
// variables.
func Load() (*Config, error) {
	return LoadWithViper(newViper())
}

// LoadWithViper unmarshals configuration from a prepared Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path, still layered
// over defaults and environment variables.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	bindEnv(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	return LoadWithViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	bindEnv(v)

	// Merge files in precedence order: user first, project overrides.
	for _, path := range []string{UserConfigPath(), findProjectConfig()} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		// MergeInConfig keeps earlier layers for keys the file omits.
		_ = v.MergeInConfig()
	}
	return v
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("WABBIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// UserConfigPath returns ~/.wabbit/wabbit.toml, or empty if the home
// directory cannot be determined.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wabbit", FileName)
}

// ProjectConfigPath returns the nearest wabbit.toml found by walking up from
// the working directory, or empty when there is none.
func ProjectConfigPath() string {
	return findProjectConfig()
}

// findProjectConfig walks up from the working directory looking for
// wabbit.toml, returning the first hit or empty.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
