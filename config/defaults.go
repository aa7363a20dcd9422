package config

import "github.com/spf13/viper"

// DefaultCommand runs the learner in online mode with predictions piped
// back on stdout and progress chatter suppressed. --save_resume keeps
// snapshots restartable mid-stream.
const DefaultCommand = "vw --save_resume -p /dev/stdout --quiet"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("vw.command", DefaultCommand)
	v.SetDefault("vw.timeout_seconds", 5)
	v.SetDefault("vw.raw_output", false)
	v.SetDefault("vw.escape", true)
	v.SetDefault("vw.validate", true)
	v.SetDefault("vw.echo_lines", 0) // plain pipes do not echo

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "wabbit.db")

	v.SetDefault("teach.rate_per_second", 0.0) // unlimited
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults unmarshal into Config by construction.
		panic(err)
	}
	return cfg
}
