// Package commands implements the wabbit CLI subcommands. Each command loads
// configuration, starts a learner session, performs its exchanges, and tears
// the process down; the learner's in-memory state only spans one command
// unless a model file carries it across.
package commands

import (
	"strconv"
	"strings"
	"time"

	"github.com/teranos/wabbit/config"
	"github.com/teranos/wabbit/errors"
	"github.com/teranos/wabbit/history"
	"github.com/teranos/wabbit/logger"
	"github.com/teranos/wabbit/vw"
	"github.com/teranos/wabbit/vw/wire"
)

// ConfigPath overrides config discovery when set via the --config flag.
var ConfigPath string

func loadConfig() (*config.Config, error) {
	if ConfigPath != "" {
		return config.LoadFromFile(ConfigPath)
	}
	return config.Load()
}

func sessionConfig(cfg *config.Config) vw.SessionConfig {
	return vw.SessionConfig{
		RawOutput: cfg.VW.RawOutput,
		EchoLines: cfg.VW.EchoLines,
		Timeout:   cfg.VW.Timeout(),
		Logger:    logger.Logger,
	}
}

// openSession starts the configured learner.
func openSession(cfg *config.Config) (*vw.Session, error) {
	return vw.Open(cfg.VW.Command, sessionConfig(cfg))
}

// wirePolicy maps the configured escape/validate switches onto the codec.
func wirePolicy(cfg *config.Config) wire.Policy {
	return wire.Policy{
		Escape:   cfg.VW.Escape,
		Validate: cfg.VW.Validate,
	}
}

// openHistory returns the journal when enabled, or nil.
func openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open history %s", cfg.History.Path)
	}
	return store, nil
}

// recordExchange journals one exchange, tolerating a nil store and logging
// rather than failing the command on journal errors.
func recordExchange(store *history.Store, sessionID, line string, result wire.Result, duration time.Duration) {
	if store == nil {
		return
	}
	if err := store.RecordExchange(sessionID, line, result.Raw, result, duration); err != nil {
		logger.Warnw("Failed to record exchange", logger.FieldError, err)
	}
}

// parseFeature interprets a command-line feature argument. "label:value"
// splits on the last colon when the value parses as a number; anything else
// is a bare label with the implicit weight 1.
func parseFeature(arg string) wire.Feature {
	if i := strings.LastIndex(arg, ":"); i > 0 {
		if v, err := strconv.ParseFloat(arg[i+1:], 64); err == nil {
			return wire.FV(arg[:i], v)
		}
	}
	return wire.F(arg)
}

func parseFeatures(args []string) []wire.Feature {
	features := make([]wire.Feature, len(args))
	for i, arg := range args {
		features[i] = parseFeature(arg)
	}
	return features
}
