package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/teranos/wabbit/config"
	"github.com/teranos/wabbit/errors"
	"github.com/teranos/wabbit/logger"
	"github.com/teranos/wabbit/sym"
	"github.com/teranos/wabbit/vw/wire"
)

// TeachCmd streams a file of example lines to the learner.
var TeachCmd = &cobra.Command{
	Use:   "teach <file>",
	Short: sym.Teach + " Feed a file of example lines to the learner",
	Long: sym.Teach + ` teach - stream training examples

Each line of the file is sent to the learner as-is. Use "-" to read from
stdin. The feed rate honors teach.rate_per_second from configuration and
picks up config file edits mid-run, so a long feed can be throttled or
unthrottled without restarting.

Examples:
  wabbit teach examples.vw
  wabbit teach - < examples.vw
  wabbit teach --rate 100 examples.vw        # Cap at 100 examples/second
  wabbit teach --save model.vw examples.vw   # Snapshot when done`,
	Args: cobra.ExactArgs(1),
	RunE: runTeach,
}

var (
	teachSaveFlag string
	teachRateFlag float64
)

func init() {
	TeachCmd.Flags().StringVar(&teachSaveFlag, "save", "", "Snapshot the model to this path after the feed completes")
	TeachCmd.Flags().Float64Var(&teachRateFlag, "rate", 0, "Examples per second (overrides teach.rate_per_second, 0 = unlimited)")
}

func runTeach(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}

	input := os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrapf(err, "open examples file %s", args[0])
		}
		defer f.Close()
		input = f
	}

	session, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	var sessionID string
	if store != nil {
		defer store.Close()
		if sessionID, err = store.BeginSession(cfg.VW.Command); err != nil {
			return err
		}
		defer store.EndSession(sessionID)
	}

	perSecond := cfg.Teach.RatePerSecond
	if cmd.Flags().Changed("rate") {
		perSecond = teachRateFlag
	}
	limiter := rate.NewLimiter(teachLimit(perSecond), 1)
	// The flag pins the rate; only a config-sourced rate tracks file edits.
	if !cmd.Flags().Changed("rate") {
		if watcher := watchTeachRate(limiter); watcher != nil {
			defer watcher.Stop()
		}
	}

	var sent, failed int
	start := time.Now()
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := limiter.Wait(cmd.Context()); err != nil {
			return errors.Wrap(err, "rate limiter interrupted")
		}

		lineStart := time.Now()
		raw, err := session.SendLine(cmd.Context(), line)
		if err != nil {
			return errors.Wrapf(err, "after %d examples", sent)
		}
		sent++

		result := wire.Decode(raw, cfg.VW.RawOutput)
		if result.Kind == wire.KindText && !cfg.VW.RawOutput {
			failed++
		}
		recordExchange(store, sessionID, line, result, time.Since(lineStart))
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "read examples from %s", args[0])
	}

	if teachSaveFlag != "" {
		if _, err := session.SaveModel(cmd.Context(), teachSaveFlag); err != nil {
			return err
		}
	}

	logger.VWInfow("Teaching complete",
		logger.FieldCount, sent,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	fmt.Printf("%s taught %d examples in %s\n", sym.Teach, sent, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		fmt.Printf("  %d responses carried no numeric prediction\n", failed)
	}
	if teachSaveFlag != "" {
		fmt.Printf("%s model saved to %s\n", sym.Model, teachSaveFlag)
	}
	return nil
}

// teachLimit maps examples-per-second to a limiter rate, with zero meaning
// unlimited.
func teachLimit(perSecond float64) rate.Limit {
	if perSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSecond)
}

// watchTeachRate applies config file edits to a running feed's limiter.
// Returns nil when no config file exists to watch.
func watchTeachRate(limiter *rate.Limiter) *config.Watcher {
	path := ConfigPath
	if path == "" {
		path = config.ProjectConfigPath()
	}
	if path == "" {
		return nil
	}

	watcher, err := config.NewWatcher(path)
	if err != nil {
		logger.Warnw("Cannot watch config for rate changes", logger.FieldError, err)
		return nil
	}
	watcher.OnReload(func(cfg *config.Config) error {
		limiter.SetLimit(teachLimit(cfg.Teach.RatePerSecond))
		logger.Infow("Teach rate updated", "rate_per_second", cfg.Teach.RatePerSecond)
		return nil
	})
	watcher.Start()
	return watcher
}
