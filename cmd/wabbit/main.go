package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/wabbit/cmd/wabbit/commands"
	"github.com/teranos/wabbit/logger"
	"github.com/teranos/wabbit/sym"
)

var (
	jsonLogsFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "wabbit",
	Short: sym.VW + " Drive a Vowpal Wabbit learner over its line protocol",
	Long: sym.VW + ` wabbit - conversational driver for Vowpal Wabbit

wabbit keeps one learner process alive and speaks its stdin/stdout line
protocol: teach it labeled examples, ask it for predictions, and snapshot
its model, all against the same in-memory state.

Available commands:
  send       - Send one raw protocol line and print the response
  teach      - Feed a file of example lines to the learner
  predict    - Ask for a prediction on ad-hoc features
  save-model - Snapshot the learner's model to disk
  history    - Inspect recorded sessions and exchanges
  config     - Show or initialize configuration
  version    - Show version information

Examples:
  wabbit predict height:5.2 weight:120     # One-shot prediction
  wabbit teach examples.vw                 # Stream a training file
  wabbit teach - < examples.vw             # Same, from stdin
  wabbit save-model model.vw               # Snapshot current model
  wabbit history --limit 10                # Last 10 exchanges`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(verbosity, jsonLogsFlag); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogsFlag, "json-logs", false, "Emit logs as JSON instead of console output")
	rootCmd.PersistentFlags().StringVar(&commands.ConfigPath, "config", "", "Path to wabbit.toml (default: project then ~/.wabbit)")

	rootCmd.AddCommand(commands.SendCmd)
	rootCmd.AddCommand(commands.TeachCmd)
	rootCmd.AddCommand(commands.PredictCmd)
	rootCmd.AddCommand(commands.SaveModelCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
