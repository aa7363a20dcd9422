package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/wabbit/errors"
	"github.com/teranos/wabbit/history"
	"github.com/teranos/wabbit/sym"
)

// HistoryCmd inspects the exchange journal.
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: sym.DB + " Inspect recorded sessions and exchanges",
	Long: sym.DB + ` history - what the learner was told, and when

Shows the most recent exchanges from the history database, newest first.
With --sessions, lists learner sessions instead.

Examples:
  wabbit history                # Last 20 exchanges
  wabbit history --limit 50
  wabbit history --sessions`,
	RunE: runHistory,
}

var (
	historyLimitFlag    int
	historySessionsFlag bool
)

func init() {
	HistoryCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Number of exchanges to show")
	HistoryCmd.Flags().BoolVar(&historySessionsFlag, "sessions", false, "List sessions instead of exchanges")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}
	if !cfg.History.Enabled {
		return errors.New("history is disabled; enable it with history.enabled = true in wabbit.toml")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return errors.Wrapf(err, "open history %s", cfg.History.Path)
	}
	defer store.Close()

	if historySessionsFlag {
		return printSessions(store)
	}
	return printExchanges(store)
}

func printSessions(store *history.Store) error {
	sessions, err := store.Sessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions recorded")
		return nil
	}

	fmt.Printf("%s Sessions\n", sym.DB)
	for _, s := range sessions {
		state := "open"
		if s.EndedAt != nil {
			state = s.EndedAt.Sub(s.StartedAt).Round(time.Second).String()
		}
		fmt.Printf("  %s  %s  %4d exchanges  %s\n",
			s.StartedAt.Format("2006-01-02 15:04:05"), shortID(s.ID), s.Exchanges, state)
		fmt.Printf("    %s\n", s.Command)
	}
	return nil
}

func printExchanges(store *history.Store) error {
	exchanges, err := store.RecentExchanges(historyLimitFlag)
	if err != nil {
		return err
	}
	if len(exchanges) == 0 {
		fmt.Println("no exchanges recorded")
		return nil
	}

	fmt.Printf("%s Exchanges (newest first)\n", sym.DB)
	for _, e := range exchanges {
		fmt.Printf("  %s  %s  %dms\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), shortID(e.SessionID), e.DurationMS)
		fmt.Printf("    %s %q\n", sym.Wire, e.Line)
		fmt.Printf("    = %s (%s)\n", e.Response, e.Kind)
	}
	return nil
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
