package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/wabbit/errors"
	"github.com/teranos/wabbit/sym"
	"github.com/teranos/wabbit/vw/wire"
)

// SendCmd sends one raw protocol line.
var SendCmd = &cobra.Command{
	Use:   "send <line>",
	Short: sym.Wire + " Send one raw protocol line to the learner",
	Long: sym.Wire + ` send - one raw line, one response

The line goes to the learner exactly as given: no escaping, no validation,
no encoding. Useful for control lines and protocol experiments.

Examples:
  wabbit send "1.0 | height:5.2 weight:120"
  wabbit send " | height:5.9"`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

var sendRawFlag bool

func init() {
	SendCmd.Flags().BoolVar(&sendRawFlag, "raw", false, "Print the raw response without numeric decoding")
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "load configuration")
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

	start := time.Now()
	raw, err := session.SendLine(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	result := wire.Decode(raw, sendRawFlag || cfg.VW.RawOutput)
	recordExchange(store, sessionID, args[0], result, time.Since(start))

	fmt.Println(result.String())
	return nil
}
