package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/wabbit/errors"
	"github.com/teranos/wabbit/sym"
	"github.com/teranos/wabbit/vw/wire"
)

// PredictCmd asks the learner for a prediction on ad-hoc features.
var PredictCmd = &cobra.Command{
	Use:   "predict <feature[:value]>...",
	Short: sym.Predict + " Ask for a prediction on ad-hoc features",
	Long: sym.Predict + ` predict - one unlabeled example, one prediction

Features are given as label or label:value arguments. They are escaped and
encoded into a proper example line before sending, so labels may contain
characters the protocol reserves.

Examples:
  wabbit predict height:5.2 weight:120
  wabbit predict --namespace body height:5.2
  wabbit predict --tag q1 fuzzy`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPredict,
}

var (
	predictTagFlag       string
	predictNamespaceFlag string
	predictScaleFlag     float64
)

func init() {
	PredictCmd.Flags().StringVar(&predictTagFlag, "tag", "", "Tag to attach to the example")
	PredictCmd.Flags().StringVar(&predictNamespaceFlag, "namespace", "", "Namespace name for the features")
	PredictCmd.Flags().Float64Var(&predictScaleFlag, "scale", 0, "Namespace importance scale (requires --namespace)")
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}

	ns, err := wire.NewNamespaceWith(wirePolicy(cfg), predictNamespaceFlag, parseFeatures(args)...)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("scale") {
		if predictNamespaceFlag == "" {
			return errors.New("--scale requires --namespace: an anonymous namespace cannot carry a scale")
		}
		ns.SetScale(predictScaleFlag)
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
	result, err := session.Predict(cmd.Context(), predictTagFlag, ns)
	if err != nil {
		return err
	}
	recordExchange(store, sessionID, wire.Encode(wire.NoLabel(), predictTagFlag, ns), result, time.Since(start))

	fmt.Println(result.String())
	return nil
}
