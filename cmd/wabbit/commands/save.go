package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/wabbit/errors"
	"github.com/teranos/wabbit/sym"
)

// SaveModelCmd snapshots the learner's model to disk.
var SaveModelCmd = &cobra.Command{
	Use:   "save-model <path>",
	Short: sym.Model + " Snapshot the learner's model to disk",
	Long: sym.Model + ` save-model - write the current model

Starts the configured learner and immediately asks it to write its model to
the given path. Mostly useful with a command line that resumes from an
existing model (--save_resume -i model.vw); a fresh learner saves an
untrained model.

Examples:
  wabbit save-model model.vw`,
	Args: cobra.ExactArgs(1),
	RunE: runSaveModel,
}

func runSaveModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}

	session, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	if _, err := session.SaveModel(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("%s model saved to %s\n", sym.Model, args[0])
	return nil
}
