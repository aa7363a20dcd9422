package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/wabbit/config"
	"github.com/teranos/wabbit/errors"
)

// ConfigCmd manages wabbit configuration.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize configuration",
	Long: `config - effective configuration and bootstrap

"show" prints the fully-layered configuration (defaults, user file, project
file, environment) as TOML. "init" writes a default wabbit.toml into the
current directory to edit from.

Examples:
  wabbit config show
  wabbit config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return errors.Wrap(err, "load configuration")
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default wabbit.toml in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteDefault(config.FileName); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", config.FileName)
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}
