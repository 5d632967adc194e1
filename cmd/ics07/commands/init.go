package commands

import (
	"github.com/spf13/cobra"

	"github.com/tendermint/ics07/config"
	"github.com/tendermint/ics07/libs/log"
	tmos "github.com/tendermint/ics07/libs/os"
)

// MakeInitCommand returns the command that writes the default config file.
func MakeInitCommand(conf *config.Config, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initializes the ics07 home directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.EnsureRoot(conf.RootDir); err != nil {
				return err
			}

			if tmos.FileExists(conf.ConfigFile()) {
				logger.Info("Found config file", "path", conf.ConfigFile())
				return nil
			}
			if err := config.WriteConfigFile(conf.RootDir, conf); err != nil {
				return err
			}
			logger.Info("Generated config file", "path", conf.ConfigFile())
			return nil
		},
	}
}
