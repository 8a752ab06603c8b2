package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kamctl/kamctl/internal/config"
)

var switchClientCmd = &cobra.Command{
	Use:     "switch-client <name>",
	Aliases: []string{"use-client", "switch"},
	Short:   "Select the active Kameleoon client",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		store, err := openStore()
		if err != nil {
			return err
		}

		if err := store.SetCurrentClient(args[0]); err != nil {
			return err
		}

		logger.Success("Switched to client %s", config.NormalizeClientName(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(switchClientCmd)
}
