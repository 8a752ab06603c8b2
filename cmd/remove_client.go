package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kamctl/kamctl/internal/config"
)

var removeClientCmd = &cobra.Command{
	Use:     "remove-client <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a registered Kameleoon client",
	Long: `Remove a client's credentials from the local store. Removing the active
client clears the active-client selection. Removing a name that was never
registered is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		store, err := openStore()
		if err != nil {
			return err
		}

		if err := store.RemoveClient(args[0]); err != nil {
			return err
		}

		logger.Success("Removed client %s", config.NormalizeClientName(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeClientCmd)
}
