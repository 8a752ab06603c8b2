package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kamctl/kamctl/internal/config"
)

var addClientCmd = &cobra.Command{
	Use:   "add-client <name> <client-id> <client-secret>",
	Short: "Register a Kameleoon OAuth client",
	Long: `Register a Kameleoon OAuth client under a memorable name. The credentials
are appended to the local store; an existing client is never overwritten.

The first registered client does not become active automatically; select it
with 'switch-client'.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		store, err := openStore()
		if err != nil {
			return err
		}

		name := args[0]
		if err := store.AddClient(name, args[1], args[2]); err != nil {
			if errors.Is(err, config.ErrClientExists) {
				logger.Error("Client %s already exists. Remove it first to change its credentials.", config.NormalizeClientName(name))
			}
			return err
		}

		logger.Success("Added client %s", config.NormalizeClientName(name))
		logger.Info("Activate it with: kamctl switch-client %s", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addClientCmd)
}
