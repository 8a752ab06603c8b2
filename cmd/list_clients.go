package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listClientsCmd = &cobra.Command{
	Use:     "list-clients",
	Aliases: []string{"ls"},
	Short:   "List registered Kameleoon clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		store, err := openStore()
		if err != nil {
			return err
		}

		clients, err := store.AllClients()
		if err != nil {
			return err
		}
		if len(clients) == 0 {
			logger.Info("No clients registered. Add one with: kamctl add-client <name> <id> <secret>")
			return nil
		}

		current := store.CurrentClient()
		for _, name := range clients {
			marker := "  "
			if name == current {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listClientsCmd)
}
