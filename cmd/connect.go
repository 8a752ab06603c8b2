package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kamctl/kamctl/internal/shell"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Open an interactive session with the active client",
	Long: `Authenticate with the active client's credentials and open an interactive
shell against the Kameleoon API. The token is fetched up front so credential
problems surface before the first command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		store, err := openStore()
		if err != nil {
			return err
		}
		gateway := newGateway()
		authMgr := newAuthManager(store, gateway)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		setupSignalHandler(cancel)

		if _, err := authMgr.Token(ctx); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
		logger.Success("Authenticated as %s", authMgr.ActiveClient())

		sh := shell.NewShell(gateway, authMgr, newBackupStore(), logger)
		return sh.Run(ctx)
	},
}

// setupSignalHandler sets up graceful shutdown on interrupt signals
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
