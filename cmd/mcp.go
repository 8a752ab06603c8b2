package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamctl/kamctl/internal/mcpserver"
	"github.com/kamctl/kamctl/internal/utils"
)

const transportStreamableHTTP = "streamable-http"

var (
	serverTransport string
	listenAddr      string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server for AI assistants",
	Long: `Expose the Kameleoon API as MCP tools. With the default stdio transport the
command is meant to be launched by an AI assistant (configure it in the
assistant's MCP settings); with streamable-http it listens on /mcp.

The token for the active client is fetched lazily on the first tool call, so
the server starts even before any client is selected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serverTransport != "stdio" && serverTransport != transportStreamableHTTP {
			return fmt.Errorf("unsupported transport '%s' (use stdio or %s)", serverTransport, transportStreamableHTTP)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		gateway := newGateway()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		setupSignalHandler(cancel)

		server := mcpserver.NewServer(gateway, newAuthManager(store, gateway), store, newBackupStore(), serverTransport)

		if serverTransport == transportStreamableHTTP {
			addr := listenAddr
			if !strings.Contains(addr, ":") {
				addr = ":" + addr
			}
			utils.Log.Infof("listening on %s/mcp", addr)
		}

		return server.Start(ctx, listenAddr)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&serverTransport, "transport", "stdio", "Transport protocol for the MCP server (stdio, streamable-http)")
	mcpCmd.Flags().StringVar(&listenAddr, "listen-addr", ":8899", "Listen address for streamable-http (path is fixed to /mcp)")
	rootCmd.AddCommand(mcpCmd)
}
