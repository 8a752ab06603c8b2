package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerClientTools() {
	s.mcpServer.AddTool(mcp.NewTool("kameleoon_list_clients",
		mcp.WithDescription("List all configured Kameleoon clients"),
	), s.handleListClients)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_switch_client",
		mcp.WithDescription("Switch the active Kameleoon client"),
		mcp.WithString("clientName",
			mcp.Required(),
			mcp.Description("Name of the client to activate"),
		),
	), s.handleSwitchClient)

	s.mcpServer.AddTool(mcp.NewTool("kameleoon_current_client",
		mcp.WithDescription("Show the currently active Kameleoon client"),
	), s.handleCurrentClient)
}

func (s *Server) handleListClients(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clients, err := s.store.AllClients()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list clients: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"clients":       clients,
		"currentClient": s.auth.ActiveClient(),
	}), nil
}

func (s *Server) handleSwitchClient(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}
	name, ok := stringArg(args, "clientName")
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'clientName' argument"), nil
	}

	if err := s.auth.SwitchClient(name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to switch client: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Switched to client %s", s.auth.ActiveClient())), nil
}

func (s *Server) handleCurrentClient(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current := s.auth.ActiveClient()
	if current == "" {
		return mcp.NewToolResultError("no active client configured"), nil
	}
	return jsonResult(map[string]string{"currentClient": current}), nil
}
