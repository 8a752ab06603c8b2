// Package mcpserver exposes the Kameleoon client as MCP tools so agents can
// drive sites, goals, experiments, custom data, segments, accounts and
// tracking-script backups through a single server.
package mcpserver

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kamctl/kamctl/internal/api"
	"github.com/kamctl/kamctl/internal/auth"
	"github.com/kamctl/kamctl/internal/backup"
	"github.com/kamctl/kamctl/internal/config"
)

// Server wraps the API gateway and exposes it via MCP.
type Server struct {
	gateway   *api.Client
	auth      *auth.Manager
	store     *config.Store
	backups   *backup.Store
	mcpServer *server.MCPServer
	transport string
}

// NewServer creates an MCP server over the given gateway, credential store
// and backup store.
func NewServer(gateway *api.Client, authMgr *auth.Manager, store *config.Store, backups *backup.Store, transport string) *Server {
	mcpServer := server.NewMCPServer(
		"kamctl",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
	)

	s := &Server{
		gateway:   gateway,
		auth:      authMgr,
		store:     store,
		backups:   backups,
		mcpServer: mcpServer,
		transport: transport,
	}

	s.registerClientTools()
	s.registerSiteTools()
	s.registerGoalTools()
	s.registerExperimentTools()
	s.registerCustomDataTools()
	s.registerSegmentTools()
	s.registerAccountTools()
	s.registerBackupTools()

	return s
}

// Start serves over stdio or streamable-http.
func (s *Server) Start(ctx context.Context, listenAddr string) error {
	switch s.transport {
	case "stdio":
		return server.ServeStdio(s.mcpServer)
	case "streamable-http":
		httpServer := server.NewStreamableHTTPServer(
			s.mcpServer,
			server.WithEndpointPath("/mcp"),
		)
		return httpServer.Start(listenAddr)
	default:
		return fmt.Errorf("unsupported server transport: %s", s.transport)
	}
}

// token resolves an access token for the active client.
func (s *Server) token(ctx context.Context) (string, error) {
	return s.auth.Token(ctx)
}

// argsMap extracts the request arguments as a map.
func argsMap(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	return args, ok
}

// stringArg returns a required string argument.
func stringArg(args map[string]interface{}, name string) (string, bool) {
	v, ok := args[name].(string)
	return v, ok && v != ""
}

// optStringArg returns an optional string argument, "" when absent.
func optStringArg(args map[string]interface{}, name string) string {
	v, _ := args[name].(string)
	return v
}

// intArg returns a required numeric argument. JSON numbers decode as float64.
func intArg(args map[string]interface{}, name string) (int, bool) {
	v, ok := args[name].(float64)
	return int(v), ok
}

// optIntArg returns an optional numeric argument, 0 when absent.
func optIntArg(args map[string]interface{}, name string) int {
	v, _ := args[name].(float64)
	return int(v)
}

// optBoolArg returns an optional boolean argument as a tri-state pointer.
func optBoolArg(args map[string]interface{}, name string) *bool {
	v, ok := args[name].(bool)
	if !ok {
		return nil
	}
	return &v
}

// stringSliceArg returns a required string-array argument.
func stringSliceArg(args map[string]interface{}, name string) ([]string, bool) {
	raw, ok := args[name].([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// jsonResult marshals v and wraps it in a text result.
func jsonResult(v interface{}) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}
