package mcpserver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamctl/kamctl/internal/api"
	"github.com/kamctl/kamctl/internal/auth"
	"github.com/kamctl/kamctl/internal/backup"
	"github.com/kamctl/kamctl/internal/config"
)

// expectedTools is the exact tool surface agents rely on.
var expectedTools = []string{
	"kameleoon_list_clients",
	"kameleoon_switch_client",
	"kameleoon_current_client",
	"kameleoon_list_sites",
	"kameleoon_get_site",
	"kameleoon_get_site_by_code",
	"kameleoon_create_site",
	"kameleoon_update_site",
	"kameleoon_update_tracking_script",
	"kameleoon_delete_site",
	"kameleoon_list_goals",
	"kameleoon_get_goal",
	"kameleoon_create_goal",
	"kameleoon_delete_goal",
	"kameleoon_duplicate_goal_to_all_sites",
	"kameleoon_list_experiments",
	"kameleoon_get_experiment",
	"kameleoon_create_experiment",
	"kameleoon_update_experiment_status",
	"kameleoon_restart_experiment",
	"kameleoon_delete_experiment",
	"kameleoon_list_custom_data",
	"kameleoon_get_custom_data",
	"kameleoon_create_custom_data",
	"kameleoon_delete_custom_data",
	"kameleoon_get_segment",
	"kameleoon_duplicate_segment",
	"kameleoon_list_accounts",
	"kameleoon_get_account",
	"kameleoon_create_account",
	"kameleoon_delete_account",
	"kameleoon_list_tracking_script_backups",
	"kameleoon_get_tracking_script_backup",
	"kameleoon_restore_tracking_script",
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := config.Open(filepath.Join(t.TempDir(), "credentials"))
	require.NoError(t, err)
	gateway := api.New(api.DefaultBaseURL)
	return NewServer(gateway, auth.NewManager(store, gateway), store, backup.NewStore(t.TempDir()), "stdio")
}

func connect(t *testing.T, s *Server) *client.Client {
	t.Helper()
	ctx := context.Background()

	c, err := client.NewInProcessClient(s.mcpServer)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test", Version: "0.0.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)
	return c
}

func TestRegisteredToolNames(t *testing.T) {
	c := connect(t, newTestServer(t))

	result, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, expectedTools, names)
}

func TestSwitchClientUnknownIsToolError(t *testing.T) {
	c := connect(t, newTestServer(t))

	req := mcp.CallToolRequest{}
	req.Params.Name = "kameleoon_switch_client"
	req.Params.Arguments = map[string]interface{}{"clientName": "nope"}

	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err, "domain failures surface as tool errors, not protocol errors")
	assert.True(t, result.IsError)
}

func TestCurrentClientWithoutSelection(t *testing.T) {
	c := connect(t, newTestServer(t))

	req := mcp.CallToolRequest{}
	req.Params.Name = "kameleoon_current_client"
	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestListBackupsTruncatesScriptPreview(t *testing.T) {
	s := newTestServer(t)
	long := strings.Repeat("a", 150)
	_, err := s.backups.Save(7, "abc", "Acme", long, "update")
	require.NoError(t, err)
	_, err = s.backups.Save(8, "xyz", "Globex", "short", "update")
	require.NoError(t, err)

	c := connect(t, s)
	req := mcp.CallToolRequest{}
	req.Params.Name = "kameleoon_list_tracking_script_backups"
	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, strings.Repeat("a", 100)+"...", "long scripts get a truncation marker")
	assert.NotContains(t, text.Text, strings.Repeat("a", 101))
	assert.Contains(t, text.Text, `"scriptPreview":"short"`, "short scripts are kept verbatim")
}

func TestStartRejectsUnknownTransport(t *testing.T) {
	s := newTestServer(t)
	s.transport = "carrier-pigeon"
	err := s.Start(context.Background(), ":0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported server transport")
}
