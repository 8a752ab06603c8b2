package shell

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamctl/kamctl/internal/api"
	"github.com/kamctl/kamctl/internal/auth"
	"github.com/kamctl/kamctl/internal/backup"
	"github.com/kamctl/kamctl/internal/config"
	"github.com/kamctl/kamctl/internal/ui"
)

func newTestShell(t *testing.T) *Shell {
	t.Helper()
	store, err := config.Open(filepath.Join(t.TempDir(), "credentials"))
	require.NoError(t, err)
	gateway := api.New(api.DefaultBaseURL)
	return NewShell(gateway, auth.NewManager(store, gateway), backup.NewStore(t.TempDir()), ui.NewLogger(false, false))
}

func TestUnknownCommandKeepsSessionAlive(t *testing.T) {
	s := newTestShell(t)
	err := s.executeCommand(context.Background(), "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
	assert.NotErrorIs(t, err, errExit)
}

func TestExitCommand(t *testing.T) {
	s := newTestShell(t)
	err := s.executeCommand(context.Background(), "exit")
	assert.ErrorIs(t, err, errExit)
}

func TestMissingArgumentsReportUsage(t *testing.T) {
	s := newTestShell(t)
	err := s.executeCommand(context.Background(), "sites:get")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: sites:get")
}

func TestRestoreCommandHiddenFromCompletion(t *testing.T) {
	s := newTestShell(t)
	require.Contains(t, s.commandHandlers, "xp:restore")
	assert.True(t, s.commandHandlers["xp:restore"].hidden)

	var names []string
	for _, item := range s.createCompleter().GetChildren() {
		names = append(names, strings.TrimSpace(string(item.GetName())))
	}
	assert.NotContains(t, names, "xp:restore")
	assert.Contains(t, names, "backups:restore")
}

func TestSplitCommandKeepsJSONIntact(t *testing.T) {
	parts := splitCommand(`goals:create {"name": "My goal", "siteId": 7}`)
	require.Len(t, parts, 2)
	assert.Equal(t, "goals:create", parts[0])
	assert.Equal(t, `{"name": "My goal", "siteId": 7}`, parts[1])
}

func TestSplitCommandPlainArgs(t *testing.T) {
	parts := splitCommand("seg:duplicate 9 abc def")
	assert.Equal(t, []string{"seg:duplicate", "9", "abc", "def"}, parts)
}

func TestParseIDRejectsNonNumeric(t *testing.T) {
	_, err := parseID("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a number")
}
