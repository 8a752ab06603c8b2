package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "credentials.env"))
	require.NoError(t, err)
	return s
}

func TestNormalizeClientName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"acme", "ACME"},
		{"Acme Corp", "ACME_CORP"},
		{"acme-prod.eu", "ACME_PROD_EU"},
		{"already_OK_42", "ALREADY_OK_42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeClientName(tt.in))
	}
}

func TestAddAndGetClient(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddClient("acme", "cid1", "csec1"))

	creds, ok := s.ClientCredentials("acme")
	require.True(t, ok)
	assert.Equal(t, "cid1", creds.ClientID)
	assert.Equal(t, "csec1", creds.ClientSecret)

	// Same normalized name, different spelling.
	err := s.AddClient("ACME", "other", "other")
	assert.ErrorIs(t, err, ErrClientExists)
}

func TestAddClientSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.env")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.AddClient("acme", "cid1", "csec1"))

	reopened, err := Open(path)
	require.NoError(t, err)
	creds, ok := reopened.ClientCredentials("acme")
	require.True(t, ok)
	assert.Equal(t, "cid1", creds.ClientID)
}

func TestAllClientsNoDuplicatesNoResidue(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddClient("acme", "id1", "sec1"))
	require.NoError(t, s.AddClient("beta", "id2", "sec2"))
	require.NoError(t, s.RemoveClient("acme"))
	require.NoError(t, s.AddClient("acme", "id3", "sec3"))

	clients, err := s.AllClients()
	require.NoError(t, err)
	assert.Equal(t, []string{"ACME", "BETA"}, clients)
}

func TestSetCurrentClient(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddClient("acme", "id", "sec"))

	require.NoError(t, s.SetCurrentClient("acme"))
	assert.Equal(t, "ACME", s.CurrentClient())

	// Unknown client fails and leaves the pointer unchanged.
	err := s.SetCurrentClient("ghost")
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.Equal(t, "ACME", s.CurrentClient())
}

func TestSetCurrentClientOnEmptyStore(t *testing.T) {
	s := newTestStore(t)
	err := s.SetCurrentClient("nobody")
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.Empty(t, s.CurrentClient())
}

func TestRemoveClientClearsCurrent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddClient("acme", "id", "sec"))
	require.NoError(t, s.SetCurrentClient("acme"))

	require.NoError(t, s.RemoveClient("acme"))

	assert.Empty(t, s.CurrentClient())
	_, ok := s.ClientCredentials("acme")
	assert.False(t, ok)

	clients, err := s.AllClients()
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestRemoveClientUnknownIsNoop(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.RemoveClient("ghost"))

	require.NoError(t, s.AddClient("acme", "id", "sec"))
	assert.NoError(t, s.RemoveClient("ghost"))

	creds, ok := s.ClientCredentials("acme")
	require.True(t, ok)
	assert.Equal(t, "id", creds.ClientID)
}

func TestClientCredentialsFallsBackToCurrent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddClient("acme", "id", "sec"))
	require.NoError(t, s.SetCurrentClient("acme"))

	creds, ok := s.ClientCredentials("")
	require.True(t, ok)
	assert.Equal(t, "id", creds.ClientID)
}

func TestClientCredentialsNoCurrent(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.ClientCredentials("")
	assert.False(t, ok)
}

func TestAllClientsSeesExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.env")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.AddClient("acme", "id", "sec"))

	// Simulate a hand-edited file: the mirror is stale but the scan is not.
	extra := "KAM_CLIENT_MANUAL_ID=mid\nKAM_CLIENT_MANUAL_SECRET=msec\n"
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString(extra)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	clients, err := s.AllClients()
	require.NoError(t, err)
	assert.Equal(t, []string{"ACME", "MANUAL"}, clients)

	// SetCurrentClient consults the file when the mirror misses.
	assert.NoError(t, s.SetCurrentClient("manual"))
}
