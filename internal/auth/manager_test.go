package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamctl/kamctl/internal/config"
)

type fakeSource struct {
	calls int
	err   error
}

func (f *fakeSource) AccessToken(_ context.Context, clientID, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "tok-" + clientID + "-" + string(rune('0'+f.calls)), nil
}

func newTestStore(t *testing.T) *config.Store {
	t.Helper()
	store, err := config.Open(filepath.Join(t.TempDir(), "credentials"))
	require.NoError(t, err)
	return store
}

func TestTokenCachedWithinLifetime(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddClient("acme", "id-a", "secret-a"))
	require.NoError(t, store.SetCurrentClient("acme"))

	src := &fakeSource{}
	m := NewManager(store, src)
	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	first, err := m.Token(context.Background())
	require.NoError(t, err)

	clock = clock.Add(54 * time.Minute)
	second, err := m.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls, "token within lifetime must be reused")
}

func TestTokenRefreshedAfterLifetime(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddClient("acme", "id-a", "secret-a"))
	require.NoError(t, store.SetCurrentClient("acme"))

	src := &fakeSource{}
	m := NewManager(store, src)
	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	first, err := m.Token(context.Background())
	require.NoError(t, err)

	clock = clock.Add(56 * time.Minute)
	second, err := m.Token(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, src.calls)
}

func TestTokenNoActiveClient(t *testing.T) {
	m := NewManager(newTestStore(t), &fakeSource{})
	_, err := m.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveClient)
}

func TestTokenMissingCredentials(t *testing.T) {
	// Hand-edited store file: the pointer names a client whose secret line
	// was deleted.
	path := filepath.Join(t.TempDir(), "credentials")
	content := "KAM_CLIENT_ACME_ID=id-a\nKAM_CURRENT_CLIENT=ACME\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	store, err := config.Open(path)
	require.NoError(t, err)

	m := NewManager(store, &fakeSource{})
	_, err = m.Token(context.Background())
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestTokenFollowsStorePointer(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddClient("acme", "id-a", "secret-a"))
	require.NoError(t, store.AddClient("globex", "id-g", "secret-g"))
	require.NoError(t, store.SetCurrentClient("acme"))

	src := &fakeSource{}
	m := NewManager(store, src)

	first, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Contains(t, first, "id-a")

	// Repoint the store directly, without going through the manager.
	require.NoError(t, store.SetCurrentClient("globex"))

	second, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Contains(t, second, "id-g", "token must follow the store's pointer")
	assert.Equal(t, 2, src.calls)
}

func TestSwitchClientInvalidatesCache(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddClient("acme", "id-a", "secret-a"))
	require.NoError(t, store.AddClient("globex", "id-g", "secret-g"))
	require.NoError(t, store.SetCurrentClient("acme"))

	src := &fakeSource{}
	m := NewManager(store, src)

	_, err := m.Token(context.Background())
	require.NoError(t, err)

	require.NoError(t, m.SwitchClient("globex"))
	assert.Equal(t, "GLOBEX", m.ActiveClient())

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Contains(t, tok, "id-g", "token must come from the new client's credentials")
	assert.Equal(t, 2, src.calls)
}

func TestFailedSwitchKeepsCachedToken(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddClient("acme", "id-a", "secret-a"))
	require.NoError(t, store.SetCurrentClient("acme"))

	src := &fakeSource{}
	m := NewManager(store, src)

	first, err := m.Token(context.Background())
	require.NoError(t, err)

	err = m.SwitchClient("no-such-client")
	require.ErrorIs(t, err, config.ErrClientNotFound)
	assert.Equal(t, "ACME", m.ActiveClient())

	second, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls, "failed switch must not discard the cached token")
}

func TestInvalidateForcesRefresh(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddClient("acme", "id-a", "secret-a"))
	require.NoError(t, store.SetCurrentClient("acme"))

	src := &fakeSource{}
	m := NewManager(store, src)

	_, err := m.Token(context.Background())
	require.NoError(t, err)

	m.Invalidate()

	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}
