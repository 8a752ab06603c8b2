// Package auth manages OAuth access tokens for the active Kameleoon client,
// caching each token for a fixed window and refreshing on expiry or client
// switch.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kamctl/kamctl/internal/config"
	"github.com/kamctl/kamctl/internal/utils"
)

// tokenLifetime is how long a fetched token is reused before a refresh.
// Kameleoon issues hour-long tokens; the shorter window leaves a safety
// margin so a token never expires mid-request.
const tokenLifetime = 55 * time.Minute

var (
	// ErrNoActiveClient is returned when no client has been selected and
	// none is named explicitly.
	ErrNoActiveClient = errors.New("no active client configured")

	// ErrCredentialsNotFound is returned when the active client's
	// credentials are missing from the store.
	ErrCredentialsNotFound = errors.New("credentials not found for active client")
)

// TokenSource exchanges client credentials for an access token.
type TokenSource interface {
	AccessToken(ctx context.Context, clientID, clientSecret string) (string, error)
}

// Manager caches one access token for the currently active client.
type Manager struct {
	mu     sync.Mutex
	store  *config.Store
	source TokenSource
	now    func() time.Time

	// activeClient names the client the cached token was fetched for.
	activeClient string
	token        string
	expiresAt    time.Time
}

// NewManager returns a manager bound to the credential store and token
// source.
func NewManager(store *config.Store, source TokenSource) *Manager {
	return &Manager{
		store:  store,
		source: source,
		now:    time.Now,
	}
}

// Token returns a valid access token for the active client, fetching a new
// one when the cache is empty, expired, or bound to a different client. The
// store's pointer is re-read on every call, so a selection changed outside
// this manager still invalidates the cache.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	client := m.store.CurrentClient()
	if client == "" {
		return "", ErrNoActiveClient
	}

	if m.token != "" && m.activeClient == client && m.now().Before(m.expiresAt) {
		return m.token, nil
	}

	creds, ok := m.store.ClientCredentials(client)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCredentialsNotFound, client)
	}

	utils.Log.Debugf("fetching access token for client %s", client)
	token, err := m.source.AccessToken(ctx, creds.ClientID, creds.ClientSecret)
	if err != nil {
		return "", err
	}

	m.activeClient = client
	m.token = token
	m.expiresAt = m.now().Add(tokenLifetime)
	return token, nil
}

// SwitchClient makes name the active client and drops the cached token. A
// failed switch leaves both the store pointer and the cache untouched.
func (m *Manager) SwitchClient(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.SetCurrentClient(name); err != nil {
		return err
	}
	m.activeClient = ""
	m.token = ""
	m.expiresAt = time.Time{}
	return nil
}

// Invalidate drops the cached token so the next Token call fetches a fresh
// one.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expiresAt = time.Time{}
}

// ActiveClient reports the client the store currently points at.
func (m *Manager) ActiveClient() string {
	return m.store.CurrentClient()
}
