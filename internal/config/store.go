// Package config persists named OAuth client credentials for kamctl.
//
// The backing store is a human-editable file of KEY=VALUE lines. Keys follow
// the KAM_CLIENT_<NAME>_ID / KAM_CLIENT_<NAME>_SECRET pattern, with one
// KAM_CURRENT_CLIENT line selecting the active client. The file may be edited
// externally between runs; reads that enumerate clients go back to disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

const (
	clientKeyPrefix  = "KAM_CLIENT_"
	clientIDSuffix   = "_ID"
	clientSecSuffix  = "_SECRET"
	currentClientKey = "KAM_CURRENT_CLIENT"
)

var (
	// ErrClientExists is returned when adding a client whose name is taken.
	ErrClientExists = errors.New("client already exists")

	// ErrClientNotFound is returned when selecting an unregistered client.
	ErrClientNotFound = errors.New("client not found")
)

var clientIDLine = regexp.MustCompile(`^KAM_CLIENT_(.+)_ID=`)

// ClientCredentials is one stored credential pair.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
}

// Store is a file-backed credential store with an in-memory mirror.
// Writes go straight to disk; there is no locking, so concurrent processes
// mutating the same file race. Acceptable for a single-operator CLI.
type Store struct {
	path string
	env  map[string]string
}

// Open loads the store at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, env: map[string]string{}}
	if _, err := os.Stat(path); err == nil {
		env, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read credential store %s: %w", path, err)
		}
		s.env = env
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// NormalizeClientName uppercases name and maps every rune outside [A-Z0-9_]
// to an underscore. Client names are stored and compared in this form.
func NormalizeClientName(name string) string {
	upper := strings.ToUpper(name)
	var b strings.Builder
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func idKey(normalized string) string {
	return clientKeyPrefix + normalized + clientIDSuffix
}

func secretKey(normalized string) string {
	return clientKeyPrefix + normalized + clientSecSuffix
}

func (s *Store) readFile() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// AddClient registers a new credential pair. The file write is append-only;
// existing lines are never rewritten by this operation.
func (s *Store) AddClient(name, clientID, clientSecret string) error {
	normalized := NormalizeClientName(name)
	key := idKey(normalized)

	content, _ := s.readFile()
	if _, ok := s.env[key]; ok || strings.Contains(content, key) {
		return fmt.Errorf("client %q: %w", name, ErrClientExists)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create credential store directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}
	defer f.Close()

	entry := fmt.Sprintf("\n%s=%s\n%s=%s\n", key, clientID, secretKey(normalized), clientSecret)
	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to write credential store: %w", err)
	}

	s.env[key] = clientID
	s.env[secretKey(normalized)] = clientSecret
	return nil
}

// RemoveClient deletes a client's credential lines and, if it was the current
// client, the current-client line. Removing an unknown client is a silent
// no-op; see DESIGN.md for the rationale.
func (s *Store) RemoveClient(name string) error {
	normalized := NormalizeClientName(name)

	content, exists := s.readFile()
	if !exists {
		return nil
	}

	idPrefix := idKey(normalized) + "="
	secretPrefix := secretKey(normalized) + "="
	wasCurrent := s.env[currentClientKey] == normalized

	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, idPrefix) || strings.HasPrefix(trimmed, secretPrefix) {
			continue
		}
		if wasCurrent && strings.HasPrefix(trimmed, currentClientKey+"=") {
			continue
		}
		kept = append(kept, line)
	}

	out := strings.TrimSpace(strings.Join(kept, "\n")) + "\n"
	if err := os.WriteFile(s.path, []byte(out), 0o600); err != nil {
		return fmt.Errorf("failed to write credential store: %w", err)
	}

	delete(s.env, idKey(normalized))
	delete(s.env, secretKey(normalized))
	if wasCurrent {
		delete(s.env, currentClientKey)
	}
	return nil
}

// SetCurrentClient selects the active client. The client must already be
// registered, either in memory or on disk (the file wins over a stale mirror).
func (s *Store) SetCurrentClient(name string) error {
	normalized := NormalizeClientName(name)
	key := idKey(normalized)

	if _, ok := s.env[key]; !ok {
		content, _ := s.readFile()
		if !strings.Contains(content, key) {
			return fmt.Errorf("client %q: %w", name, ErrClientNotFound)
		}
	}

	content, _ := s.readFile()
	if strings.Contains(content, currentClientKey+"=") {
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), currentClientKey+"=") {
				lines[i] = currentClientKey + "=" + normalized
			}
		}
		content = strings.Join(lines, "\n")
	} else {
		content += "\n" + currentClientKey + "=" + normalized + "\n"
	}

	if err := os.WriteFile(s.path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write credential store: %w", err)
	}

	s.env[currentClientKey] = normalized
	return nil
}

// CurrentClient returns the active client's normalized name, or "" when none
// is selected.
func (s *Store) CurrentClient() string {
	return s.env[currentClientKey]
}

// ClientCredentials resolves the credential pair for name, falling back to
// the current client when name is empty. The pair is complete or absent.
func (s *Store) ClientCredentials(name string) (ClientCredentials, bool) {
	var normalized string
	if name != "" {
		normalized = NormalizeClientName(name)
	} else {
		normalized = s.CurrentClient()
	}
	if normalized == "" {
		return ClientCredentials{}, false
	}

	id := s.env[idKey(normalized)]
	secret := s.env[secretKey(normalized)]
	if id == "" || secret == "" {
		return ClientCredentials{}, false
	}
	return ClientCredentials{ClientID: id, ClientSecret: secret}, true
}

// AllClients enumerates registered client names by scanning the backing file,
// so clients added by hand are picked up. Names are deduplicated and sorted.
func (s *Store) AllClients() ([]string, error) {
	content, exists := s.readFile()
	if !exists {
		return nil, nil
	}

	seen := map[string]struct{}{}
	for _, line := range strings.Split(content, "\n") {
		m := clientIDLine.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil {
			seen[m[1]] = struct{}{}
		}
	}

	clients := make([]string, 0, len(seen))
	for name := range seen {
		clients = append(clients, name)
	}
	sort.Strings(clients)
	return clients, nil
}
