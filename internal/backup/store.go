// Package backup persists tracking-script snapshots as JSON files so a
// script can be restored after a bad update.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/kamctl/kamctl/internal/utils"
)

// Backup is one saved tracking-script snapshot.
type Backup struct {
	SiteID         int    `json:"siteId"`
	SiteCode       string `json:"siteCode"`
	SiteName       string `json:"siteName"`
	TrackingScript string `json:"trackingScript"`
	SavedAt        string `json:"savedAt"`
	TriggeredBy    string `json:"triggeredBy,omitempty"`
}

// Store writes backups under <root>/tracking-scripts.
type Store struct {
	root string
	now  func() time.Time
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// the first save.
func NewStore(dir string) *Store {
	return &Store{root: dir, now: time.Now}
}

func (s *Store) dir() string {
	return filepath.Join(s.root, "tracking-scripts")
}

// filename encodes the site and timestamp so listings sort by name. Colons
// and dots are not safe in filenames everywhere, so they become dashes.
func filename(siteID int, savedAt string) string {
	safe := strings.NewReplacer(":", "-", ".", "-").Replace(savedAt)
	return fmt.Sprintf("site-%d-%s.json", siteID, safe)
}

// Save snapshots script for the given site and returns the stored backup,
// including its savedAt timestamp.
func (s *Store) Save(siteID int, siteCode, siteName, script, triggeredBy string) (*Backup, error) {
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	b := &Backup{
		SiteID:         siteID,
		SiteCode:       siteCode,
		SiteName:       siteName,
		TrackingScript: script,
		SavedAt:        s.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		TriggeredBy:    triggeredBy,
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	path := filepath.Join(s.dir(), filename(siteID, b.SavedAt))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}

	utils.Log.Debugf("saved tracking script backup %s", path)
	return b, nil
}

// List returns backups most recent first. A siteID of 0 lists every site; a
// missing backup directory yields an empty list.
func (s *Store) List(siteID int) ([]*Backup, error) {
	entries, err := os.ReadDir(s.dir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	// the timestamp is zero-padded, so reverse name order is reverse time order
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var backups []*Backup
	for _, name := range names {
		b, err := s.read(filepath.Join(s.dir(), name))
		if err != nil {
			utils.Log.Warnf("skipping unreadable backup %s: %v", name, err)
			continue
		}
		if siteID != 0 && b.SiteID != siteID {
			continue
		}
		backups = append(backups, b)
	}
	return backups, nil
}

// Get finds the backup for siteID with the exact savedAt timestamp.
func (s *Store) Get(siteID int, savedAt string) (*Backup, error) {
	backups, err := s.List(siteID)
	if err != nil {
		return nil, err
	}
	for _, b := range backups {
		if b.SavedAt == savedAt {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no backup for site %d at %s", siteID, savedAt)
}

func (s *Store) read(path string) (*Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
