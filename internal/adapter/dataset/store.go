// Package dataset loads the career catalog from disk and serves immutable
// snapshots of it.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/careermitra/mentor-engine/internal/domain"
	"github.com/careermitra/mentor-engine/internal/observability"
)

// Store implements domain.DatasetProvider. Entries keep file order so
// tie-breaks stay deterministic across reloads.
type Store struct {
	path string
	snap atomic.Value // holds *snapshot
}

type snapshot struct {
	entries  []domain.CareerEntry
	version  int64
	loadedAt time.Time
}

// Open loads the catalog at path. JSON and YAML are selected by extension.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	entries, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("op=dataset.Open: %w", err)
	}
	s.snap.Store(&snapshot{entries: entries, version: 1, loadedAt: time.Now()})
	return s, nil
}

// Entries implements domain.DatasetProvider.
func (s *Store) Entries() []domain.CareerEntry {
	return s.current().entries
}

// Version implements domain.DatasetProvider.
func (s *Store) Version() int64 {
	return s.current().version
}

// LoadedAt reports when the current snapshot was read from disk.
func (s *Store) LoadedAt() time.Time {
	return s.current().loadedAt
}

// Path reports the backing file.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file and atomically swaps the snapshot. The
// previous snapshot stays live until the new one parses cleanly.
func (s *Store) Reload() error {
	entries, err := load(s.path)
	if err != nil {
		observability.DatasetReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("op=dataset.Reload: %w", err)
	}
	prev := s.current()
	s.snap.Store(&snapshot{entries: entries, version: prev.version + 1, loadedAt: time.Now()})
	observability.DatasetReloadsTotal.WithLabelValues("success").Inc()
	return nil
}

func (s *Store) current() *snapshot {
	return s.snap.Load().(*snapshot)
}

func load(path string) ([]domain.CareerEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var entries []domain.CareerEntry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &entries); err != nil {
			return nil, fmt.Errorf("parse yaml catalog: %w", err)
		}
	default:
		if err := json.Unmarshal(b, &entries); err != nil {
			return nil, fmt.Errorf("parse json catalog: %w", err)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog %s has no entries: %w", path, domain.ErrInvalidArgument)
	}
	return entries, nil
}
