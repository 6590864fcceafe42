package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"git.home.luguber.info/inful/blogsmith/internal/seed"
)

// FileStore is the filesystem implementation of Store. Each entity kind lives
// in one JSON file under the seed directory:
//
//	data/seed/
//	  posts.json
//	  categories.json
//	  tags.json
//	  nav.json
//	  settings.json
//
// A record file may be either a bare array or an object keyed by the kind
// name ({"posts": [...]}); both shapes exist in hand-authored seed data.
// Saving always writes the bare-array shape.
type FileStore struct {
	baseDir string
	mu      sync.Mutex
}

// NewFileStore creates a filesystem store rooted at baseDir. The directory is
// created on first save, not here, so read-only use of an absent seed tree
// stays cheap.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// BaseDir returns the seed directory this store reads and writes.
func (s *FileStore) BaseDir() string {
	return s.baseDir
}

// Load decodes the record list for kind into out. A missing file yields an
// empty list.
func (s *FileStore) Load(kind seed.Kind, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return json.Unmarshal([]byte("[]"), out)
		}
		return fmt.Errorf("read %s seed: %w", kind, err)
	}

	list, err := extractList(data, kind)
	if err != nil {
		return fmt.Errorf("parse %s seed: %w", kind, err)
	}
	if err := json.Unmarshal(list, out); err != nil {
		return fmt.Errorf("decode %s seed: %w", kind, err)
	}
	return nil
}

// Save replaces the record list for kind.
func (s *FileStore) Save(kind seed.Kind, records any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeFile(s.filePath(kind), records)
}

// Exists reports whether the seed file for kind is present.
func (s *FileStore) Exists(kind seed.Kind) (bool, error) {
	_, err := os.Stat(s.filePath(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s seed: %w", kind, err)
	}
	return true, nil
}

// LoadSettings returns the settings file merged over the defaults. A missing
// file yields the defaults alone; a malformed file is an error so a broken
// settings file can never be silently replaced by defaults downstream.
func (s *FileStore) LoadSettings() (seed.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath(seed.KindSettings))
	if err != nil {
		if os.IsNotExist(err) {
			return seed.DefaultSettings(), nil
		}
		return seed.Settings{}, fmt.Errorf("read settings seed: %w", err)
	}
	var loaded seed.Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return seed.Settings{}, fmt.Errorf("parse settings seed: %w", err)
	}
	return seed.DefaultSettings().Merge(loaded), nil
}

// SaveSettings replaces the settings file.
func (s *FileStore) SaveSettings(settings seed.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeFile(s.filePath(seed.KindSettings), settings)
}

func (s *FileStore) filePath(kind seed.Kind) string {
	return filepath.Join(s.baseDir, string(kind)+".json")
}

func (s *FileStore) writeFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create seed directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// extractList returns the JSON array for kind from either file shape.
func extractList(data []byte, kind seed.Kind) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return json.RawMessage("[]"), nil
	}
	if trimmed[0] != '{' {
		return json.RawMessage(trimmed), nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, err
	}
	if list, ok := keyed[string(kind)]; ok {
		inner := bytes.TrimSpace(list)
		if len(inner) > 0 && inner[0] == '[' {
			return list, nil
		}
	}
	return json.RawMessage("[]"), nil
}
