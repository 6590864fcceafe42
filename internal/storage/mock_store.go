package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"git.home.luguber.info/inful/blogsmith/internal/seed"
)

// MemStore is an in-memory implementation of Store for tests. Collections
// hold encoded JSON so the load/save round trip exercises the same decoding
// path as FileStore.
type MemStore struct {
	mu        sync.RWMutex
	lists     map[seed.Kind]json.RawMessage
	settings  *seed.Settings
	saveCalls map[seed.Kind]int

	// FailSaves makes every Save return an error, for all-or-nothing tests.
	FailSaves bool
}

// NewMemStore creates an empty in-memory seed store.
func NewMemStore() *MemStore {
	return &MemStore{
		lists:     make(map[seed.Kind]json.RawMessage),
		saveCalls: make(map[seed.Kind]int),
	}
}

// Load decodes the record list for kind into out.
func (m *MemStore) Load(kind seed.Kind, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list, ok := m.lists[kind]
	if !ok {
		list = json.RawMessage("[]")
	}
	return json.Unmarshal(list, out)
}

// Save replaces the record list for kind.
func (m *MemStore) Save(kind seed.Kind, records any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSaves {
		return fmt.Errorf("mem store: saves disabled")
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	m.lists[kind] = data
	m.saveCalls[kind]++
	return nil
}

// Exists reports whether a collection was ever saved (or seeded).
func (m *MemStore) Exists(kind seed.Kind) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if kind == seed.KindSettings {
		return m.settings != nil, nil
	}
	_, ok := m.lists[kind]
	return ok, nil
}

// LoadSettings returns stored settings merged over the defaults.
func (m *MemStore) LoadSettings() (seed.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.settings == nil {
		return seed.DefaultSettings(), nil
	}
	return seed.DefaultSettings().Merge(*m.settings), nil
}

// SaveSettings replaces stored settings.
func (m *MemStore) SaveSettings(settings seed.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSaves {
		return fmt.Errorf("mem store: saves disabled")
	}
	m.settings = &settings
	return nil
}

// SaveCount returns how many times Save ran for kind.
func (m *MemStore) SaveCount(kind seed.Kind) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saveCalls[kind]
}

// Seed replaces the collection for kind without counting as a save.
func (m *MemStore) Seed(kind seed.Kind, records any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	m.lists[kind] = data
	return nil
}

// SeedSettings sets the stored settings without counting as a save.
func (m *MemStore) SeedSettings(settings seed.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &settings
}
