// Package storage provides the seed store seam: whole-file load and save of
// entity record lists. Core logic is storage-agnostic and testable against
// the in-memory implementation.
//
// Whole-file replace is the only write primitive; concurrent writers racing
// on the same entity file are an accepted last-writer-wins hazard. A future
// implementation can add file locking behind this interface.
package storage

import (
	"git.home.luguber.info/inful/blogsmith/internal/seed"
)

// Store reads and writes seed record collections.
type Store interface {
	// Load decodes the record list for kind into out (a pointer to a slice,
	// e.g. *[]seed.Post or *[]seed.Raw). A missing file yields an empty list.
	Load(kind seed.Kind, out any) error

	// Save replaces the record list for kind with records.
	Save(kind seed.Kind, records any) error

	// Exists reports whether a seed file for kind is present.
	Exists(kind seed.Kind) (bool, error)

	// LoadSettings returns the settings file merged over the defaults. A
	// missing or unreadable file yields the defaults alone.
	LoadSettings() (seed.Settings, error)

	// SaveSettings replaces the settings file.
	SaveSettings(settings seed.Settings) error
}
