package generator

import (
	"encoding/json"

	"git.home.luguber.info/inful/blogsmith/internal/seed"
)

// SnapshotVersion is the envelope version stamped on every output document.
const SnapshotVersion = 1

// Envelope is the wrapper applied uniformly to every output document.
type Envelope struct {
	Version     int    `json:"version"`
	GeneratedAt string `json:"generated_at"`
}

// PostsDocument carries the published posts only; drafts never leave the seed
// store. This is a staging boundary, not a display filter.
type PostsDocument struct {
	Envelope
	Posts []seed.NormalizedPost `json:"posts"`
}

// CategoriesDocument carries every category with its published-post count.
type CategoriesDocument struct {
	Envelope
	Categories []seed.NormalizedCategory `json:"categories"`
}

// TagsDocument carries every tag with its published-post count.
type TagsDocument struct {
	Envelope
	Tags []seed.NormalizedTag `json:"tags"`
}

// NavDocument is a passthrough of the nav seed, present only when a nav seed
// file exists.
type NavDocument struct {
	Envelope
	Nav []seed.NavItem `json:"nav"`
}

// SettingsDocument merges the settings bag directly into the envelope,
// present only when a settings seed file exists.
type SettingsDocument struct {
	Envelope
	Settings seed.Settings
}

// MarshalJSON flattens settings keys next to the envelope fields. On a key
// collision the settings value wins, matching the merge order of the
// published format.
func (d SettingsDocument) MarshalJSON() ([]byte, error) {
	settingsJSON, err := json.Marshal(d.Settings)
	if err != nil {
		return nil, err
	}
	flat := map[string]any{
		"version":      d.Version,
		"generated_at": d.GeneratedAt,
	}
	var settingsMap map[string]any
	if err := json.Unmarshal(settingsJSON, &settingsMap); err != nil {
		return nil, err
	}
	for k, v := range settingsMap {
		flat[k] = v
	}
	return json.Marshal(flat)
}

// Documents is the full output of one generation run. Nav and Settings are
// nil when their seed files are absent.
type Documents struct {
	Posts      PostsDocument
	Categories CategoriesDocument
	Tags       TagsDocument
	Nav        *NavDocument
	Settings   *SettingsDocument
}
