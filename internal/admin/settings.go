package admin

import (
	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/seed"
)

// SettingsUpdate merges over the current settings. A nil theme keeps the
// current one; Extra keys overlay the stored bag.
type SettingsUpdate struct {
	MarkdownTheme *string
	Extra         map[string]any
}

// Settings returns the stored settings merged over the defaults.
func (s *Service) Settings() (seed.Settings, error) {
	settings, err := s.store.LoadSettings()
	if err != nil {
		return seed.Settings{}, errors.Storage("read", err)
	}
	return settings, nil
}

// UpdateSettings validates the markdown theme against the allow-list and
// replaces the settings file with the merged result.
func (s *Service) UpdateSettings(req SettingsUpdate) (seed.Settings, error) {
	current, err := s.store.LoadSettings()
	if err != nil {
		return seed.Settings{}, errors.Storage("read", err)
	}

	overlay := seed.Settings{Extra: req.Extra}
	if req.MarkdownTheme != nil {
		overlay.MarkdownTheme = *req.MarkdownTheme
	}
	merged := current.Merge(overlay)

	if err := merged.Validate(); err != nil {
		return seed.Settings{}, err
	}
	if err := s.store.SaveSettings(merged); err != nil {
		return seed.Settings{}, errors.Storage("write", err)
	}
	s.record("update", string(seed.KindSettings), "settings", merged.MarkdownTheme)
	return merged, nil
}
