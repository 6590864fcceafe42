package seed

import (
	"encoding/json"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
)

// DefaultMarkdownTheme is used when the settings file is absent or does not
// specify a theme.
const DefaultMarkdownTheme = "default"

// AllowedMarkdownThemes enumerates the themes the front end ships with.
var AllowedMarkdownThemes = []string{"default", "mk-cute", "smart-blue", "cyanosis"}

// Settings is the site settings record: one recognized typed key plus an open
// bag of opaque keys preserved verbatim for forward compatibility.
type Settings struct {
	MarkdownTheme string
	Extra         map[string]any
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{MarkdownTheme: DefaultMarkdownTheme}
}

// Validate checks the markdown theme against the allow-list.
func (s Settings) Validate() error {
	for _, theme := range AllowedMarkdownThemes {
		if s.MarkdownTheme == theme {
			return nil
		}
	}
	return errors.Newf(errors.CategoryValidation, "invalid markdownTheme: %s", s.MarkdownTheme).
		WithContext("allowed", AllowedMarkdownThemes)
}

// Merge overlays other on top of s: a non-empty theme wins, extra keys are
// merged with other taking precedence.
func (s Settings) Merge(other Settings) Settings {
	merged := Settings{MarkdownTheme: s.MarkdownTheme}
	if other.MarkdownTheme != "" {
		merged.MarkdownTheme = other.MarkdownTheme
	}
	if len(s.Extra) > 0 || len(other.Extra) > 0 {
		merged.Extra = make(map[string]any, len(s.Extra)+len(other.Extra))
		for k, v := range s.Extra {
			merged.Extra[k] = v
		}
		for k, v := range other.Extra {
			merged.Extra[k] = v
		}
	}
	return merged
}

// MarshalJSON flattens the settings into a single object so unrecognized keys
// survive a round trip unchanged.
func (s Settings) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(s.Extra)+1)
	for k, v := range s.Extra {
		flat[k] = v
	}
	if s.MarkdownTheme != "" {
		flat["markdownTheme"] = s.MarkdownTheme
	}
	return json.Marshal(flat)
}

// UnmarshalJSON splits the typed theme key out of the flat object and keeps
// everything else in the opaque bag.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*s = Settings{}
	if theme, ok := flat["markdownTheme"]; ok {
		s.MarkdownTheme = coerceString(theme)
		delete(flat, "markdownTheme")
	}
	if len(flat) > 0 {
		s.Extra = flat
	}
	return nil
}
