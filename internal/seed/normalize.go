package seed

import (
	"fmt"
	"strconv"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/textmetrics"
)

// Required seed fields per entity kind. A field counts as missing when it is
// absent, null, or an empty string; every missing field is reported at once.
var (
	postRequired     = []string{"id", "title", "slug", "summary", "content", "categories", "tags", "created_at", "updated_at", "status"}
	categoryRequired = []string{"id", "name", "slug"}
	tagRequired      = []string{"id", "name", "slug"}
)

// Normalize validates and coerces a raw record for the given kind. Derived
// counts on categories and tags start at zero; the generator fills them in
// after aggregation.
func Normalize(kind Kind, raw Raw) (any, error) {
	switch kind {
	case KindPosts:
		return NormalizePost(raw)
	case KindCategories:
		return NormalizeCategory(raw, 0)
	case KindTags:
		return NormalizeTag(raw, 0)
	default:
		return nil, errors.Newf(errors.CategoryValidation, "unsupported entity kind: %s", kind)
	}
}

// NormalizePost coerces a raw post into its canonical shape and attaches the
// derived word count and reading time.
func NormalizePost(raw Raw) (NormalizedPost, error) {
	if err := requireFields(raw, postRequired, "post:"+labelID(raw)); err != nil {
		return NormalizedPost{}, err
	}

	content := coerceString(raw["content"])
	words := textmetrics.WordCount(content)

	return NormalizedPost{
		ID:          coerceString(raw["id"]),
		Title:       coerceString(raw["title"]),
		Slug:        coerceString(raw["slug"]),
		Summary:     coerceString(raw["summary"]),
		Content:     content,
		WordCount:   words,
		ReadingTime: textmetrics.EstimateReadingTime(words),
		Pinned:      truthy(raw["pinned"]),
		Cover:       optionalString(raw["cover"]),
		Categories:  coerceStringList(raw["categories"]),
		Tags:        coerceStringList(raw["tags"]),
		CreatedAt:   coerceString(raw["created_at"]),
		UpdatedAt:   coerceString(raw["updated_at"]),
		Status:      Status(coerceString(raw["status"])),
	}, nil
}

// NormalizeCategory coerces a raw category and attaches its published-post
// count.
func NormalizeCategory(raw Raw, count int) (NormalizedCategory, error) {
	if err := requireFields(raw, categoryRequired, "category:"+labelID(raw)); err != nil {
		return NormalizedCategory{}, err
	}

	return NormalizedCategory{
		ID:          coerceString(raw["id"]),
		Name:        coerceString(raw["name"]),
		Slug:        coerceString(raw["slug"]),
		Color:       optionalString(raw["color"]),
		Description: optionalString(raw["description"]),
		Parent:      optionalString(raw["parent"]),
		Count:       count,
	}, nil
}

// NormalizeTag coerces a raw tag and attaches its published-post count.
func NormalizeTag(raw Raw, count int) (NormalizedTag, error) {
	if err := requireFields(raw, tagRequired, "tag:"+labelID(raw)); err != nil {
		return NormalizedTag{}, err
	}

	return NormalizedTag{
		ID:     coerceString(raw["id"]),
		Name:   coerceString(raw["name"]),
		Slug:   coerceString(raw["slug"]),
		Parent: optionalString(raw["parent"]),
		Count:  count,
	}, nil
}

func labelID(raw Raw) string {
	if id := coerceString(raw["id"]); id != "" {
		return id
	}
	return "unknown"
}

func requireFields(raw Raw, fields []string, label string) error {
	var missing []string
	for _, f := range fields {
		v, ok := raw[f]
		if !ok || v == nil || v == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return errors.Validation(label, missing)
	}
	return nil
}

// coerceString stringifies identifier and text values; seed files authored by
// hand sometimes carry numeric ids.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// optionalString returns the stringified value only for truthy input; absent
// optionals are represented by omission downstream, never null.
func optionalString(v any) string {
	if !truthy(v) {
		return ""
	}
	return coerceString(v)
}

// coerceStringList turns a raw list into a string sequence. Anything that is
// not a list becomes an empty sequence.
func coerceStringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]string); ok {
			out := make([]string, len(typed))
			copy(out, typed)
			return out
		}
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, coerceString(item))
	}
	return out
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}
