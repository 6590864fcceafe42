// Package seed defines the seed record types for all content entities and the
// normalizer that turns raw seed input into canonical records.
//
// The seed store is the single source of truth; everything the generator
// emits is a disposable projection of these records plus the current date.
package seed

// Kind identifies an entity collection in the seed store.
type Kind string

const (
	KindPosts      Kind = "posts"
	KindCategories Kind = "categories"
	KindTags       Kind = "tags"
	KindNav        Kind = "nav"
	KindSettings   Kind = "settings"
)

// Status is the publication state of a post. Only published posts appear in
// generated output.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Raw is an undecoded seed record as read from a seed file. The normalizer
// coerces it into a canonical shape.
type Raw map[string]any

// Post is a seed post record. Word count and reading time are derived at
// generation time and never persisted here.
type Post struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Summary    string   `json:"summary"`
	Content    string   `json:"content"`
	Cover      string   `json:"cover,omitempty"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	Status     Status   `json:"status"`
	Pinned     bool     `json:"pinned,omitempty"`
}

// Category is a seed category record.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Parent      string `json:"parent,omitempty"`
}

// Tag is a seed tag record.
type Tag struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent string `json:"parent,omitempty"`
}

// NavItem is a seed navigation entry. Order drives display sorting in the
// front end; items stay in seed order in the generated document.
type NavItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Href    string `json:"href"`
	Order   int    `json:"order"`
	Visible bool   `json:"visible"`
}

// NormalizedPost is the canonical post shape emitted into the posts snapshot.
type NormalizedPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content"`
	WordCount   int      `json:"wordCount"`
	ReadingTime int      `json:"readingTime"`
	Pinned      bool     `json:"pinned,omitempty"`
	Cover       string   `json:"cover,omitempty"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Status      Status   `json:"status"`
}

// NormalizedCategory is the canonical category shape, annotated with the
// number of published posts referencing it.
type NormalizedCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
	Parent      string `json:"parent,omitempty"`
	Count       int    `json:"count"`
}

// NormalizedTag is the canonical tag shape, annotated with the number of
// published posts referencing it.
type NormalizedTag struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent string `json:"parent,omitempty"`
	Count  int    `json:"count"`
}

// Published reports whether the post should appear in generated output.
func (p Post) Published() bool {
	return p.Status == StatusPublished
}
