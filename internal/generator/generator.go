// Package generator implements the seed-to-snapshot transform: normalize
// every record, enforce referential integrity, aggregate per-category and
// per-tag usage counts, and assemble versioned output documents.
//
// Generation never mutates the seed store. A failed run writes nothing, so
// the previous snapshot survives intact.
package generator

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
	"git.home.luguber.info/inful/blogsmith/internal/seed"
	"git.home.luguber.info/inful/blogsmith/internal/storage"
)

// Generator transforms seed records into snapshot documents.
type Generator struct {
	store storage.Store
	now   func() time.Time
}

// New creates a generator reading from the given seed store.
func New(store storage.Store) *Generator {
	return &Generator{store: store, now: time.Now}
}

// WithClock injects a clock (for tests).
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Run performs the full transform in memory and returns the assembled
// documents. Nothing is written; callers pass the result to WriteTo.
func (g *Generator) Run() (*Documents, error) {
	for _, kind := range []seed.Kind{seed.KindPosts, seed.KindCategories, seed.KindTags} {
		ok, err := g.store.Exists(kind)
		if err != nil {
			return nil, errors.Storage("read", err)
		}
		if !ok {
			return nil, errors.Storage("read", fmt.Errorf("%s seed file not found", kind))
		}
	}

	var rawPosts, rawCategories, rawTags []seed.Raw
	if err := g.store.Load(seed.KindPosts, &rawPosts); err != nil {
		return nil, errors.Storage("read", err)
	}
	if err := g.store.Load(seed.KindCategories, &rawCategories); err != nil {
		return nil, errors.Storage("read", err)
	}
	if err := g.store.Load(seed.KindTags, &rawTags); err != nil {
		return nil, errors.Storage("read", err)
	}

	posts := make([]seed.NormalizedPost, 0, len(rawPosts))
	for _, raw := range rawPosts {
		post, err := seed.NormalizePost(raw)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := checkReferences(posts, idSet(rawCategories), idSet(rawTags)); err != nil {
		return nil, err
	}

	categoryCounts, tagCounts := aggregateCounts(posts)

	categories := make([]seed.NormalizedCategory, 0, len(rawCategories))
	for _, raw := range rawCategories {
		category, err := seed.NormalizeCategory(raw, categoryCounts[rawID(raw)])
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	tags := make([]seed.NormalizedTag, 0, len(rawTags))
	for _, raw := range rawTags {
		tag, err := seed.NormalizeTag(raw, tagCounts[rawID(raw)])
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	env := Envelope{Version: SnapshotVersion, GeneratedAt: g.now().Format("2006-01-02")}
	docs := &Documents{
		Posts:      PostsDocument{Envelope: env, Posts: publishedOnly(posts)},
		Categories: CategoriesDocument{Envelope: env, Categories: categories},
		Tags:       TagsDocument{Envelope: env, Tags: tags},
	}

	if ok, err := g.store.Exists(seed.KindNav); err != nil {
		return nil, errors.Storage("read", err)
	} else if ok {
		var nav []seed.NavItem
		if err := g.store.Load(seed.KindNav, &nav); err != nil {
			return nil, errors.Storage("read", err)
		}
		docs.Nav = &NavDocument{Envelope: env, Nav: nav}
	}

	if ok, err := g.store.Exists(seed.KindSettings); err != nil {
		return nil, errors.Storage("read", err)
	} else if ok {
		settings, err := g.store.LoadSettings()
		if err != nil {
			return nil, errors.Storage("read", err)
		}
		docs.Settings = &SettingsDocument{Envelope: env, Settings: settings}
	}

	slog.Info("Generation completed",
		slog.Int("posts", len(docs.Posts.Posts)),
		slog.Int("categories", len(categories)),
		slog.Int("tags", len(tags)),
		slog.Bool("nav", docs.Nav != nil),
		slog.Bool("settings", docs.Settings != nil))

	return docs, nil
}

// Generate runs the transform and writes the snapshot to outDir.
func (g *Generator) Generate(outDir string) (*Documents, error) {
	docs, err := g.Run()
	if err != nil {
		return nil, err
	}
	if err := g.WriteTo(outDir, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// WriteTo writes every document under outDir. All documents are encoded
// before the first file is touched so an encoding failure leaves the previous
// snapshot untouched.
func (g *Generator) WriteTo(outDir string, docs *Documents) error {
	files := []struct {
		name string
		doc  any
	}{
		{"posts.json", docs.Posts},
		{"categories.json", docs.Categories},
		{"tags.json", docs.Tags},
	}
	if docs.Nav != nil {
		files = append(files, struct {
			name string
			doc  any
		}{"nav.json", *docs.Nav})
	}
	if docs.Settings != nil {
		files = append(files, struct {
			name string
			doc  any
		}{"settings.json", *docs.Settings})
	}

	encoded := make([][]byte, len(files))
	for i, f := range files {
		data, err := json.MarshalIndent(f.doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.name, err)
		}
		encoded[i] = append(data, '\n')
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return errors.Storage("write", err)
	}
	for i, f := range files {
		path := filepath.Join(outDir, f.name)
		if err := os.WriteFile(path, encoded[i], 0o644); err != nil {
			return errors.Storage("write", err)
		}
		slog.Debug("Snapshot document written", logfields.Path(path))
	}
	return nil
}

// checkReferences verifies every category and tag id referenced by any post
// resolves. The first unresolved reference fails the whole run.
func checkReferences(posts []seed.NormalizedPost, categories, tags map[string]struct{}) error {
	for _, post := range posts {
		for _, cid := range post.Categories {
			if _, ok := categories[cid]; !ok {
				return errors.Reference(post.ID, "category", cid)
			}
		}
		for _, tid := range post.Tags {
			if _, ok := tags[tid]; !ok {
				return errors.Reference(post.ID, "tag", tid)
			}
		}
	}
	return nil
}

// aggregateCounts counts, per category and tag id, the published posts
// referencing it. Draft posts never contribute.
func aggregateCounts(posts []seed.NormalizedPost) (map[string]int, map[string]int) {
	categoryCounts := make(map[string]int)
	tagCounts := make(map[string]int)
	for _, post := range posts {
		if post.Status != seed.StatusPublished {
			continue
		}
		for _, cid := range post.Categories {
			categoryCounts[cid]++
		}
		for _, tid := range post.Tags {
			tagCounts[tid]++
		}
	}
	return categoryCounts, tagCounts
}

func publishedOnly(posts []seed.NormalizedPost) []seed.NormalizedPost {
	published := make([]seed.NormalizedPost, 0, len(posts))
	for _, post := range posts {
		if post.Status == seed.StatusPublished {
			published = append(published, post)
		}
	}
	return published
}

// idSet collects the non-empty ids from a raw record list.
func idSet(records []seed.Raw) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, raw := range records {
		if id := rawID(raw); id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

func rawID(raw seed.Raw) string {
	id, _ := raw["id"].(string)
	if id != "" {
		return id
	}
	// Numeric ids appear in hand-authored seed files.
	if n, ok := raw["id"].(float64); ok {
		return fmt.Sprintf("%v", n)
	}
	return ""
}
