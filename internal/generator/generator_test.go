package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/seed"
	"git.home.luguber.info/inful/blogsmith/internal/storage"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
}

func seedStore(t *testing.T) *storage.MemStore {
	t.Helper()
	m := storage.NewMemStore()
	require.NoError(t, m.Seed(seed.KindPosts, []seed.Post{
		{
			ID: "post-1", Title: "First", Slug: "first", Summary: "s1",
			Content: "Hello world", Categories: []string{"cat-tech"}, Tags: []string{"tag-go"},
			CreatedAt: "2026-01-01", UpdatedAt: "2026-01-02", Status: seed.StatusPublished,
		},
		{
			ID: "post-2", Title: "Draft", Slug: "draft", Summary: "s2",
			Content: "hidden", Categories: []string{"cat-tech"}, Tags: []string{"tag-go", "tag-cms"},
			CreatedAt: "2026-01-03", UpdatedAt: "2026-01-03", Status: seed.StatusDraft,
		},
	}))
	require.NoError(t, m.Seed(seed.KindCategories, []seed.Category{
		{ID: "cat-tech", Name: "Tech", Slug: "tech"},
		{ID: "cat-life", Name: "Life", Slug: "life"},
	}))
	require.NoError(t, m.Seed(seed.KindTags, []seed.Tag{
		{ID: "tag-go", Name: "Go", Slug: "go"},
		{ID: "tag-cms", Name: "CMS", Slug: "cms"},
	}))
	return m
}

func TestRun_ExcludesDraftsFromPostsDocument(t *testing.T) {
	docs, err := New(seedStore(t)).WithClock(fixedClock).Run()
	require.NoError(t, err)

	require.Len(t, docs.Posts.Posts, 1)
	require.Equal(t, "post-1", docs.Posts.Posts[0].ID)
	require.Equal(t, SnapshotVersion, docs.Posts.Version)
	require.Equal(t, "2026-08-28", docs.Posts.GeneratedAt)
}

func TestRun_AttachesDerivedMetrics(t *testing.T) {
	docs, err := New(seedStore(t)).WithClock(fixedClock).Run()
	require.NoError(t, err)

	require.Equal(t, 2, docs.Posts.Posts[0].WordCount)
	require.Equal(t, 1, docs.Posts.Posts[0].ReadingTime)
}

func TestRun_CountsOnlyPublishedPosts(t *testing.T) {
	docs, err := New(seedStore(t)).WithClock(fixedClock).Run()
	require.NoError(t, err)

	counts := map[string]int{}
	for _, c := range docs.Categories.Categories {
		counts[c.ID] = c.Count
	}
	require.Equal(t, 1, counts["cat-tech"]) // draft post-2 does not count
	require.Equal(t, 0, counts["cat-life"])

	tagCounts := map[string]int{}
	for _, tag := range docs.Tags.Tags {
		tagCounts[tag.ID] = tag.Count
	}
	require.Equal(t, 1, tagCounts["tag-go"])
	require.Equal(t, 0, tagCounts["tag-cms"]) // referenced only by the draft
}

func TestRun_IdempotentUpToGeneratedAt(t *testing.T) {
	store := seedStore(t)
	first, err := New(store).WithClock(fixedClock).Run()
	require.NoError(t, err)
	second, err := New(store).WithClock(fixedClock).Run()
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	require.JSONEq(t, string(a), string(b))
}

func TestRun_UnresolvedCategoryFailsClosed(t *testing.T) {
	store := seedStore(t)
	require.NoError(t, store.Seed(seed.KindPosts, []seed.Post{{
		ID: "post-bad", Title: "Bad", Slug: "bad", Summary: "s", Content: "c",
		Categories: []string{"cat-ghost"}, Tags: []string{},
		CreatedAt: "2026-01-01", UpdatedAt: "2026-01-01", Status: seed.StatusPublished,
	}}))

	_, err := New(store).WithClock(fixedClock).Run()
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryReference))
	require.Contains(t, err.Error(), "post:post-bad references unknown category: cat-ghost")
}

func TestRun_UnresolvedTagFailsClosed(t *testing.T) {
	store := seedStore(t)
	require.NoError(t, store.Seed(seed.KindPosts, []seed.Post{{
		ID: "post-bad", Title: "Bad", Slug: "bad", Summary: "s", Content: "c",
		Categories: []string{}, Tags: []string{"tag-ghost"},
		CreatedAt: "2026-01-01", UpdatedAt: "2026-01-01", Status: seed.StatusPublished,
	}}))

	_, err := New(store).WithClock(fixedClock).Run()
	require.Error(t, err)
	require.Contains(t, err.Error(), "references unknown tag: tag-ghost")
}

func TestRun_MissingRequiredSeedFileFails(t *testing.T) {
	m := storage.NewMemStore()
	require.NoError(t, m.Seed(seed.KindPosts, []seed.Post{}))
	// categories.json and tags.json absent

	_, err := New(m).WithClock(fixedClock).Run()
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryStorage))
}

func TestRun_NavAndSettingsDocumentsOptional(t *testing.T) {
	store := seedStore(t)
	docs, err := New(store).WithClock(fixedClock).Run()
	require.NoError(t, err)
	require.Nil(t, docs.Nav)
	require.Nil(t, docs.Settings)

	require.NoError(t, store.Seed(seed.KindNav, []seed.NavItem{
		{ID: "nav-1", Label: "Home", Href: "#/", Order: 1, Visible: true},
	}))
	store.SeedSettings(seed.Settings{MarkdownTheme: "mk-cute", Extra: map[string]any{"siteName": "demo"}})

	docs, err = New(store).WithClock(fixedClock).Run()
	require.NoError(t, err)
	require.NotNil(t, docs.Nav)
	require.Len(t, docs.Nav.Nav, 1)
	require.NotNil(t, docs.Settings)
	require.Equal(t, "mk-cute", docs.Settings.Settings.MarkdownTheme)
}

func TestSettingsDocument_FlattensIntoEnvelope(t *testing.T) {
	doc := SettingsDocument{
		Envelope: Envelope{Version: SnapshotVersion, GeneratedAt: "2026-08-28"},
		Settings: seed.Settings{MarkdownTheme: "cyanosis", Extra: map[string]any{"siteName": "demo"}},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	require.EqualValues(t, 1, flat["version"])
	require.Equal(t, "2026-08-28", flat["generated_at"])
	require.Equal(t, "cyanosis", flat["markdownTheme"])
	require.Equal(t, "demo", flat["siteName"])
}

func TestGenerate_WritesSnapshotFiles(t *testing.T) {
	seedDir := t.TempDir()
	outDir := t.TempDir()

	fs := storage.NewFileStore(seedDir)
	require.NoError(t, fs.Save(seed.KindPosts, []seed.Post{{
		ID: "post-1", Title: "Hi", Slug: "hi", Summary: "s", Content: "Hello world",
		Categories: []string{"cat-1"}, Tags: []string{}, CreatedAt: "2026-01-01",
		UpdatedAt: "2026-01-01", Status: seed.StatusPublished,
	}}))
	require.NoError(t, fs.Save(seed.KindCategories, []seed.Category{{ID: "cat-1", Name: "Tech", Slug: "tech"}}))
	require.NoError(t, fs.Save(seed.KindTags, []seed.Tag{}))

	_, err := New(fs).WithClock(fixedClock).Generate(outDir)
	require.NoError(t, err)

	for _, name := range []string{"posts.json", "categories.json", "tags.json"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(outDir, "nav.json"))
	require.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(outDir, "posts.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.EqualValues(t, 1, doc["version"])
}

func TestRun_MalformedSettingsFileFailsTheRun(t *testing.T) {
	seedDir := t.TempDir()
	fs := storage.NewFileStore(seedDir)
	require.NoError(t, fs.Save(seed.KindPosts, []seed.Post{}))
	require.NoError(t, fs.Save(seed.KindCategories, []seed.Category{}))
	require.NoError(t, fs.Save(seed.KindTags, []seed.Tag{}))
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "settings.json"), []byte(`{"markdownTheme": "mk-cute",`), 0o644))

	_, err := New(fs).WithClock(fixedClock).Run()
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryStorage))
	require.ErrorContains(t, err, "parse settings seed")
}

func TestGenerate_FailedRunLeavesPreviousSnapshotUntouched(t *testing.T) {
	seedDir := t.TempDir()
	outDir := t.TempDir()
	fs := storage.NewFileStore(seedDir)

	require.NoError(t, fs.Save(seed.KindPosts, []seed.Post{{
		ID: "post-1", Title: "Hi", Slug: "hi", Summary: "s", Content: "c",
		Categories: []string{"cat-1"}, Tags: []string{}, CreatedAt: "2026-01-01",
		UpdatedAt: "2026-01-01", Status: seed.StatusPublished,
	}}))
	require.NoError(t, fs.Save(seed.KindCategories, []seed.Category{{ID: "cat-1", Name: "Tech", Slug: "tech"}}))
	require.NoError(t, fs.Save(seed.KindTags, []seed.Tag{}))

	_, err := New(fs).WithClock(fixedClock).Generate(outDir)
	require.NoError(t, err)
	before, err := os.ReadFile(filepath.Join(outDir, "posts.json"))
	require.NoError(t, err)

	// Break referential integrity and generate again.
	require.NoError(t, fs.Save(seed.KindCategories, []seed.Category{}))
	_, err = New(fs).WithClock(fixedClock).Generate(outDir)
	require.Error(t, err)

	after, err := os.ReadFile(filepath.Join(outDir, "posts.json"))
	require.NoError(t, err)
	require.Equal(t, before, after)
}
