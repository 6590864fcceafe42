package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogsmith/internal/seed"
)

func TestMemStore_ImplementsStore(t *testing.T) {
	var _ Store = NewMemStore()
	var _ Store = NewFileStore("")
}

func TestMemStore_RoundTripAndSaveCount(t *testing.T) {
	m := NewMemStore()

	require.NoError(t, m.Seed(seed.KindTags, []seed.Tag{{ID: "tag-1", Name: "Go", Slug: "go"}}))
	require.Equal(t, 0, m.SaveCount(seed.KindTags))

	var tags []seed.Tag
	require.NoError(t, m.Load(seed.KindTags, &tags))
	require.Len(t, tags, 1)

	tags = append(tags, seed.Tag{ID: "tag-2", Name: "CMS", Slug: "cms"})
	require.NoError(t, m.Save(seed.KindTags, tags))
	require.Equal(t, 1, m.SaveCount(seed.KindTags))
}

func TestMemStore_FailSaves(t *testing.T) {
	m := NewMemStore()
	m.FailSaves = true
	require.Error(t, m.Save(seed.KindPosts, []seed.Post{}))
	require.Error(t, m.SaveSettings(seed.DefaultSettings()))
}

func TestMemStore_SettingsMergeOverDefaults(t *testing.T) {
	m := NewMemStore()
	m.SeedSettings(seed.Settings{Extra: map[string]any{"k": "v"}})

	settings, err := m.LoadSettings()
	require.NoError(t, err)
	require.Equal(t, seed.DefaultMarkdownTheme, settings.MarkdownTheme)
	require.Equal(t, "v", settings.Extra["k"])

	ok, err := m.Exists(seed.KindSettings)
	require.NoError(t, err)
	require.True(t, ok)
}
