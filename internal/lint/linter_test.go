package lint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogsmith/internal/seed"
	"git.home.luguber.info/inful/blogsmith/internal/storage"
)

func lintPosts(t *testing.T, posts []seed.Post) *Result {
	t.Helper()
	store := storage.NewMemStore()
	require.NoError(t, store.Seed(seed.KindPosts, posts))
	result, err := NewLinter(store).Run()
	require.NoError(t, err)
	return result
}

func rules(result *Result) []string {
	var out []string
	for _, issue := range result.Issues {
		out = append(out, issue.Rule)
	}
	return out
}

func TestRun_CleanPosts(t *testing.T) {
	result := lintPosts(t, []seed.Post{
		{ID: "p1", Slug: "hello", Content: "See [the docs](https://example.com) and [again](/posts/other)."},
		{ID: "p2", Slug: "other", Content: "Plain text only."},
	})
	require.Empty(t, result.Issues)
	require.Equal(t, 2, result.PostsTotal)
	require.False(t, result.HasErrors())
}

func TestRun_EmptyLinkDestination(t *testing.T) {
	result := lintPosts(t, []seed.Post{
		{ID: "p1", Slug: "hello", Content: "A [dead link]() here."},
	})
	require.Equal(t, []string{"empty-link-destination"}, rules(result))
	require.True(t, result.HasErrors())
	require.Equal(t, 1, result.ErrorCount())
}

func TestRun_EmptyImageDestination(t *testing.T) {
	result := lintPosts(t, []seed.Post{
		{ID: "p1", Slug: "hello", Content: "An image ![alt]() with no source."},
	})
	require.Equal(t, []string{"empty-image-destination"}, rules(result))
}

func TestRun_MissingPostLinkIsWarning(t *testing.T) {
	result := lintPosts(t, []seed.Post{
		{ID: "p1", Slug: "hello", Content: "Read [part two](/posts/part-two) next."},
	})
	require.Equal(t, []string{"missing-post-link"}, rules(result))
	require.False(t, result.HasErrors())
	require.Equal(t, 1, result.WarningCount())
}

func TestRun_InternalLinkAnchorsAndSlashes(t *testing.T) {
	result := lintPosts(t, []seed.Post{
		{ID: "p1", Slug: "hello", Content: "See [section](/posts/other/#setup)."},
		{ID: "p2", Slug: "other", Content: "x"},
	})
	require.Empty(t, result.Issues)
}

func TestRun_DuplicateSlugs(t *testing.T) {
	result := lintPosts(t, []seed.Post{
		{ID: "p1", Slug: "hello", Content: "x"},
		{ID: "p2", Slug: "hello", Content: "y"},
	})
	require.Len(t, result.Issues, 2)
	for _, issue := range result.Issues {
		require.Equal(t, "duplicate-slug", issue.Rule)
		require.Equal(t, SeverityError, issue.Severity)
	}
}

func TestRun_ReferenceDefinitions(t *testing.T) {
	result := lintPosts(t, []seed.Post{
		{ID: "p1", Slug: "hello", Content: "See [docs][ref].\n\n[ref]: /posts/other\n"},
		{ID: "p2", Slug: "other", Content: "x"},
	})
	require.Empty(t, result.Issues)
}
