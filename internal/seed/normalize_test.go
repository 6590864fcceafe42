package seed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
)

func validRawPost() Raw {
	return Raw{
		"id":         "post-1",
		"title":      "Hello",
		"slug":       "hello",
		"summary":    "A greeting",
		"content":    "Hello world",
		"categories": []any{"cat-tech"},
		"tags":       []any{"tag-go"},
		"created_at": "2026-01-01",
		"updated_at": "2026-01-02",
		"status":     "published",
	}
}

func TestNormalizePost_AttachesTextMetrics(t *testing.T) {
	post, err := NormalizePost(validRawPost())
	require.NoError(t, err)
	require.Equal(t, 2, post.WordCount)
	require.Equal(t, 1, post.ReadingTime)
	require.Equal(t, StatusPublished, post.Status)
	require.Equal(t, []string{"cat-tech"}, post.Categories)
}

func TestNormalizePost_ReportsEveryMissingField(t *testing.T) {
	raw := Raw{"id": "post-2", "title": "t", "content": ""}
	_, err := NormalizePost(raw)
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))
	msg := err.Error()
	for _, field := range []string{"slug", "summary", "content", "categories", "tags", "created_at", "updated_at", "status"} {
		require.Contains(t, msg, field)
	}
	require.Contains(t, msg, "post:post-2")
}

func TestNormalizePost_UnknownLabelWhenIDMissing(t *testing.T) {
	_, err := NormalizePost(Raw{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "post:unknown")
}

func TestNormalizePost_StringifiesNumericID(t *testing.T) {
	raw := validRawPost()
	raw["id"] = float64(42) // json numbers decode as float64
	post, err := NormalizePost(raw)
	require.NoError(t, err)
	require.Equal(t, "42", post.ID)
}

func TestNormalizePost_OptionalFieldsOmittedWhenAbsent(t *testing.T) {
	post, err := NormalizePost(validRawPost())
	require.NoError(t, err)
	require.Empty(t, post.Cover)
	require.False(t, post.Pinned)

	raw := validRawPost()
	raw["cover"] = "https://example.com/c.png"
	raw["pinned"] = true
	post, err = NormalizePost(raw)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/c.png", post.Cover)
	require.True(t, post.Pinned)
}

func TestNormalizePost_NonListReferencesBecomeEmpty(t *testing.T) {
	raw := validRawPost()
	raw["categories"] = "cat-tech" // present but not a list
	post, err := NormalizePost(raw)
	require.NoError(t, err)
	require.Equal(t, []string{}, post.Categories)
	require.NotNil(t, post.Categories)
}

func TestNormalizeCategory(t *testing.T) {
	cat, err := NormalizeCategory(Raw{"id": "cat-1", "name": "Tech", "slug": "tech", "color": "#fff"}, 3)
	require.NoError(t, err)
	require.Equal(t, 3, cat.Count)
	require.Equal(t, "#fff", cat.Color)
	require.Empty(t, cat.Parent)

	_, err = NormalizeCategory(Raw{"id": "cat-2"}, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "name")
	require.Contains(t, err.Error(), "slug")
}

func TestNormalizeTag(t *testing.T) {
	tag, err := NormalizeTag(Raw{"id": "tag-1", "name": "Go", "slug": "go"}, 1)
	require.NoError(t, err)
	require.Equal(t, 1, tag.Count)

	_, err = NormalizeTag(Raw{"name": "Go"}, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "tag:unknown")
}

func TestNormalize_Dispatch(t *testing.T) {
	_, err := Normalize(KindPosts, validRawPost())
	require.NoError(t, err)

	_, err = Normalize(Kind("bogus"), Raw{})
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))
}
