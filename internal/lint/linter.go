// Package lint checks seed post content for problems the generator does not
// reject: empty link destinations, internal links to posts that don't exist,
// and slugs that collide. The generator stays strict about referential
// integrity of categories and tags; lint covers the softer content rules.
package lint

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/seed"
	"git.home.luguber.info/inful/blogsmith/internal/storage"
)

// internalPostPrefix is how post bodies link to other posts on the site.
const internalPostPrefix = "/posts/"

// Linter checks seed posts for content issues.
type Linter struct {
	store storage.Store
}

// NewLinter creates a linter over the given seed store.
func NewLinter(store storage.Store) *Linter {
	return &Linter{store: store}
}

// Run lints every seed post and returns the collected issues.
func (l *Linter) Run() (*Result, error) {
	var posts []seed.Post
	if err := l.store.Load(seed.KindPosts, &posts); err != nil {
		return nil, errors.Storage("read", err)
	}

	result := &Result{Issues: []Issue{}, PostsTotal: len(posts)}

	slugs := make(map[string][]string, len(posts))
	for _, p := range posts {
		slugs[p.Slug] = append(slugs[p.Slug], p.ID)
	}
	for slug, ids := range slugs {
		if slug == "" || len(ids) < 2 {
			continue
		}
		for _, id := range ids {
			result.Issues = append(result.Issues, Issue{
				PostID:   id,
				Slug:     slug,
				Severity: SeverityError,
				Rule:     "duplicate-slug",
				Message:  fmt.Sprintf("slug %q is used by %d posts", slug, len(ids)),
			})
		}
	}

	for _, p := range posts {
		l.lintPost(p, slugs, result)
	}
	return result, nil
}

func (l *Linter) lintPost(p seed.Post, slugs map[string][]string, result *Result) {
	for _, link := range extractLinks([]byte(p.Content)) {
		if strings.TrimSpace(link.Destination) == "" {
			rule := "empty-link-destination"
			if link.Kind == LinkKindImage {
				rule = "empty-image-destination"
			}
			result.Issues = append(result.Issues, Issue{
				PostID:   p.ID,
				Slug:     p.Slug,
				Severity: SeverityError,
				Rule:     rule,
				Message:  fmt.Sprintf("%s link has no destination", link.Kind),
			})
			continue
		}

		if target, ok := strings.CutPrefix(link.Destination, internalPostPrefix); ok {
			target = strings.TrimSuffix(strings.Split(target, "#")[0], "/")
			if _, known := slugs[target]; !known {
				result.Issues = append(result.Issues, Issue{
					PostID:   p.ID,
					Slug:     p.Slug,
					Severity: SeverityWarning,
					Rule:     "missing-post-link",
					Message:  fmt.Sprintf("links to unknown post slug %q", target),
				})
			}
		}
	}
}
