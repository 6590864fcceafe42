package admin

import (
	"fmt"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/seed"
	"git.home.luguber.info/inful/blogsmith/internal/slug"
)

// PostCreate is the input for creating a post. Absent id, slug, and dates are
// assigned; any status other than "published" becomes "draft".
type PostCreate struct {
	ID         string
	Title      string
	Slug       string
	Summary    string
	Content    string
	Cover      string
	Categories []string
	Tags       []string
	CreatedAt  string
	UpdatedAt  string
	Status     string
	Pinned     bool
}

// PostUpdate is a partial post update. Nil fields are left unchanged; empty
// strings on text fields are ignored so a blank CLI flag cannot wipe content.
// Cover is applied whenever set, allowing it to be cleared.
type PostUpdate struct {
	Title      *string
	Slug       *string
	Summary    *string
	Content    *string
	Cover      *string
	Categories []string
	Tags       []string
	Status     *string
	CreatedAt  *string
	Pinned     *bool

	// AutoUnpin opts a pin transition into evicting the stalest pinned post
	// when the cap is reached. Without it the update fails with a capacity
	// error.
	AutoUnpin bool
}

// CreatePost validates and appends a new post. If the post is pinned and the
// pin cap is reached, the least-recently-updated pinned post is unpinned
// automatically; creates are never rejected over pin capacity.
func (s *Service) CreatePost(req PostCreate) (seed.Post, error) {
	var missing []string
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Summary == "" {
		missing = append(missing, "summary")
	}
	if req.Content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return seed.Post{}, errors.Validation("post", missing)
	}

	var posts []seed.Post
	if err := s.store.Load(seed.KindPosts, &posts); err != nil {
		return seed.Post{}, errors.Storage("read", err)
	}

	post := seed.Post{
		ID:         req.ID,
		Title:      req.Title,
		Slug:       req.Slug,
		Summary:    req.Summary,
		Content:    req.Content,
		Cover:      req.Cover,
		Categories: req.Categories,
		Tags:       req.Tags,
		CreatedAt:  req.CreatedAt,
		UpdatedAt:  req.UpdatedAt,
		Status:     coerceStatus(req.Status),
		Pinned:     req.Pinned,
	}
	if post.ID == "" {
		post.ID = s.newID("post")
	}
	if post.Slug == "" {
		post.Slug = slug.Make(post.Title)
	}
	if post.Categories == nil {
		post.Categories = []string{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.CreatedAt == "" {
		post.CreatedAt = s.today()
	}
	if post.UpdatedAt == "" {
		post.UpdatedAt = s.today()
	}

	if post.Pinned {
		var err error
		posts, err = ApplyPinning(posts, post.ID, true)
		if err != nil {
			return seed.Post{}, err
		}
	}

	posts = append(posts, post)
	if err := s.store.Save(seed.KindPosts, posts); err != nil {
		return seed.Post{}, errors.Storage("write", err)
	}
	s.record("create", string(seed.KindPosts), post.ID, post.Title)
	return post, nil
}

// UpdatePost applies a partial update to the post with the given id. A pin
// transition against a full pin set requires the AutoUnpin opt-in.
func (s *Service) UpdatePost(id string, req PostUpdate) (seed.Post, error) {
	var posts []seed.Post
	if err := s.store.Load(seed.KindPosts, &posts); err != nil {
		return seed.Post{}, errors.Storage("read", err)
	}

	idx := indexByID(posts, id, func(p seed.Post) string { return p.ID })
	if idx < 0 {
		return seed.Post{}, errors.NotFound("post", id)
	}
	target := &posts[idx]

	if req.Pinned != nil && *req.Pinned && !target.Pinned {
		var err error
		posts, err = ApplyPinning(posts, target.ID, req.AutoUnpin)
		if err != nil {
			return seed.Post{}, err
		}
		target = &posts[idx]
	}

	applyString(&target.Title, req.Title)
	applyString(&target.Slug, req.Slug)
	applyString(&target.Summary, req.Summary)
	applyString(&target.Content, req.Content)
	if req.Cover != nil {
		target.Cover = *req.Cover
	}
	if req.Categories != nil {
		target.Categories = req.Categories
	}
	if req.Tags != nil {
		target.Tags = req.Tags
	}
	if req.Status != nil {
		status := seed.Status(*req.Status)
		if status != seed.StatusDraft && status != seed.StatusPublished {
			return seed.Post{}, errors.ValidationMsg(fmt.Sprintf("status must be %s or %s", seed.StatusDraft, seed.StatusPublished))
		}
		target.Status = status
	}
	applyString(&target.CreatedAt, req.CreatedAt)
	if req.Pinned != nil {
		target.Pinned = *req.Pinned
	}
	target.UpdatedAt = s.today()

	if err := s.store.Save(seed.KindPosts, posts); err != nil {
		return seed.Post{}, errors.Storage("write", err)
	}
	s.record("update", string(seed.KindPosts), target.ID, target.Title)
	return *target, nil
}

// DeletePost removes the post with the given id.
func (s *Service) DeletePost(id string) error {
	var posts []seed.Post
	if err := s.store.Load(seed.KindPosts, &posts); err != nil {
		return errors.Storage("read", err)
	}

	next := make([]seed.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(posts) {
		return errors.NotFound("post", id)
	}
	if err := s.store.Save(seed.KindPosts, next); err != nil {
		return errors.Storage("write", err)
	}
	s.record("delete", string(seed.KindPosts), id, "")
	return nil
}

// FindPost resolves a post by id, falling back to slug. The CLI lets authors
// address posts either way.
func (s *Service) FindPost(idOrSlug string) (seed.Post, error) {
	var posts []seed.Post
	if err := s.store.Load(seed.KindPosts, &posts); err != nil {
		return seed.Post{}, errors.Storage("read", err)
	}
	for _, p := range posts {
		if p.ID == idOrSlug {
			return p, nil
		}
	}
	for _, p := range posts {
		if p.Slug == idOrSlug {
			return p, nil
		}
	}
	return seed.Post{}, errors.NotFound("post", idOrSlug)
}

// ListPosts returns every seed post.
func (s *Service) ListPosts() ([]seed.Post, error) {
	var posts []seed.Post
	if err := s.store.Load(seed.KindPosts, &posts); err != nil {
		return nil, errors.Storage("read", err)
	}
	return posts, nil
}

func coerceStatus(status string) seed.Status {
	if seed.Status(status) == seed.StatusPublished {
		return seed.StatusPublished
	}
	return seed.StatusDraft
}

func applyString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func indexByID[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}
