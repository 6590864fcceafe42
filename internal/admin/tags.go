package admin

import (
	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/seed"
	"git.home.luguber.info/inful/blogsmith/internal/slug"
)

// TagCreate is the input for creating a tag.
type TagCreate struct {
	ID   string
	Name string
	Slug string
}

// TagUpdate is a partial tag update.
type TagUpdate struct {
	Name *string
	Slug *string
}

// CreateTag validates and appends a new tag.
func (s *Service) CreateTag(req TagCreate) (seed.Tag, error) {
	if req.Name == "" {
		return seed.Tag{}, errors.Validation("tag", []string{"name"})
	}

	var tags []seed.Tag
	if err := s.store.Load(seed.KindTags, &tags); err != nil {
		return seed.Tag{}, errors.Storage("read", err)
	}

	tag := seed.Tag{ID: req.ID, Name: req.Name, Slug: req.Slug}
	if tag.ID == "" {
		tag.ID = s.newID("tag")
	}
	if tag.Slug == "" {
		tag.Slug = slug.Make(tag.Name)
	}

	tags = append(tags, tag)
	if err := s.store.Save(seed.KindTags, tags); err != nil {
		return seed.Tag{}, errors.Storage("write", err)
	}
	s.record("create", string(seed.KindTags), tag.ID, tag.Name)
	return tag, nil
}

// UpdateTag applies a partial update to the tag with the given id.
func (s *Service) UpdateTag(id string, req TagUpdate) (seed.Tag, error) {
	var tags []seed.Tag
	if err := s.store.Load(seed.KindTags, &tags); err != nil {
		return seed.Tag{}, errors.Storage("read", err)
	}

	idx := indexByID(tags, id, func(t seed.Tag) string { return t.ID })
	if idx < 0 {
		return seed.Tag{}, errors.NotFound("tag", id)
	}
	target := &tags[idx]

	applyString(&target.Name, req.Name)
	applyString(&target.Slug, req.Slug)

	if err := s.store.Save(seed.KindTags, tags); err != nil {
		return seed.Tag{}, errors.Storage("write", err)
	}
	s.record("update", string(seed.KindTags), target.ID, target.Name)
	return *target, nil
}

// DeleteTag removes the tag with the given id.
func (s *Service) DeleteTag(id string) error {
	var tags []seed.Tag
	if err := s.store.Load(seed.KindTags, &tags); err != nil {
		return errors.Storage("read", err)
	}

	next := make([]seed.Tag, 0, len(tags))
	for _, t := range tags {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(tags) {
		return errors.NotFound("tag", id)
	}
	if err := s.store.Save(seed.KindTags, next); err != nil {
		return errors.Storage("write", err)
	}
	s.record("delete", string(seed.KindTags), id, "")
	return nil
}

// FindTag resolves a tag by id, falling back to slug.
func (s *Service) FindTag(idOrSlug string) (seed.Tag, error) {
	var tags []seed.Tag
	if err := s.store.Load(seed.KindTags, &tags); err != nil {
		return seed.Tag{}, errors.Storage("read", err)
	}
	for _, t := range tags {
		if t.ID == idOrSlug {
			return t, nil
		}
	}
	for _, t := range tags {
		if t.Slug == idOrSlug {
			return t, nil
		}
	}
	return seed.Tag{}, errors.NotFound("tag", idOrSlug)
}

// ListTags returns every seed tag.
func (s *Service) ListTags() ([]seed.Tag, error) {
	var tags []seed.Tag
	if err := s.store.Load(seed.KindTags, &tags); err != nil {
		return nil, errors.Storage("read", err)
	}
	return tags, nil
}
