package admin

import (
	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/seed"
	"git.home.luguber.info/inful/blogsmith/internal/slug"
)

// CategoryCreate is the input for creating a category.
type CategoryCreate struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Color       string
	Parent      string
}

// CategoryUpdate is a partial category update. Description, Color, and Parent
// are applied whenever set so they can be cleared.
type CategoryUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	Color       *string
	Parent      *string
}

// CreateCategory validates and appends a new category.
func (s *Service) CreateCategory(req CategoryCreate) (seed.Category, error) {
	if req.Name == "" {
		return seed.Category{}, errors.Validation("category", []string{"name"})
	}

	var categories []seed.Category
	if err := s.store.Load(seed.KindCategories, &categories); err != nil {
		return seed.Category{}, errors.Storage("read", err)
	}

	category := seed.Category{
		ID:          req.ID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
		Parent:      req.Parent,
	}
	if category.ID == "" {
		category.ID = s.newID("cat")
	}
	if category.Slug == "" {
		category.Slug = slug.Make(category.Name)
	}

	categories = append(categories, category)
	if err := s.store.Save(seed.KindCategories, categories); err != nil {
		return seed.Category{}, errors.Storage("write", err)
	}
	s.record("create", string(seed.KindCategories), category.ID, category.Name)
	return category, nil
}

// UpdateCategory applies a partial update to the category with the given id.
func (s *Service) UpdateCategory(id string, req CategoryUpdate) (seed.Category, error) {
	var categories []seed.Category
	if err := s.store.Load(seed.KindCategories, &categories); err != nil {
		return seed.Category{}, errors.Storage("read", err)
	}

	idx := indexByID(categories, id, func(c seed.Category) string { return c.ID })
	if idx < 0 {
		return seed.Category{}, errors.NotFound("category", id)
	}
	target := &categories[idx]

	applyString(&target.Name, req.Name)
	applyString(&target.Slug, req.Slug)
	if req.Description != nil {
		target.Description = *req.Description
	}
	if req.Color != nil {
		target.Color = *req.Color
	}
	if req.Parent != nil {
		target.Parent = *req.Parent
	}

	if err := s.store.Save(seed.KindCategories, categories); err != nil {
		return seed.Category{}, errors.Storage("write", err)
	}
	s.record("update", string(seed.KindCategories), target.ID, target.Name)
	return *target, nil
}

// DeleteCategory removes the category with the given id.
func (s *Service) DeleteCategory(id string) error {
	var categories []seed.Category
	if err := s.store.Load(seed.KindCategories, &categories); err != nil {
		return errors.Storage("read", err)
	}

	next := make([]seed.Category, 0, len(categories))
	for _, c := range categories {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(categories) {
		return errors.NotFound("category", id)
	}
	if err := s.store.Save(seed.KindCategories, next); err != nil {
		return errors.Storage("write", err)
	}
	s.record("delete", string(seed.KindCategories), id, "")
	return nil
}

// FindCategory resolves a category by id, falling back to slug.
func (s *Service) FindCategory(idOrSlug string) (seed.Category, error) {
	var categories []seed.Category
	if err := s.store.Load(seed.KindCategories, &categories); err != nil {
		return seed.Category{}, errors.Storage("read", err)
	}
	for _, c := range categories {
		if c.ID == idOrSlug {
			return c, nil
		}
	}
	for _, c := range categories {
		if c.Slug == idOrSlug {
			return c, nil
		}
	}
	return seed.Category{}, errors.NotFound("category", idOrSlug)
}

// ListCategories returns every seed category.
func (s *Service) ListCategories() ([]seed.Category, error) {
	var categories []seed.Category
	if err := s.store.Load(seed.KindCategories, &categories); err != nil {
		return nil, errors.Storage("read", err)
	}
	return categories, nil
}
