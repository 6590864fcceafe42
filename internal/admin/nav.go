package admin

import (
	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/seed"
)

// NavCreate is the input for creating a navigation entry. Order defaults to
// the end of the list; visibility defaults to true.
type NavCreate struct {
	ID      string
	Label   string
	Href    string
	Order   *int
	Visible *bool
}

// NavUpdate is a partial navigation update.
type NavUpdate struct {
	Label   *string
	Href    *string
	Order   *int
	Visible *bool
}

// CreateNavItem validates and appends a new navigation entry.
func (s *Service) CreateNavItem(req NavCreate) (seed.NavItem, error) {
	var missing []string
	if req.Label == "" {
		missing = append(missing, "label")
	}
	if req.Href == "" {
		missing = append(missing, "href")
	}
	if len(missing) > 0 {
		return seed.NavItem{}, errors.Validation("nav", missing)
	}

	var nav []seed.NavItem
	if err := s.store.Load(seed.KindNav, &nav); err != nil {
		return seed.NavItem{}, errors.Storage("read", err)
	}

	item := seed.NavItem{
		ID:      req.ID,
		Label:   req.Label,
		Href:    req.Href,
		Order:   len(nav) + 1,
		Visible: true,
	}
	if item.ID == "" {
		item.ID = s.newID("nav")
	}
	if req.Order != nil {
		item.Order = *req.Order
	}
	if req.Visible != nil {
		item.Visible = *req.Visible
	}

	nav = append(nav, item)
	if err := s.store.Save(seed.KindNav, nav); err != nil {
		return seed.NavItem{}, errors.Storage("write", err)
	}
	s.record("create", string(seed.KindNav), item.ID, item.Label)
	return item, nil
}

// UpdateNavItem applies a partial update to the navigation entry with the
// given id.
func (s *Service) UpdateNavItem(id string, req NavUpdate) (seed.NavItem, error) {
	var nav []seed.NavItem
	if err := s.store.Load(seed.KindNav, &nav); err != nil {
		return seed.NavItem{}, errors.Storage("read", err)
	}

	idx := indexByID(nav, id, func(n seed.NavItem) string { return n.ID })
	if idx < 0 {
		return seed.NavItem{}, errors.NotFound("nav item", id)
	}
	target := &nav[idx]

	applyString(&target.Label, req.Label)
	applyString(&target.Href, req.Href)
	if req.Order != nil {
		target.Order = *req.Order
	}
	if req.Visible != nil {
		target.Visible = *req.Visible
	}

	if err := s.store.Save(seed.KindNav, nav); err != nil {
		return seed.NavItem{}, errors.Storage("write", err)
	}
	s.record("update", string(seed.KindNav), target.ID, target.Label)
	return *target, nil
}

// DeleteNavItem removes the navigation entry with the given id.
func (s *Service) DeleteNavItem(id string) error {
	var nav []seed.NavItem
	if err := s.store.Load(seed.KindNav, &nav); err != nil {
		return errors.Storage("read", err)
	}

	next := make([]seed.NavItem, 0, len(nav))
	for _, n := range nav {
		if n.ID != id {
			next = append(next, n)
		}
	}
	if len(next) == len(nav) {
		return errors.NotFound("nav item", id)
	}
	if err := s.store.Save(seed.KindNav, next); err != nil {
		return errors.Storage("write", err)
	}
	s.record("delete", string(seed.KindNav), id, "")
	return nil
}

// ListNavItems returns every navigation entry.
func (s *Service) ListNavItems() ([]seed.NavItem, error) {
	var nav []seed.NavItem
	if err := s.store.Load(seed.KindNav, &nav); err != nil {
		return nil, errors.Storage("read", err)
	}
	return nav, nil
}
