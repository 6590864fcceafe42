package server

import (
	"net/http"

	"git.home.luguber.info/inful/blogsmith/internal/admin"
)

type categoryCreatePayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Parent      string `json:"parent"`
}

type categoryUpdatePayload struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Parent      *string `json:"parent"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.ListCategories()
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	category, err := s.svc.CreateCategory(admin.CategoryCreate{
		ID:          payload.ID,
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
		Color:       payload.Color,
		Parent:      payload.Parent,
	})
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("categories", "create")
	s.writeJSON(w, r, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	category, err := s.svc.UpdateCategory(r.PathValue("id"), admin.CategoryUpdate{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
		Color:       payload.Color,
		Parent:      payload.Parent,
	})
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("categories", "update")
	s.writeJSON(w, r, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteCategory(r.PathValue("id")); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("categories", "delete")
	w.WriteHeader(http.StatusNoContent)
}

type tagCreatePayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type tagUpdatePayload struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.svc.ListTags()
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, tags)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var payload tagCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	tag, err := s.svc.CreateTag(admin.TagCreate{ID: payload.ID, Name: payload.Name, Slug: payload.Slug})
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("tags", "create")
	s.writeJSON(w, r, http.StatusCreated, tag)
}

func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	var payload tagUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	tag, err := s.svc.UpdateTag(r.PathValue("id"), admin.TagUpdate{Name: payload.Name, Slug: payload.Slug})
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("tags", "update")
	s.writeJSON(w, r, http.StatusOK, tag)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTag(r.PathValue("id")); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("tags", "delete")
	w.WriteHeader(http.StatusNoContent)
}
