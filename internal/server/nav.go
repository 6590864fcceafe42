package server

import (
	"net/http"

	"git.home.luguber.info/inful/blogsmith/internal/admin"
)

type navCreatePayload struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Href    string `json:"href"`
	Order   *int   `json:"order"`
	Visible *bool  `json:"visible"`
}

type navUpdatePayload struct {
	Label   *string `json:"label"`
	Href    *string `json:"href"`
	Order   *int    `json:"order"`
	Visible *bool   `json:"visible"`
}

func (s *Server) handleListNav(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.ListNavItems()
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, items)
}

func (s *Server) handleCreateNav(w http.ResponseWriter, r *http.Request) {
	var payload navCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	item, err := s.svc.CreateNavItem(admin.NavCreate{
		ID:      payload.ID,
		Label:   payload.Label,
		Href:    payload.Href,
		Order:   payload.Order,
		Visible: payload.Visible,
	})
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("nav", "create")
	s.writeJSON(w, r, http.StatusCreated, item)
}

func (s *Server) handleUpdateNav(w http.ResponseWriter, r *http.Request) {
	var payload navUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	item, err := s.svc.UpdateNavItem(r.PathValue("id"), admin.NavUpdate{
		Label:   payload.Label,
		Href:    payload.Href,
		Order:   payload.Order,
		Visible: payload.Visible,
	})
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("nav", "update")
	s.writeJSON(w, r, http.StatusOK, item)
}

func (s *Server) handleDeleteNav(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteNavItem(r.PathValue("id")); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("nav", "delete")
	w.WriteHeader(http.StatusNoContent)
}
