package server

import (
	"net/http"

	"git.home.luguber.info/inful/blogsmith/internal/admin"
)

// postCreatePayload mirrors the seed post shape on the wire.
type postCreatePayload struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Summary    string   `json:"summary"`
	Content    string   `json:"content"`
	Cover      string   `json:"cover"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	Status     string   `json:"status"`
	Pinned     bool     `json:"pinned"`
}

// postUpdatePayload carries a partial update; absent keys stay untouched.
type postUpdatePayload struct {
	Title      *string  `json:"title"`
	Slug       *string  `json:"slug"`
	Summary    *string  `json:"summary"`
	Content    *string  `json:"content"`
	Cover      *string  `json:"cover"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	Status     *string  `json:"status"`
	CreatedAt  *string  `json:"created_at"`
	Pinned     *bool    `json:"pinned"`
	AutoUnpin  bool     `json:"auto_unpin"`
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.svc.ListPosts()
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, posts)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.svc.FindPost(r.PathValue("id"))
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, post)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var payload postCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	post, err := s.svc.CreatePost(admin.PostCreate{
		ID:         payload.ID,
		Title:      payload.Title,
		Slug:       payload.Slug,
		Summary:    payload.Summary,
		Content:    payload.Content,
		Cover:      payload.Cover,
		Categories: payload.Categories,
		Tags:       payload.Tags,
		CreatedAt:  payload.CreatedAt,
		UpdatedAt:  payload.UpdatedAt,
		Status:     payload.Status,
		Pinned:     payload.Pinned,
	})
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("posts", "create")
	s.writeJSON(w, r, http.StatusCreated, post)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var payload postUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	post, err := s.svc.UpdatePost(r.PathValue("id"), admin.PostUpdate{
		Title:      payload.Title,
		Slug:       payload.Slug,
		Summary:    payload.Summary,
		Content:    payload.Content,
		Cover:      payload.Cover,
		Categories: payload.Categories,
		Tags:       payload.Tags,
		Status:     payload.Status,
		CreatedAt:  payload.CreatedAt,
		Pinned:     payload.Pinned,
		AutoUnpin:  payload.AutoUnpin,
	})
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("posts", "update")
	s.writeJSON(w, r, http.StatusOK, post)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeletePost(r.PathValue("id")); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("posts", "delete")
	w.WriteHeader(http.StatusNoContent)
}
