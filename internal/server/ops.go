package server

import (
	"net/http"
	"strconv"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/admin"
	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/history"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	err := s.runtime.Generate()
	s.recorder.ObserveGenerateDuration(time.Since(start))
	if err != nil {
		s.recorder.IncGenerateOutcome(metrics.OutcomeFailed)
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncGenerateOutcome(metrics.OutcomeSuccess)
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "generated"})
}

type publishPayload struct {
	Title string `json:"title"`
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var payload publishPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	if payload.Title == "" {
		s.adapter.WriteError(w, r, errors.ValidationMsg("publish title is required"))
		return
	}
	if err := s.runtime.Publish(r.Context(), payload.Title); err != nil {
		s.recorder.IncPublishOutcome(metrics.OutcomeFailed)
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncPublishOutcome(metrics.OutcomeSuccess)
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "published", "title": payload.Title})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		s.writeJSON(w, r, http.StatusOK, []history.Entry{})
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.adapter.WriteError(w, r, errors.ValidationMsg("limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	entries, err := s.hist.Recent(limit)
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	s.writeJSON(w, r, http.StatusOK, entries)
}

type settingsUpdatePayload map[string]any

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.svc.Settings()
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload settingsUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}

	update := admin.SettingsUpdate{Extra: map[string]any{}}
	for key, value := range payload {
		if key == "markdownTheme" {
			theme, ok := value.(string)
			if !ok {
				s.adapter.WriteError(w, r, errors.ValidationMsg("markdownTheme must be a string"))
				return
			}
			update.MarkdownTheme = &theme
			continue
		}
		update.Extra[key] = value
	}

	settings, err := s.svc.UpdateSettings(update)
	if err != nil {
		s.adapter.WriteError(w, r, err)
		return
	}
	s.recorder.IncMutation("settings", "update")
	s.writeJSON(w, r, http.StatusOK, settings)
}
