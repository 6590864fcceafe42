// Package server exposes the admin API over HTTP: CRUD for every seed entity
// kind, snapshot generation and publishing triggers, the mutation history,
// and Prometheus metrics. The same mutation service backs the CLI, so both
// surfaces share validation and the pinning policy.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/admin"
	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/history"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
)

// Runtime is the subset of application operations the API can trigger.
type Runtime interface {
	Generate() error
	Publish(ctx context.Context, title string) error
}

// HistorySource serves recent audit entries.
type HistorySource interface {
	Recent(limit int) ([]history.Entry, error)
}

// Server is the admin HTTP API.
type Server struct {
	svc      *admin.Service
	runtime  Runtime
	hist     HistorySource
	adapter  *errors.HTTPAdapter
	recorder metrics.Recorder
	metrics  http.Handler
	logger   *slog.Logger
}

// New creates the admin API server over the given mutation service and
// runtime operations.
func New(svc *admin.Service, runtime Runtime) *Server {
	return &Server{
		svc:      svc,
		runtime:  runtime,
		adapter:  errors.NewHTTPAdapter(nil),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithHistory attaches the audit log source for /api/history.
func (s *Server) WithHistory(hist HistorySource) *Server {
	s.hist = hist
	return s
}

// WithMetrics attaches a metrics recorder and, when handler is non-nil, a
// /metrics scrape endpoint.
func (s *Server) WithMetrics(recorder metrics.Recorder, handler http.Handler) *Server {
	s.recorder = recorder
	s.metrics = handler
	return s
}

// WithLogger overrides the request logger.
func (s *Server) WithLogger(logger *slog.Logger) *Server {
	s.logger = logger
	s.adapter = errors.NewHTTPAdapter(logger)
	return s
}

// Handler builds the full route table wrapped in logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/publish", s.handlePublish)
	mux.HandleFunc("GET /api/history", s.handleHistory)

	mux.HandleFunc("GET /api/posts", s.handleListPosts)
	mux.HandleFunc("POST /api/posts", s.handleCreatePost)
	mux.HandleFunc("GET /api/posts/{id}", s.handleGetPost)
	mux.HandleFunc("PUT /api/posts/{id}", s.handleUpdatePost)
	mux.HandleFunc("DELETE /api/posts/{id}", s.handleDeletePost)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("PUT /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/tags", s.handleListTags)
	mux.HandleFunc("POST /api/tags", s.handleCreateTag)
	mux.HandleFunc("PUT /api/tags/{id}", s.handleUpdateTag)
	mux.HandleFunc("DELETE /api/tags/{id}", s.handleDeleteTag)

	mux.HandleFunc("GET /api/nav", s.handleListNav)
	mux.HandleFunc("POST /api/nav", s.handleCreateNav)
	mux.HandleFunc("PUT /api/nav/{id}", s.handleUpdateNav)
	mux.HandleFunc("DELETE /api/nav/{id}", s.handleDeleteNav)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)

	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	return s.loggingMiddleware(s.recoveryMiddleware(mux))
}

// loggingMiddleware logs method, path, status, and duration per request and
// feeds the request histogram.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)
		s.recorder.ObserveHTTPRequest(r.Method, wrapped.statusCode, duration)
		s.logger.Info("HTTP request",
			logfields.Method(r.Method),
			logfields.Path(r.URL.Path),
			logfields.Status(wrapped.statusCode),
			slog.Duration("duration", duration),
			logfields.RemoteAddr(r.RemoteAddr))
	})
}

// recoveryMiddleware turns handler panics into structured 500 responses.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("HTTP handler panic",
					slog.Any("panic", rec),
					logfields.Method(r.Method),
					logfields.Path(r.URL.Path))
				s.adapter.WriteError(w, r, errors.New(errors.CategoryInternal, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusWriter captures status codes for logging.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.statusCode = code
	sw.ResponseWriter.WriteHeader(code)
}

// writeJSON encodes into an intermediate buffer so a failed serialization
// never sends a partial response.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.adapter.WriteError(w, r, errors.Wrap(err, errors.CategoryInternal, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("Failed writing response body", logfields.Error(err))
	}
}

// decodeJSON reads and decodes a request body, mapping failures to
// validation errors.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid JSON body")
	}
	return nil
}
