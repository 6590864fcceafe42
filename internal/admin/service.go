// Package admin implements the seed mutation layer: create, update, and
// delete operations for every entity kind, including the pinning policy.
// Every operation is a complete read-modify-write cycle against the seed
// store; a failed operation writes nothing.
package admin

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogsmith/internal/logfields"
	"git.home.luguber.info/inful/blogsmith/internal/storage"
)

// AuditRecorder receives one entry per completed mutation. Recording is
// best-effort; a recorder failure never fails the mutation.
type AuditRecorder interface {
	Record(action, kind, entityID, detail string)
}

// Service is the admin mutation layer over a seed store.
type Service struct {
	store   storage.Store
	history AuditRecorder
	now     func() time.Time
	newID   func(prefix string) string
}

// NewService creates a mutation service over the given store.
func NewService(store storage.Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: defaultID,
	}
}

// WithHistory attaches an audit recorder.
func (s *Service) WithHistory(history AuditRecorder) *Service {
	s.history = history
	return s
}

// WithClock injects a clock (for tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithIDFunc injects an id generator (for tests).
func (s *Service) WithIDFunc(newID func(prefix string) string) *Service {
	s.newID = newID
	return s
}

// today returns the current date in the seed date format.
func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

func (s *Service) record(action, kind, entityID, detail string) {
	if s.history == nil {
		return
	}
	s.history.Record(action, kind, entityID, detail)
	slog.Debug("Mutation recorded", slog.String("action", action), logfields.Kind(kind), logfields.EntityID(entityID))
}

// defaultID assigns collision-resistant record ids. The prefix keeps ids
// readable in seed files ("post-3f1a2b9c").
func defaultID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
