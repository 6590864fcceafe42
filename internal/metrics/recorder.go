// Package metrics provides observability hooks for snapshot generation and
// admin mutations. Components receive a Recorder through dependency
// injection; the default NoopRecorder keeps metrics optional with zero
// overhead.
package metrics

import "time"

// OutcomeLabel enumerates operation result categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for generation, publishing, and admin
// mutations. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveGenerateDuration(d time.Duration)
	IncGenerateOutcome(outcome OutcomeLabel)
	IncPublishOutcome(outcome OutcomeLabel)
	IncMutation(kind, action string)
	ObserveHTTPRequest(method string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGenerateDuration(time.Duration)            {}
func (NoopRecorder) IncGenerateOutcome(OutcomeLabel)                  {}
func (NoopRecorder) IncPublishOutcome(OutcomeLabel)                   {}
func (NoopRecorder) IncMutation(string, string)                       {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration)    {}
