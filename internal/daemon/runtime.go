// Package daemon runs blogsmith in serve mode: the admin HTTP API, an
// optional seed watcher that regenerates the snapshot on changes, and an
// optional cron schedule for periodic regeneration.
package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/generator"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
	"git.home.luguber.info/inful/blogsmith/internal/publish"
)

// Runtime executes generate and publish operations for the API and the
// triggers. A mutex serializes runs: the watcher, the scheduler, and API
// calls may fire concurrently but snapshot writes must not interleave.
type Runtime struct {
	mu        sync.Mutex
	generator *generator.Generator
	outDir    string
	publisher *publish.Publisher
	recorder  metrics.Recorder
}

// NewRuntime creates a runtime writing snapshots to outDir.
func NewRuntime(gen *generator.Generator, outDir string, publisher *publish.Publisher) *Runtime {
	return &Runtime{
		generator: gen,
		outDir:    outDir,
		publisher: publisher,
		recorder:  metrics.NoopRecorder{},
	}
}

// WithMetrics attaches a metrics recorder.
func (rt *Runtime) WithMetrics(recorder metrics.Recorder) *Runtime {
	rt.recorder = recorder
	return rt
}

// Generate regenerates the snapshot from the seed files.
func (rt *Runtime) Generate() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	_, err := rt.generator.Generate(rt.outDir)
	duration := time.Since(start)
	rt.recorder.ObserveGenerateDuration(duration)
	if err != nil {
		rt.recorder.IncGenerateOutcome(metrics.OutcomeFailed)
		slog.Error("Snapshot generation failed", logfields.Error(err))
		return err
	}
	rt.recorder.IncGenerateOutcome(metrics.OutcomeSuccess)
	slog.Info("Snapshot generated", logfields.Path(rt.outDir), logfields.DurationMS(float64(duration.Milliseconds())))
	return nil
}

// Publish regenerates the snapshot and then commits and pushes it. A stale
// snapshot must never be published, so generation is not skippable here.
func (rt *Runtime) Publish(ctx context.Context, title string) error {
	if err := rt.Generate(); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if err := rt.publisher.Publish(ctx, title); err != nil {
		rt.recorder.IncPublishOutcome(metrics.OutcomeFailed)
		return err
	}
	rt.recorder.IncPublishOutcome(metrics.OutcomeSuccess)
	return nil
}
