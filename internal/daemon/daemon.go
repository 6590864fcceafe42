package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
)

// shutdownTimeout bounds graceful HTTP shutdown on exit.
const shutdownTimeout = 10 * time.Second

// Daemon ties the admin HTTP server, the seed watcher, and the scheduler
// into one serve lifecycle.
type Daemon struct {
	cfg     *config.Config
	runtime *Runtime
	handler http.Handler

	watch bool
}

// New creates a daemon serving handler with the given runtime.
func New(cfg *config.Config, runtime *Runtime, handler http.Handler) *Daemon {
	return &Daemon{cfg: cfg, runtime: runtime, handler: handler}
}

// WithWatch enables the seed directory watcher.
func (d *Daemon) WithWatch() *Daemon {
	d.watch = true
	return d
}

// Run serves until ctx is canceled, then shuts everything down gracefully.
func (d *Daemon) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         d.cfg.Server.Addr(),
		Handler:      d.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if d.watch {
		watcher, err := NewSeedWatcher(d.cfg.Seed.Dir, d.cfg.Generate.Debounce, func() {
			_ = d.runtime.Generate()
		})
		if err != nil {
			return err
		}
		defer watcher.Close()
		if err := watcher.Start(ctx); err != nil {
			return err
		}
	}

	if d.cfg.Generate.Schedule != "" {
		scheduler, err := NewScheduler(d.cfg.Generate.Schedule, func() {
			_ = d.runtime.Generate()
		})
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
		slog.Info("Scheduled regeneration enabled", slog.String("schedule", d.cfg.Generate.Schedule))
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Admin server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
