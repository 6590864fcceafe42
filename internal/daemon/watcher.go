package daemon

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
)

// SeedWatcher monitors the seed directory and triggers regeneration after
// changes settle. Editors write seed files in bursts (temp file, rename,
// chmod), so events are debounced before a regenerate fires.
type SeedWatcher struct {
	seedDir  string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	trigger  func()
}

// NewSeedWatcher creates a watcher over seedDir that calls trigger once per
// settled burst of changes.
func NewSeedWatcher(seedDir string, debounce time.Duration, trigger func()) (*SeedWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "create file watcher")
	}

	absDir, err := filepath.Abs(seedDir)
	if err != nil {
		_ = watcher.Close()
		return nil, errors.Wrap(err, errors.CategoryInternal, "resolve seed directory")
	}

	return &SeedWatcher{
		seedDir:  absDir,
		debounce: debounce,
		watcher:  watcher,
		trigger:  trigger,
	}, nil
}

// Start begins watching. It returns after registering the watch; the event
// loop runs until ctx is canceled.
func (sw *SeedWatcher) Start(ctx context.Context) error {
	if err := sw.watcher.Add(sw.seedDir); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "watch seed directory")
	}
	slog.Info("Watching seed directory", logfields.Path(sw.seedDir))
	go sw.loop(ctx)
	return nil
}

// Close releases the underlying watcher.
func (sw *SeedWatcher) Close() error {
	return sw.watcher.Close()
}

func (sw *SeedWatcher) loop(ctx context.Context) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !sw.relevant(event) {
				continue
			}
			slog.Debug("Seed change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.AfterFunc(sw.debounce, sw.trigger)
			} else {
				timer.Reset(sw.debounce)
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Seed watcher error", logfields.Error(err))
		}
	}
}

// relevant filters for writes to seed JSON files; editor temp files and
// directory chmods would otherwise cause spurious regenerations.
func (sw *SeedWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasSuffix(event.Name, ".json")
}
