package flightplan

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/muurk/cdubridge/internal/logging"
)

// DefaultDebounce collapses bursts of file events (editors and exporters
// often write a file several times) into one listing.
const DefaultDebounce = 250 * time.Millisecond

// Watcher publishes a fresh listing of a Library whenever its directory
// changes.
type Watcher struct {
	lib      *Library
	debounce time.Duration
	out      chan []string
}

// NewWatcher creates a watcher for lib.
func NewWatcher(lib *Library) *Watcher {
	return &Watcher{
		lib:      lib,
		debounce: DefaultDebounce,
		out:      make(chan []string, 1),
	}
}

// Listings delivers file lists. Only the latest undelivered list is kept.
func (w *Watcher) Listings() <-chan []string {
	return w.out
}

// Run watches the directory until ctx is done. The current listing is
// published first.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.lib.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.lib.Dir, err)
	}
	logging.Info("Watching flight plan directory", zap.String("dir", w.lib.Dir))

	w.publish(w.lib.List())

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			logging.Debug("Flight plan directory changed",
				zap.String("name", event.Name),
				zap.String("op", event.Op.String()),
			)
			timer.Reset(w.debounce)

		case <-timer.C:
			w.publish(w.lib.List())

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.Warn("Flight plan watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) publish(names []string) {
	// drop a stale, unread listing
	select {
	case <-w.out:
	default:
	}
	w.out <- names
}
