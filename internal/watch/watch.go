// Package watch re-runs an action when files in a directory change.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of events from a single editor save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher calls OnChange after writes, creates, renames or removes in the
// watched directories settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// New creates a Watcher for dirs.
func New(debounce time.Duration, dirs ...string) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return &Watcher{watcher: watcher, debounce: debounce}, nil
}

// Run blocks until ctx is done or the watcher fails, calling onChange with
// the last changed path of each burst. An onChange error is returned to the
// caller's errFn and does not stop the loop.
func (w *Watcher) Run(ctx context.Context, onChange func(path string) error, errFn func(error)) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := ""

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if !relevant(event) {
				continue
			}
			pending = event.Name
			timer.Reset(w.debounce)
		case <-timer.C:
			if pending == "" {
				continue
			}
			if err := onChange(pending); err != nil && errFn != nil {
				errFn(err)
			}
			pending = ""
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
