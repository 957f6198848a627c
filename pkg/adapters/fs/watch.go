package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/darkboard/darkboard/pkg/core"
)

// watchDebounce coalesces the burst of events produced by one atomic save.
const watchDebounce = 50 * time.Millisecond

// Watch reports changes to files in the notes directory matching the
// configured pattern. The directory is watched rather than the file so that
// atomic renames are observed. The channel closes when ctx is done.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(r.config.WatchPattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", r.config.WatchPattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(r.Path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event, 16)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		return r.watchLoop(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		r.handleWatchError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return events, nil
}

func (r *Repository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- core.Event) error {
	var (
		pending *core.Event
		timer   = time.NewTimer(time.Hour)
	)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			r.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

			e, ok := r.mapEvent(event)
			if !ok {
				continue
			}
			// A later event in the burst wins, except that a delete followed
			// by a create is reported as a modification.
			if pending != nil && pending.Type == core.EventDelete && e.Type == core.EventCreate {
				e.Type = core.EventModify
			}
			pending = &e
			timer.Reset(watchDebounce)

		case <-timer.C:
			if pending == nil {
				continue
			}
			select {
			case out <- *pending:
			case <-ctx.Done():
				return nil
			}
			pending = nil

		case err, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			r.handleWatchError(err)
		}
	}
}

// mapEvent filters temp files and names outside the pattern.
func (r *Repository) mapEvent(event fsnotify.Event) (core.Event, bool) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) {
		return core.Event{}, false
	}

	match, err := doublestar.Match(r.config.WatchPattern, name)
	if err != nil || !match {
		return core.Event{}, false
	}

	var t core.EventType
	switch {
	case event.Has(fsnotify.Create):
		t = core.EventCreate
	case event.Has(fsnotify.Write):
		t = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		t = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{
		Type:      t,
		Path:      event.Name,
		Timestamp: time.Now().Unix(),
	}, true
}

func (r *Repository) handleWatchError(err error) {
	r.config.Logger.Error("watcher error", "error", err)
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}
