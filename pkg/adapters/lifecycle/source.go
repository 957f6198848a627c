package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/darkboard/darkboard/pkg/core"
)

// ChangeKind says what happened to the notes file.
type ChangeKind string

const (
	// ChangeCreated: the file appeared.
	ChangeCreated ChangeKind = "created"
	// ChangeSaved: the file was rewritten, including an atomic replace.
	ChangeSaved ChangeKind = "saved"
	// ChangeRemoved: the file is gone; the board would load empty.
	ChangeRemoved ChangeKind = "removed"
)

// Change is the lifecycle.Event emitted for each notes file event.
type Change struct {
	Kind ChangeKind
	Path string
	At   time.Time
}

func (c Change) String() string {
	return fmt.Sprintf("notes file %s: %s", c.Kind, c.Path)
}

// NeedsReload reports whether a loaded board is stale after this change.
func (c Change) NeedsReload() bool {
	return c.Kind != ChangeRemoved
}

// toChange maps a watcher event. Unknown event types are dropped.
func toChange(e core.Event) (Change, bool) {
	var kind ChangeKind
	switch e.Type {
	case core.EventCreate:
		kind = ChangeCreated
	case core.EventModify:
		kind = ChangeSaved
	case core.EventDelete:
		kind = ChangeRemoved
	default:
		return Change{}, false
	}
	at := time.Now()
	if e.Timestamp != 0 {
		at = time.Unix(e.Timestamp, 0)
	}
	return Change{Kind: kind, Path: e.Path, At: at}, true
}

type boardSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source of notes file changes.
// Every event is delivered as a Change.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &boardSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *boardSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *boardSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				c, ok := toChange(e)
				if !ok {
					continue
				}
				select {
				case s.out <- c:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
