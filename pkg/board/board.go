// Package board drives a note store from the input a host collects each frame.
//
// A host draws the active notes and reports what the user did: a double-click
// on empty background, text committed in a card, pin and close presses, and
// where each card ended up. The Board turns that report into store operations.
package board

import (
	"context"
	"errors"
	"iter"
	"log/slog"

	"github.com/darkboard/darkboard/pkg/core"
)

// ErrClosed is returned by a Host when its window is gone.
var ErrClosed = errors.New("host closed")

// CardInput is what happened to one card during a frame.
type CardInput struct {
	ID core.ID
	// Position is where the card was drawn this frame.
	Position core.Position
	// Title carries the title field text while the title is being edited.
	Title *string
	// ConfirmTitle is set when the user committed the title.
	ConfirmTitle bool
	// BeginEdit is set when the user clicked the body text.
	BeginEdit bool
	// Body carries the committed body text when body editing ends.
	Body         *string
	PinPressed   bool
	ClosePressed bool
}

// Input is everything a host reports for one frame.
type Input struct {
	// DoubleClick is set when the background was double-clicked at Cursor.
	DoubleClick bool
	Cursor      core.Position
	Cards       []CardInput
}

// Host is the rendering collaborator.
type Host interface {
	// Frame draws the notes and returns the input collected while doing so.
	// It returns ErrClosed once the user closed the board.
	Frame(ctx context.Context, notes iter.Seq[core.Note]) (Input, error)
}

// Board applies host input to a store.
type Board struct {
	store  *core.Store
	logger *slog.Logger
}

// New creates a Board over store. A nil logger discards output.
func New(store *core.Store, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Board{store: store, logger: logger}
}

// Store returns the board's store.
func (b *Board) Store() *core.Store {
	return b.store
}

// Apply runs one frame of input against the store.
//
// The background double-click is handled first, then each card in order.
// Close presses are ignored while a title is still pending. A capacity
// error from note creation is returned after the rest of the frame has
// been applied.
func (b *Board) Apply(in Input) error {
	var createErr error
	if in.DoubleClick {
		id, created, err := b.store.CreateNote(in.Cursor)
		switch {
		case err != nil:
			b.logger.Warn("cannot create note", "error", err)
			createErr = err
		case created:
			b.logger.Debug("note created", "id", id, "x", in.Cursor.X, "y", in.Cursor.Y)
		default:
			b.logger.Debug("note creation suppressed, title pending")
		}
	}

	for _, card := range in.Cards {
		b.applyCard(card)
	}
	return createErr
}

func (b *Board) applyCard(card CardInput) {
	s := b.store
	if card.Title != nil {
		s.SetTitle(card.ID, *card.Title)
	}
	if card.ConfirmTitle {
		s.ConfirmTitle(card.ID)
	}
	if card.PinPressed {
		s.TogglePin(card.ID)
	}
	if card.ClosePressed {
		if _, pending := s.Pending(); pending {
			b.logger.Debug("close ignored while a title is pending", "id", card.ID)
		} else {
			s.SoftDelete(card.ID)
			b.logger.Debug("note deleted", "id", card.ID)
		}
	}
	if card.BeginEdit {
		s.BeginEdit(card.ID)
	}
	if card.Body != nil {
		s.CommitEdit(card.ID, *card.Body)
	}
	s.UpdatePosition(card.ID, card.Position)
}

// Run drives frames until the host closes or ctx is done.
// Capacity errors are logged and the loop continues; any other host error
// ends the run.
func (b *Board) Run(ctx context.Context, host Host) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		in, err := host.Frame(ctx, b.store.ActiveNotes())
		if errors.Is(err, ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := b.Apply(in); err != nil && !errors.Is(err, core.ErrCapacityExceeded) {
			return err
		}
	}
}
