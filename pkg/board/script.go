package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/darkboard/darkboard/pkg/core"
)

type scriptPoint struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type scriptCard struct {
	ID           int32        `yaml:"id"`
	Title        *string      `yaml:"title"`
	ConfirmTitle bool         `yaml:"confirm_title"`
	BeginEdit    bool         `yaml:"begin_edit"`
	Body         *string      `yaml:"body"`
	Move         *scriptPoint `yaml:"move"`
	Pin          bool         `yaml:"pin"`
	Close        bool         `yaml:"close"`
}

type scriptFrame struct {
	DoubleClick *scriptPoint `yaml:"double_click"`
	Cards       []scriptCard `yaml:"cards"`
}

type script struct {
	Frames []scriptFrame `yaml:"frames"`
}

// ScriptHost is a headless Host that replays frames from a YAML script:
//
//	frames:
//	  - double_click: {x: 10, y: 20}
//	  - cards:
//	      - {id: 0, title: Groceries, confirm_title: true}
//	  - cards:
//	      - {id: 0, move: {x: 40, y: 80}, pin: true}
//
// Like a real renderer it only reports cards it drew, and every drawn card
// reports its position; a move is ignored for pinned cards. The host closes
// after the last frame.
type ScriptHost struct {
	frames []scriptFrame
	next   int

	// Rendered holds the notes drawn in each frame, including the final one.
	Rendered [][]core.Note
}

// LoadScript parses a frame script.
func LoadScript(r io.Reader) (*ScriptHost, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s script
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &ScriptHost{frames: s.Frames}, nil
}

// Frame implements Host.
func (h *ScriptHost) Frame(ctx context.Context, notes iter.Seq[core.Note]) (Input, error) {
	drawn := slices.Collect(notes)
	h.Rendered = append(h.Rendered, drawn)

	if h.next >= len(h.frames) {
		return Input{}, ErrClosed
	}
	f := h.frames[h.next]
	h.next++

	var in Input
	if f.DoubleClick != nil {
		in.DoubleClick = true
		in.Cursor = core.Position{X: f.DoubleClick.X, Y: f.DoubleClick.Y}
	}

	scripted := make(map[core.ID]scriptCard, len(f.Cards))
	for _, c := range f.Cards {
		scripted[core.ID(c.ID)] = c
	}

	for _, n := range drawn {
		card := CardInput{ID: n.ID, Position: n.Position}
		if c, ok := scripted[n.ID]; ok {
			card.Title = c.Title
			card.ConfirmTitle = c.ConfirmTitle
			card.BeginEdit = c.BeginEdit
			card.Body = c.Body
			card.PinPressed = c.Pin
			card.ClosePressed = c.Close
			if c.Move != nil && !n.Pinned {
				card.Position = core.Position{X: c.Move.X, Y: c.Move.Y}
			}
		}
		in.Cards = append(in.Cards, card)
	}
	return in, nil
}

// Last returns the notes drawn in the final frame.
func (h *ScriptHost) Last() []core.Note {
	if len(h.Rendered) == 0 {
		return nil
	}
	return h.Rendered[len(h.Rendered)-1]
}
