package core

import (
	"strings"
	"unicode/utf8"
)

// Limits of the note model.
const (
	// MaxNotes bounds the id space: valid ids are in [0, MaxNotes).
	MaxNotes = 256
	// MaxTitleLen is the maximum title length in bytes.
	MaxTitleLen = 31
	// MaxBodyLen is the maximum body length in bytes.
	MaxBodyLen = 255

	DefaultTitle = "New note"
	DefaultBody  = "Body"
)

// ID identifies a note on the board.
type ID int32

// Valid reports whether the id lies inside the id space.
func (id ID) Valid() bool {
	return id >= 0 && id < MaxNotes
}

// Position is an on-screen coordinate.
type Position struct {
	X float32
	Y float32
}

// State is the lifecycle stage of a note.
type State uint8

const (
	// StateFresh marks a note whose title has not been confirmed yet.
	StateFresh State = iota
	// StateViewing shows the body as static text.
	StateViewing
	// StateEditingBody shows the body in an editable field.
	StateEditingBody
	// StateDeleted is a tombstone, kept in memory until the next flush.
	StateDeleted
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateViewing:
		return "viewing"
	case StateEditingBody:
		return "editing"
	case StateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// ParseState is the inverse of State.String. Unknown names map to StateViewing.
func ParseState(name string) State {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fresh":
		return StateFresh
	case "editing":
		return StateEditingBody
	case "deleted":
		return StateDeleted
	default:
		return StateViewing
	}
}

// StateFromFlags folds the legacy boolean flags into a single state.
// Precedence is deleted, new, editing, so contradictory combinations
// collapse to one valid state.
func StateFromFlags(isNew, isEditing, isDeleted bool) State {
	switch {
	case isDeleted:
		return StateDeleted
	case isNew:
		return StateFresh
	case isEditing:
		return StateEditingBody
	default:
		return StateViewing
	}
}

// Note is the central entity of the domain: a sticky note card.
// It is agnostic to how it is drawn or stored.
type Note struct {
	ID       ID
	Title    string
	Body     string
	State    State
	Pinned   bool
	Position Position
}

func (n Note) IsNew() bool     { return n.State == StateFresh }
func (n Note) IsEditing() bool { return n.State == StateEditingBody }
func (n Note) IsDeleted() bool { return n.State == StateDeleted }

// Flags returns the boolean view of the note state used by the record schema.
func (n Note) Flags() (isNew, isEditing, isDeleted bool) {
	return n.IsNew(), n.IsEditing(), n.IsDeleted()
}

// NormalizeBody folds line breaks into spaces and bounds the length.
// CRLF counts as a single break.
func NormalizeBody(body string) string {
	return clampText(foldLines(body), MaxBodyLen)
}

// NormalizeTitle applies the same rules as NormalizeBody with the title bound.
func NormalizeTitle(title string) string {
	return clampText(foldLines(title), MaxTitleLen)
}

func foldLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
}

// clampText cuts s to at most max bytes without splitting a rune.
func clampText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
