package fs

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/darkboard/darkboard/pkg/core"
)

const (
	// FormatName identifies a notes file in its header.
	FormatName = "darkboard/notes"
	// FormatVersion is the schema version written by this package.
	// Readers accept any version: fields are keyed, so newer writers only add keys.
	FormatVersion = 1
)

// ErrUnknownFormat is returned when the header names a different format.
var ErrUnknownFormat = errors.New("not a notes file")

// header opens every notes file.
type header struct {
	Format  string `cbor:"1,keyasint"`
	Version int    `cbor:"2,keyasint"`
}

// record is the on-disk form of a note. Keys follow the schema order
// id, title, body, isPinned, isEditing, isDeleted, isNew, x, y.
type record struct {
	ID        int32   `cbor:"1,keyasint"`
	Title     string  `cbor:"2,keyasint"`
	Body      string  `cbor:"3,keyasint"`
	IsPinned  bool    `cbor:"4,keyasint"`
	IsEditing bool    `cbor:"5,keyasint"`
	IsDeleted bool    `cbor:"6,keyasint"`
	IsNew     bool    `cbor:"7,keyasint"`
	X         float32 `cbor:"8,keyasint"`
	Y         float32 `cbor:"9,keyasint"`
}

// encMode writes Core Deterministic Encoding: integer keys come out sorted,
// which keeps fields in schema order.
var encMode cbor.EncMode

// decMode ignores unknown keys so files from newer writers stay readable.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("fs: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic("fs: CBOR decoder initialization failed: " + err.Error())
	}
}

func toRecord(n core.Note) record {
	isNew, isEditing, isDeleted := n.Flags()
	return record{
		ID:        int32(n.ID),
		Title:     n.Title,
		Body:      n.Body,
		IsPinned:  n.Pinned,
		IsEditing: isEditing,
		IsDeleted: isDeleted,
		IsNew:     isNew,
		X:         n.Position.X,
		Y:         n.Position.Y,
	}
}

func (r record) note() core.Note {
	return core.Note{
		ID:       core.ID(r.ID),
		Title:    r.Title,
		Body:     r.Body,
		State:    core.StateFromFlags(r.IsNew, r.IsEditing, r.IsDeleted),
		Pinned:   r.IsPinned,
		Position: core.Position{X: r.X, Y: r.Y},
	}
}

// WriteNotes encodes the header followed by one record per non-deleted note.
func WriteNotes(w io.Writer, notes []core.Note) error {
	enc := encMode.NewEncoder(w)
	if err := enc.Encode(header{Format: FormatName, Version: FormatVersion}); err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}
	for _, n := range notes {
		if n.IsDeleted() {
			continue
		}
		if err := enc.Encode(toRecord(n)); err != nil {
			return fmt.Errorf("failed to encode note %d: %w", n.ID, err)
		}
	}
	return nil
}

// ReadNotes decodes a notes stream.
//
// Decoding stops at the first record that is truncated or malformed; the
// notes read so far are returned together with an error wrapping
// core.ErrReadTruncated. An empty stream is an empty board.
func ReadNotes(r io.Reader) ([]core.Note, error) {
	dec := decMode.NewDecoder(r)

	var h header
	if err := dec.Decode(&h); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: header: %w", core.ErrReadTruncated, err)
	}
	if h.Format != FormatName {
		return nil, fmt.Errorf("%w: format %q", ErrUnknownFormat, h.Format)
	}

	var notes []core.Note
	for {
		var rec record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return notes, nil
		}
		if err != nil {
			return notes, fmt.Errorf("%w: after %d records: %w", core.ErrReadTruncated, len(notes), err)
		}
		notes = append(notes, rec.note())
	}
}
