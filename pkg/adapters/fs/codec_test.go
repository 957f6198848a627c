package fs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkboard/darkboard/pkg/core"
)

func sampleNotes() []core.Note {
	return []core.Note{
		{ID: 0, Title: "Groceries", Body: "milk eggs", State: core.StateViewing, Position: core.Position{X: 10, Y: 20}},
		{ID: 1, Title: "Pinned", Body: "stay", State: core.StateViewing, Pinned: true, Position: core.Position{X: 300.5, Y: 42.25}},
		{ID: 3, Title: "Draft", Body: "typing", State: core.StateEditingBody, Position: core.Position{X: -4, Y: 0}},
		{ID: 4, Title: "New note", Body: "Body", State: core.StateFresh, Position: core.Position{X: 1, Y: 1}},
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNotes(&buf, sampleNotes()))

	got, err := ReadNotes(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleNotes(), got)
}

func TestCodec_SkipsDeleted(t *testing.T) {
	notes := sampleNotes()
	notes[1].State = core.StateDeleted

	var buf bytes.Buffer
	require.NoError(t, WriteNotes(&buf, notes))

	got, err := ReadNotes(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, n := range got {
		assert.NotEqual(t, core.ID(1), n.ID)
	}
}

func TestCodec_EmptyStream(t *testing.T) {
	got, err := ReadNotes(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCodec_Truncated(t *testing.T) {
	// Encode record by record to learn where each one ends.
	var buf bytes.Buffer
	enc := encMode.NewEncoder(&buf)
	require.NoError(t, enc.Encode(header{Format: FormatName, Version: FormatVersion}))
	ends := []int{buf.Len()}
	for _, n := range sampleNotes() {
		require.NoError(t, enc.Encode(toRecord(n)))
		ends = append(ends, buf.Len())
	}
	data := buf.Bytes()

	for complete := 0; complete < len(sampleNotes()); complete++ {
		start, end := ends[complete], ends[complete+1]
		for _, cut := range []int{start + 1, (start + end) / 2, end - 1} {
			got, err := ReadNotes(bytes.NewReader(data[:cut]))
			require.ErrorIs(t, err, core.ErrReadTruncated, "cut at %d", cut)
			assert.Equal(t, sampleNotes()[:complete], notesOrEmpty(got), "cut at %d", cut)
		}
	}

	t.Run("Cut Inside Header", func(t *testing.T) {
		got, err := ReadNotes(bytes.NewReader(data[:ends[0]-1]))
		assert.ErrorIs(t, err, core.ErrReadTruncated)
		assert.Empty(t, got)
	})

	t.Run("Garbage After Valid Records", func(t *testing.T) {
		corrupt := append(bytes.Clone(data[:ends[2]]), 0xff, 0x00, 0x13)
		got, err := ReadNotes(bytes.NewReader(corrupt))
		assert.ErrorIs(t, err, core.ErrReadTruncated)
		assert.Equal(t, sampleNotes()[:2], got)
	})
}

func notesOrEmpty(notes []core.Note) []core.Note {
	if notes == nil {
		return []core.Note{}
	}
	return notes
}

func TestCodec_ForwardCompatible(t *testing.T) {
	// A newer writer: higher version, extra header key and an extra record field.
	var buf bytes.Buffer
	enc := encMode.NewEncoder(&buf)
	require.NoError(t, enc.Encode(map[int]any{1: FormatName, 2: FormatVersion + 1, 3: "future"}))
	require.NoError(t, enc.Encode(map[int]any{
		1: 7, 2: "Later", 3: "from the future", 4: true, 5: false, 6: false, 7: false,
		8: float32(5), 9: float32(6),
		10: map[string]any{"color": "yellow"},
	}))

	got, err := ReadNotes(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, core.Note{
		ID:       7,
		Title:    "Later",
		Body:     "from the future",
		State:    core.StateViewing,
		Pinned:   true,
		Position: core.Position{X: 5, Y: 6},
	}, got[0])
}

func TestCodec_UnknownFormat(t *testing.T) {
	data, err := cbor.Marshal(map[int]any{1: "something/else", 2: 1})
	require.NoError(t, err)

	_, err = ReadNotes(bytes.NewReader(data))
	assert.True(t, errors.Is(err, ErrUnknownFormat), "got %v", err)
}
