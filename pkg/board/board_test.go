package board_test

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkboard/darkboard/pkg/board"
	"github.com/darkboard/darkboard/pkg/core"
)

func ptr(s string) *string { return &s }

func TestBoard_DoubleClickCreatesNote(t *testing.T) {
	b := board.New(core.NewStore(), nil)

	require.NoError(t, b.Apply(board.Input{DoubleClick: true, Cursor: core.Position{X: 10, Y: 20}}))
	n, ok := b.Store().Note(0)
	require.True(t, ok)
	assert.True(t, n.IsNew())
	assert.Equal(t, core.Position{X: 10, Y: 20}, n.Position)

	// Second double-click before the title is confirmed does nothing.
	require.NoError(t, b.Apply(board.Input{DoubleClick: true, Cursor: core.Position{X: 99, Y: 99}}))
	assert.Equal(t, 1, b.Store().Len())
}

func TestBoard_CardLifecycle(t *testing.T) {
	b := board.New(core.NewStore(), nil)
	require.NoError(t, b.Apply(board.Input{DoubleClick: true, Cursor: core.Position{X: 1, Y: 1}}))

	require.NoError(t, b.Apply(board.Input{Cards: []board.CardInput{
		{ID: 0, Position: core.Position{X: 1, Y: 1}, Title: ptr("Groceries"), ConfirmTitle: true},
	}}))
	require.NoError(t, b.Apply(board.Input{Cards: []board.CardInput{
		{ID: 0, Position: core.Position{X: 5, Y: 6}, BeginEdit: true},
	}}))

	n, _ := b.Store().Note(0)
	assert.Equal(t, "Groceries", n.Title)
	assert.True(t, n.IsEditing())
	assert.Equal(t, core.Position{X: 5, Y: 6}, n.Position)

	require.NoError(t, b.Apply(board.Input{Cards: []board.CardInput{
		{ID: 0, Position: core.Position{X: 5, Y: 6}, Body: ptr("milk\neggs"), PinPressed: true},
	}}))
	n, _ = b.Store().Note(0)
	assert.Equal(t, "milk eggs", n.Body)
	assert.False(t, n.IsEditing())
	assert.True(t, n.Pinned)

	require.NoError(t, b.Apply(board.Input{Cards: []board.CardInput{
		{ID: 0, ClosePressed: true},
	}}))
	assert.Equal(t, 0, b.Store().Len())
}

func TestBoard_CloseIgnoredWhileTitlePending(t *testing.T) {
	store := core.NewStore()
	id, _, _ := store.CreateNote(core.Position{})
	store.ConfirmTitle(id)
	b := board.New(store, nil)

	// A fresh note appears and the user presses close on the older card.
	require.NoError(t, b.Apply(board.Input{
		DoubleClick: true,
		Cards:       []board.CardInput{{ID: id, ClosePressed: true}},
	}))
	assert.Equal(t, 2, store.Len())

	store.ConfirmTitle(1)
	require.NoError(t, b.Apply(board.Input{Cards: []board.CardInput{{ID: id, ClosePressed: true}}}))
	assert.Equal(t, 1, store.Len())
}

func TestBoard_CapacityErrorStillAppliesCards(t *testing.T) {
	store := core.NewStore()
	for i := 0; i < core.MaxNotes; i++ {
		id, _, err := store.CreateNote(core.Position{})
		require.NoError(t, err)
		store.ConfirmTitle(id)
	}
	b := board.New(store, nil)

	err := b.Apply(board.Input{
		DoubleClick: true,
		Cards:       []board.CardInput{{ID: 7, Position: core.Position{X: 70, Y: 70}}},
	})
	assert.ErrorIs(t, err, core.ErrCapacityExceeded)

	n, _ := store.Note(7)
	assert.Equal(t, core.Position{X: 70, Y: 70}, n.Position)
}

type failingHost struct{ err error }

func (h failingHost) Frame(ctx context.Context, notes iter.Seq[core.Note]) (board.Input, error) {
	return board.Input{}, h.err
}

func TestBoard_RunStopsOnHostError(t *testing.T) {
	b := board.New(core.NewStore(), nil)
	boom := errors.New("device lost")

	assert.ErrorIs(t, b.Run(context.Background(), failingHost{err: boom}), boom)
	assert.NoError(t, b.Run(context.Background(), failingHost{err: board.ErrClosed}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Run(ctx, failingHost{}), context.Canceled)
}

func TestBoard_RunScript(t *testing.T) {
	script := `
frames:
  - double_click: {x: 10, y: 20}
  - double_click: {x: 50, y: 50}
  - cards:
      - {id: 0, title: Groceries, confirm_title: true}
  - double_click: {x: 200, y: 20}
  - cards:
      - {id: 1, confirm_title: true, move: {x: 210, y: 30}}
      - {id: 0, begin_edit: true}
  - cards:
      - {id: 0, body: "milk\neggs", pin: true}
  - cards:
      - {id: 0, move: {x: 999, y: 999}}
      - {id: 1, close: true}
`
	host, err := board.LoadScript(strings.NewReader(script))
	require.NoError(t, err)

	b := board.New(core.NewStore(), nil)
	require.NoError(t, b.Run(context.Background(), host))

	final := host.Last()
	require.Len(t, final, 1)
	assert.Equal(t, core.Note{
		ID:       0,
		Title:    "Groceries",
		Body:     "milk eggs",
		State:    core.StateViewing,
		Pinned:   true,
		Position: core.Position{X: 10, Y: 20},
	}, final[0])

	// One rendered frame per scripted frame plus the closing one.
	assert.Len(t, host.Rendered, 8)
}

func TestLoadScript_RejectsUnknownFields(t *testing.T) {
	_, err := board.LoadScript(strings.NewReader("frames:\n  - double_clik: {x: 1, y: 1}\n"))
	assert.Error(t, err)
}
