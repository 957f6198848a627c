// Package tui is a terminal host for the board built on bubbletea.
//
// Every mouse or key message is turned into one board.Input and applied
// right away, so a message plays the part of a frame.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/darkboard/darkboard/pkg/board"
	"github.com/darkboard/darkboard/pkg/core"
)

const helpText = "double-click: new note · drag title: move · click body: edit · [p] pin · [x] close · y: copy · q: quit"

type field int

const (
	fieldNone field = iota
	fieldTitle
	fieldBody
)

type dragState struct {
	active     bool
	id         core.ID
	offX, offY int
}

// Model is the bubbletea model of the board.
type Model struct {
	board  *board.Board
	logger *slog.Logger
	yank   func(string) error

	hits   HitMap
	clicks clickTracker
	width  int
	height int

	focus    field
	focusID  core.ID
	buf      []rune
	drag     dragState
	selected core.ID
	hasSel   bool
	status   string
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		m.yank = fn
	}
}

// WithClock replaces the clock used for double-click detection.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.clicks.now = now
	}
}

// New creates a Model over b.
func New(b *board.Board, opts ...Option) *Model {
	m := &Model{
		board:  b,
		yank:   clipboard.WriteAll,
		clicks: clickTracker{now: time.Now},
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	m.syncFocus()
	return m
}

// Run shows the board in the terminal until the user quits or ctx is done.
func Run(ctx context.Context, b *board.Board, opts ...Option) error {
	p := tea.NewProgram(New(b, opts...),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		m.status = ""
		return m, m.handleKey(msg)
	}
	return m, nil
}

// View implements tea.Model. Drawing also rebuilds the hit map used by the
// next mouse message.
func (m *Model) View() string {
	c := newCanvas(m.width, m.height-1)
	m.hits.Clear()

	var top []core.Note
	for n := range m.board.Store().ActiveNotes() {
		if m.onTop(n.ID) {
			top = append(top, n)
			continue
		}
		drawCard(c, &m.hits, m.cardView(n))
	}
	for _, n := range top {
		drawCard(c, &m.hits, m.cardView(n))
	}

	status := helpStyle.Render(helpText)
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}
	return c.String() + "\n" + status
}

// onTop reports whether the note is being dragged or edited.
func (m *Model) onTop(id core.ID) bool {
	return (m.drag.active && m.drag.id == id) || (m.focus != fieldNone && m.focusID == id)
}

func (m *Model) cardView(n core.Note) cardView {
	v := cardView{note: n, title: n.Title, body: n.Body}
	if m.focusID == n.ID {
		switch m.focus {
		case fieldTitle:
			v.title = string(m.buf) + "_"
		case fieldBody:
			v.body = string(m.buf) + "_"
			v.tail = true
		}
	}
	return v
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		// Status lasts until the next press; release and motion keep it visible.
		m.status = ""
		m.press(msg.X, msg.Y)
	case msg.Action == tea.MouseActionMotion && m.drag.active:
		m.dragTo(msg.X, msg.Y)
	case msg.Action == tea.MouseActionRelease:
		m.drag = dragState{}
	}
}

func (m *Model) press(x, y int) {
	double := m.clicks.press(x, y)
	hit := m.hits.Test(x, y)

	var in board.Input
	// Any click outside the body being edited commits it.
	if m.focus == fieldBody && (hit == nil || hit.Note != m.focusID || hit.Part != PartBody) {
		in.Cards = append(in.Cards, m.bodyCommit())
	}

	if hit == nil {
		if double {
			in.DoubleClick = true
			in.Cursor = core.Position{X: float32(x), Y: float32(y)}
		}
		m.apply(in)
		return
	}

	store := m.board.Store()
	n, _ := store.Note(hit.Note)
	m.selected, m.hasSel = hit.Note, true

	card := m.card(hit.Note)
	switch hit.Part {
	case PartPin:
		card.PinPressed = true
	case PartClose:
		card.ClosePressed = true
	case PartBody:
		card.BeginEdit = n.State == core.StateViewing
	case PartTitle:
		if !n.Pinned {
			ox, oy := origin(n.Position)
			m.drag = dragState{active: true, id: n.ID, offX: x - ox, offY: y - oy}
		}
	}
	in.Cards = append(in.Cards, card)
	m.apply(in)

	if card.BeginEdit {
		if n, ok := store.Note(hit.Note); ok && n.IsEditing() {
			m.focus, m.focusID, m.buf = fieldBody, n.ID, []rune(n.Body)
		}
	}
}

func (m *Model) dragTo(x, y int) {
	card := m.card(m.drag.id)
	card.Position = core.Position{
		X: float32(max(0, x-m.drag.offX)),
		Y: float32(max(0, y-m.drag.offY)),
	}
	m.apply(board.Input{Cards: []board.CardInput{card}})
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	switch m.focus {
	case fieldTitle:
		m.editTitle(msg)
		return nil
	case fieldBody:
		m.editBody(msg)
		return nil
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "y":
		m.copySelected()
	}
	return nil
}

func (m *Model) editTitle(msg tea.KeyMsg) {
	card := m.card(m.focusID)
	switch msg.Type {
	case tea.KeyEnter:
		card.ConfirmTitle = true
	case tea.KeyBackspace:
		if len(m.buf) > 0 {
			m.buf = m.buf[:len(m.buf)-1]
		}
	case tea.KeySpace:
		m.buf = append(m.buf, ' ')
	case tea.KeyRunes:
		m.buf = append(m.buf, msg.Runes...)
	default:
		return
	}
	title := string(m.buf)
	card.Title = &title
	id := m.focusID
	m.apply(board.Input{Cards: []board.CardInput{card}})

	// The store bounds the title; keep the field in step with it.
	if m.focus == fieldTitle && m.focusID == id {
		if n, ok := m.board.Store().Note(id); ok {
			m.buf = []rune(n.Title)
		}
	}
}

func (m *Model) editBody(msg tea.KeyMsg) {
	var add []rune
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.apply(board.Input{Cards: []board.CardInput{m.bodyCommit()}})
		return
	case tea.KeyBackspace:
		if len(m.buf) > 0 {
			m.buf = m.buf[:len(m.buf)-1]
		}
		return
	case tea.KeySpace:
		add = []rune{' '}
	case tea.KeyRunes:
		add = msg.Runes
	default:
		return
	}
	if len(string(m.buf))+len(string(add)) > core.MaxBodyLen {
		m.status = fmt.Sprintf("body is limited to %d bytes", core.MaxBodyLen)
		return
	}
	m.buf = append(m.buf, add...)
}

func (m *Model) copySelected() {
	if !m.hasSel {
		return
	}
	n, ok := m.board.Store().Note(m.selected)
	if !ok {
		m.hasSel = false
		return
	}
	if err := m.yank(n.Title + "\n" + n.Body); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.status = "clipboard: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("copied note %d", n.ID)
}

func (m *Model) quit() tea.Cmd {
	if m.focus == fieldBody {
		m.apply(board.Input{Cards: []board.CardInput{m.bodyCommit()}})
	}
	return tea.Quit
}

// card starts a CardInput that keeps the note where it is.
func (m *Model) card(id core.ID) board.CardInput {
	n, _ := m.board.Store().Note(id)
	return board.CardInput{ID: id, Position: n.Position}
}

func (m *Model) bodyCommit() board.CardInput {
	card := m.card(m.focusID)
	body := string(m.buf)
	card.Body = &body
	return card
}

func (m *Model) apply(in board.Input) {
	if err := m.board.Apply(in); err != nil {
		if errors.Is(err, core.ErrCapacityExceeded) {
			m.status = fmt.Sprintf("board is full (%d notes)", core.MaxNotes)
		} else {
			m.status = err.Error()
		}
	}
	m.syncFocus()
}

// syncFocus drops focus from notes that left the edited state and moves it
// to a freshly created note.
func (m *Model) syncFocus() {
	store := m.board.Store()
	switch m.focus {
	case fieldTitle:
		if id, ok := store.Pending(); !ok || id != m.focusID {
			m.focus, m.buf = fieldNone, nil
		}
	case fieldBody:
		if n, ok := store.Note(m.focusID); !ok || !n.IsEditing() {
			m.focus, m.buf = fieldNone, nil
		}
	}
	if m.drag.active {
		if n, ok := store.Note(m.drag.id); !ok || n.Pinned {
			m.drag = dragState{}
		}
	}
	if m.focus != fieldNone {
		return
	}
	if id, ok := store.Pending(); ok {
		n, _ := store.Note(id)
		m.focus, m.focusID, m.buf = fieldTitle, id, []rune(n.Title)
		m.selected, m.hasSel = id, true
	}
}
