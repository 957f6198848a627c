package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/darkboard/darkboard/pkg/core"
)

// Card geometry in terminal cells.
const (
	CardWidth  = 28
	CardHeight = 6

	buttonsWidth = 6 // "[p][x]"
)

type style int

const (
	styleNone style = iota
	styleCard
	styleFresh
	stylePinned
	styleEditing
	styleButton
)

var (
	cardStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0"))
	freshStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00")).Bold(true)
	pinnedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AFFF"))
	editingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87FF87"))
	buttonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))

	styles = map[style]lipgloss.Style{
		styleCard:    cardStyle,
		styleFresh:   freshStyle,
		stylePinned:  pinnedStyle,
		styleEditing: editingStyle,
		styleButton:  buttonStyle,
	}
)

type cell struct {
	r  rune
	st style
}

// canvas is a fixed grid of styled cells. Writes outside the grid are dropped.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	cells := make([][]cell, h)
	for y := range cells {
		cells[y] = make([]cell, w)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' '}
		}
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(x, y int, r rune, st style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, st: st}
}

// text writes s from (x, y) and returns the number of cells used.
func (c *canvas) text(x, y int, s string, st style) int {
	n := 0
	for _, r := range s {
		c.set(x+n, y, r, st)
		n++
	}
	return n
}

// String renders the grid, styling runs of equally styled cells.
func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].st == row[start].st {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			if st, ok := styles[row[start].st]; ok {
				b.WriteString(st.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			start = x
		}
	}
	return b.String()
}

// cardView is what drawCard needs to know about one note.
type cardView struct {
	note  core.Note
	title string
	body  string
	// tail shows the end of a body too long for the card instead of its start.
	tail bool
}

// origin maps a note position to the cell of its top-left corner.
func origin(p core.Position) (int, int) {
	return int(math.Round(float64(p.X))), int(math.Round(float64(p.Y)))
}

// drawCard paints one card and registers its regions in hits.
//
//	┌Groceries────────────[p][x]┐
//	│milk eggs                  │
//	│                           │
//	└───────────────────────────┘
func drawCard(c *canvas, hits *HitMap, v cardView) {
	n := v.note
	x, y := origin(n.Position)

	st := styleCard
	switch {
	case n.IsNew():
		st = styleFresh
	case n.IsEditing():
		st = styleEditing
	case n.Pinned:
		st = stylePinned
	}

	titleWidth := CardWidth - 2 - buttonsWidth
	c.set(x, y, '┌', st)
	used := c.text(x+1, y, clip(v.title, titleWidth), st)
	for i := used; i < titleWidth; i++ {
		c.set(x+1+i, y, '─', st)
	}
	pin := "[p]"
	if n.Pinned {
		pin = "[P]"
	}
	c.text(x+CardWidth-1-buttonsWidth, y, pin+"[x]", styleButton)
	c.set(x+CardWidth-1, y, '┐', st)

	inner := CardWidth - 2
	lines := wrap(v.body, inner, CardHeight-2, v.tail)
	for row := 1; row < CardHeight-1; row++ {
		c.set(x, y+row, '│', st)
		for i := 0; i < inner; i++ {
			c.set(x+1+i, y+row, ' ', st)
		}
		if row-1 < len(lines) {
			c.text(x+1, y+row, lines[row-1], st)
		}
		c.set(x+CardWidth-1, y+row, '│', st)
	}

	c.set(x, y+CardHeight-1, '└', st)
	for i := 1; i < CardWidth-1; i++ {
		c.set(x+i, y+CardHeight-1, '─', st)
	}
	c.set(x+CardWidth-1, y+CardHeight-1, '┘', st)

	hits.Add(n.ID, PartFrame, Rect{X: x, Y: y, W: CardWidth, H: CardHeight})
	hits.Add(n.ID, PartTitle, Rect{X: x, Y: y, W: CardWidth - 1 - buttonsWidth, H: 1})
	hits.Add(n.ID, PartPin, Rect{X: x + CardWidth - 1 - buttonsWidth, Y: y, W: 3, H: 1})
	hits.Add(n.ID, PartClose, Rect{X: x + CardWidth - 4, Y: y, W: 3, H: 1})
	hits.Add(n.ID, PartBody, Rect{X: x + 1, Y: y + 1, W: inner, H: CardHeight - 2})
}

// clip shortens s to width cells, marking the cut with an ellipsis.
func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// wrap breaks s into at most rows lines of width cells, splitting on spaces
// and hard-breaking words longer than a line.
func wrap(s string, width, rows int, tail bool) []string {
	var out []string
	var line []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(line) > 0 {
				out = append(out, string(line))
				line = line[:0]
			}
			out = append(out, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(w) == 0:
		case len(line) == 0:
			line = append(line, w...)
		case len(line)+1+len(w) <= width:
			line = append(append(line, ' '), w...)
		default:
			out = append(out, string(line))
			line = append(line[:0], w...)
		}
	}
	if len(line) > 0 {
		out = append(out, string(line))
	}

	if len(out) <= rows {
		return out
	}
	if tail {
		return out[len(out)-rows:]
	}
	out = out[:rows]
	out[rows-1] = clip(out[rows-1]+"…", width)
	return out
}
