package tui

import (
	"time"

	"github.com/darkboard/darkboard/pkg/core"
)

// Part names the area of a card a click landed on.
type Part string

const (
	PartFrame Part = "frame"
	PartTitle Part = "title"
	PartPin   Part = "pin"
	PartClose Part = "close"
	PartBody  Part = "body"
)

// Rect is a cell rectangle. Right and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a clickable part of a drawn card.
type Region struct {
	Note core.ID
	Part Part
	Rect Rect
}

// HitMap records the regions of the last drawn frame.
// Regions added later sit on top of earlier ones.
type HitMap struct {
	regions []Region
}

// Add registers a region on top of the existing ones.
func (h *HitMap) Add(id core.ID, part Part, r Rect) {
	h.regions = append(h.regions, Region{Note: id, Part: part, Rect: r})
}

// Test returns the topmost region containing (x, y), or nil on the background.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear drops all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// DoubleClickWindow is the longest gap between two presses of a double-click.
const DoubleClickWindow = 400 * time.Millisecond

// clickTracker turns single presses into double-clicks.
type clickTracker struct {
	now   func() time.Time
	last  time.Time
	x, y  int
	armed bool
}

// press records a press at (x, y) and reports whether it completes a
// double-click. The tracker disarms after a double so a third press starts over.
func (c *clickTracker) press(x, y int) bool {
	t := c.now()
	double := c.armed && x == c.x && y == c.y && t.Sub(c.last) <= DoubleClickWindow
	if double {
		c.armed = false
		return true
	}
	c.last, c.x, c.y, c.armed = t, x, y, true
	return false
}
