// Package core provides the types shared by the simulation and its hosts.
// It has no external dependencies (in particular no Bubble Tea) so the game
// logic stays pure and testable.
package core

// Box is an axis-aligned rectangle in world units. Edges are half-open:
// a box spans [Left, Right) horizontally and [Top, Bottom) vertically.
type Box struct {
	Left, Top     float64
	Right, Bottom float64
}

// NewBox creates a box from its top-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Bottom - b.Top
}

// OverlapsX reports whether the horizontal extents overlap.
// Touching edges do not overlap.
func (b Box) OverlapsX(other Box) bool {
	return b.Right > other.Left && b.Left < other.Right
}

// Overlaps reports whether two boxes share any interior area.
func (b Box) Overlaps(other Box) bool {
	return b.OverlapsX(other) && b.Bottom > other.Top && b.Top < other.Bottom
}

// Rect is an integer rectangle in screen cells, used for drawing.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Clamp restricts an int value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
