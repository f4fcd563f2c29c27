package lungbird

import "github.com/vovakirdan/lungbird/internal/core"

// bodyBox returns the body's hitbox: a width x height box whose horizontal
// center is centerX and whose top edge is y.
func bodyBox(centerX, y, width, height float64) core.Box {
	return core.NewBox(centerX-width/2, y, width, height)
}

// Collides reports whether a body box overlaps either part of an obstacle.
// The upper part spans [0, GapTop) and the lower part spans
// [GapTop+gap, world bottom], both across [X, X+width).
func Collides(body core.Box, o Obstacle, width, gap float64) bool {
	if !body.OverlapsX(core.Box{Left: o.X, Right: o.X + width}) {
		return false
	}
	return body.Top < o.GapTop || body.Bottom > o.GapTop+gap
}

// outOfBounds reports whether the body left the visible area vertically.
// Only the bounded mode treats this as a collision.
func outOfBounds(body core.Box, worldHeight float64) bool {
	return body.Top < 0 || body.Bottom > worldHeight
}
