package lungbird

import (
	"math/rand"

	"github.com/vovakirdan/lungbird/internal/core"
)

// Obstacle is a pair of barriers with a vertical gap between them.
type Obstacle struct {
	X      float64 `msgpack:"x" json:"x"`             // Left edge
	GapTop float64 `msgpack:"gap_top" json:"gap_top"` // Bottom of the upper barrier
	Passed bool    `msgpack:"passed" json:"passed"`   // Already counted toward the score
}

// obstacleField owns the live obstacles, ordered by spawn time.
type obstacleField struct {
	items  []Obstacle
	width  float64
	gap    float64
	speed  float64
	worldW float64
	worldH float64
}

func newObstacleField(width, gap, speed, worldW, worldH float64) obstacleField {
	return obstacleField{
		items:  make([]Obstacle, 0, 8),
		width:  width,
		gap:    gap,
		speed:  speed,
		worldW: worldW,
		worldH: worldH,
	}
}

// spawn appends an obstacle at the right edge with a gap offset drawn
// uniformly from [0, worldH-gap).
func (f *obstacleField) spawn(rng *rand.Rand) {
	f.items = append(f.items, Obstacle{
		X:      f.worldW,
		GapTop: randomOffset(rng, f.worldH-f.gap),
	})
}

// advance moves every obstacle left by one tick and drops the ones whose
// trailing edge left the visible area.
func (f *obstacleField) advance() {
	kept := f.items[:0]
	for _, o := range f.items {
		o.X -= f.speed
		if o.X+f.width > 0 {
			kept = append(kept, o)
		}
	}
	f.items = kept
}

// firstCollision returns the index of the first obstacle the body hits.
func (f *obstacleField) firstCollision(body core.Box) (int, bool) {
	for i, o := range f.items {
		if Collides(body, o, f.width, f.gap) {
			return i, true
		}
	}
	return -1, false
}

func (f *obstacleField) clear() {
	f.items = f.items[:0]
}

func (f *obstacleField) snapshot() []Obstacle {
	out := make([]Obstacle, len(f.items))
	copy(out, f.items)
	return out
}

// randomOffset draws an integer offset in [0, span). A span below one unit
// leaves no room to randomize.
func randomOffset(rng *rand.Rand, span float64) float64 {
	if span < 1 {
		return 0
	}
	return float64(rng.Intn(int(span)))
}
