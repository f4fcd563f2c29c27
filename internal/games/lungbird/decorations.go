package lungbird

import "math/rand"

// Decoration is a purely cosmetic background element.
type Decoration struct {
	X float64 `msgpack:"x" json:"x"`
	Y float64 `msgpack:"y" json:"y"`
}

// decorationField owns the live decorations. It runs in every phase.
type decorationField struct {
	items  []Decoration
	width  float64
	height float64
	speed  float64
	worldW float64
	worldH float64
}

func newDecorationField(width, height, speed, worldW, worldH float64) decorationField {
	return decorationField{
		items:  make([]Decoration, 0, 32),
		width:  width,
		height: height,
		speed:  speed,
		worldW: worldW,
		worldH: worldH,
	}
}

func (f *decorationField) spawn(rng *rand.Rand) {
	f.items = append(f.items, Decoration{
		X: f.worldW,
		Y: randomOffset(rng, f.worldH-f.height),
	})
}

func (f *decorationField) advance() {
	kept := f.items[:0]
	for _, d := range f.items {
		d.X -= f.speed
		if d.X+f.width > 0 {
			kept = append(kept, d)
		}
	}
	f.items = kept
}

func (f *decorationField) clear() {
	f.items = f.items[:0]
}

func (f *decorationField) snapshot() []Decoration {
	out := make([]Decoration, len(f.items))
	copy(out, f.items)
	return out
}
