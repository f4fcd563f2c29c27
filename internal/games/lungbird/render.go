package lungbird

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lungbird/internal/core"
)

// Visual characters for rendering
const (
	ObstacleChar   = '█'
	ObstacleCapTop = '▀'
	ObstacleCapBot = '▄'
	DecorationChar = '░'
	BodyChar       = '●'
	BodyGlide      = '▶'
	BodyFlap       = '▲'
	BodyDive       = '▼'
	BodyCrash      = '✕'
)

// viewport maps world units onto a cell grid.
type viewport struct {
	sx, sy float64
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	return viewport{
		sx: float64(dst.Width()) / worldW,
		sy: float64(dst.Height()) / worldH,
	}
}

// rect converts a world box to cells, keeping at least one cell per axis.
func (v viewport) rect(left, top, right, bottom float64) core.Rect {
	x0 := int(math.Floor(left * v.sx))
	y0 := int(math.Floor(top * v.sy))
	x1 := int(math.Ceil(right * v.sx))
	y1 := int(math.Ceil(bottom * v.sy))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Render draws the world scaled to dst, then the HUD and phase overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	vp := newViewport(dst, g.cfg.World.Width, g.cfg.World.Height)

	for _, d := range g.decorations.items {
		r := vp.rect(d.X, d.Y, d.X+g.decorations.width, d.Y+g.decorations.height)
		dst.FillRect(r, DecorationChar, core.ColorGray)
	}

	for _, o := range g.obstacles.items {
		g.drawObstacle(dst, vp, o)
	}

	g.drawBody(dst, vp)

	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d ", g.score), core.ColorBrightWhite)

	switch {
	case g.phase == PhaseIdle:
		drawMessage(dst, "TAP TO PLAY", "Space or click to flap", core.ColorBrightCyan)
	case g.phase == PhaseOver:
		drawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to try again", g.score), core.ColorBrightRed)
	case g.paused:
		drawMessage(dst, "PAUSED", "Press P to resume", core.ColorBrightYellow)
	}
}

func (g *Game) drawObstacle(dst *core.Screen, vp viewport, o Obstacle) {
	right := o.X + g.obstacles.width
	lowerTop := o.GapTop + g.obstacles.gap

	if o.GapTop > 0 {
		upper := vp.rect(o.X, 0, right, o.GapTop)
		dst.FillRect(upper, ObstacleChar, core.ColorGreen)
		for x := upper.X; x < upper.Right(); x++ {
			dst.SetColored(x, upper.Bottom()-1, ObstacleCapTop, core.ColorBrightGreen)
		}
	}
	if lowerTop < g.cfg.World.Height {
		lower := vp.rect(o.X, lowerTop, right, g.cfg.World.Height)
		dst.FillRect(lower, ObstacleChar, core.ColorGreen)
		for x := lower.X; x < lower.Right(); x++ {
			dst.SetColored(x, lower.Y, ObstacleCapBot, core.ColorBrightGreen)
		}
	}
}

func (g *Game) drawBody(dst *core.Screen, vp viewport) {
	b := g.bodyBox()
	r := vp.rect(b.Left, b.Top, b.Right, b.Bottom)

	color := core.ColorBrightYellow
	if g.phase == PhaseOver {
		color = core.ColorBrightRed
	}
	dst.FillRect(r, BodyChar, color)
	dst.SetColored(r.Right()-1, r.Y, g.bodySprite(), color)
}

// bodySprite picks the head glyph from the jumping flag and tilt.
func (g *Game) bodySprite() rune {
	tilt := g.body.Tilt(g.cfg.Physics.TiltFactor, g.cfg.Physics.MaxTilt)
	switch {
	case g.phase == PhaseOver:
		return BodyCrash
	case g.jumping:
		return BodyFlap
	case tilt >= g.cfg.Physics.MaxTilt:
		return BodyDive
	default:
		return BodyGlide
	}
}

// drawMessage draws a framed two-line message in the middle of the screen.
func drawMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, c)
	dst.DrawTextCentered(r.Y+1, title, c)
	dst.DrawTextCentered(r.Y+3, subtitle, core.ColorWhite)
}
