// Package lungbird implements a side-scrolling reflex game: a body falls
// under gravity, the player applies upward impulses, and the body must pass
// through a stream of gapped obstacles without touching them.
//
// All state changes happen on the caller's goroutine, driven by the timers
// of a virtual clock that Step advances by one frame at a time.
package lungbird

import (
	"math/rand"

	"github.com/vovakirdan/lungbird/internal/clock"
	"github.com/vovakirdan/lungbird/internal/config"
	"github.com/vovakirdan/lungbird/internal/core"
	"github.com/vovakirdan/lungbird/internal/registry"
)

// Registered modes.
const (
	ModeClassic = "lungbird"         // Only obstacles end a run
	ModeBounded = "lungbird-bounded" // Leaving the world vertically ends a run too
)

// decorationSeedSalt keeps the decoration stream independent of the
// obstacle stream for the same session seed.
const decorationSeedSalt = 0x5eed_dec0

// configPath and preset are set from CLI flags before games are created.
var (
	configPath string
	preset     config.Preset
)

// SetConfigPath sets the custom config path used by New games.
func SetConfigPath(path string) {
	configPath = path
}

// SetPreset sets the difficulty preset used by New games.
func SetPreset(p config.Preset) {
	preset = p
}

// Game is one session of the reflex game.
type Game struct {
	mode    string
	cfg     config.Config
	fixed   bool // cfg was supplied by the caller, Reset must not reload it
	runtime core.RuntimeConfig

	sched   *clock.Scheduler
	rng     *rand.Rand // Obstacle gap offsets
	decoRng *rand.Rand // Decoration offsets

	phase   Phase
	paused  bool
	body    Body
	jumping bool
	score   int
	tick    uint64 // Motion ticks since Reset
	frame   uint64 // Step calls since Reset

	obstacles   obstacleField
	decorations decorationField

	motionTimer *clock.Timer
	spawnTimer  *clock.Timer
	jumpTimer   *clock.Timer

	subscribers []func(core.Event)
	pending     []core.Event
}

// New creates a game for mode. The configuration is loaded on Reset from
// the path set with SetConfigPath, with the preset from SetPreset applied.
func New(mode string) *Game {
	return &Game{mode: mode}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.Config, mode string) *Game {
	return &Game{mode: mode, cfg: cfg, fixed: true}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeBounded {
		return "Lungbird (bounded)"
	}
	return "Lungbird"
}

// Config returns the configuration of the current session.
func (g *Game) Config() config.Config {
	return g.cfg
}

// Reset starts a new session in Idle. Any armed timer of a previous session
// is discarded with its scheduler.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.fixed {
		cfg, err := config.Load(configPath)
		if err != nil {
			cfg = config.DefaultConfig()
		}
		config.ApplyPreset(&cfg, preset)
		g.cfg = cfg
	}
	if g.mode == ModeBounded {
		g.cfg.Bounds.Enabled = true
	}
	g.runtime = runtime

	if g.sched != nil {
		g.sched.StopAll()
	}
	g.sched = clock.New()
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.decoRng = rand.New(rand.NewSource(runtime.Seed ^ decorationSeedSalt))

	w, h := g.cfg.World.Width, g.cfg.World.Height
	g.obstacles = newObstacleField(g.cfg.Obstacles.Width, g.cfg.Obstacles.Gap, g.cfg.Obstacles.Speed, w, h)
	g.decorations = newDecorationField(g.cfg.Decorations.Width, g.cfg.Decorations.Height, g.cfg.Decorations.Speed, w, h)

	g.phase = PhaseIdle
	g.paused = false
	g.jumping = false
	g.score = 0
	g.tick = 0
	g.frame = 0
	g.body = Body{Y: g.initialY()}
	g.motionTimer, g.spawnTimer, g.jumpTimer = nil, nil, nil
	g.pending = nil

	g.sched.Every(g.cfg.Timing.DecorationTickPeriod, g.decorations.advance)
	g.sched.Every(g.cfg.Decorations.SpawnPeriod, func() {
		g.decorations.spawn(g.decoRng)
	})
}

// Start begins a run with the free first jump. No-op unless Idle.
func (g *Game) Start() {
	if g.phase != PhaseIdle {
		return
	}
	g.phase = PhaseRunning
	g.body.Velocity = g.cfg.Physics.StartImpulse
	g.motionTimer = g.sched.Every(g.cfg.Timing.TickPeriod, g.motionTick)
	g.spawnTimer = g.sched.Every(g.cfg.Obstacles.SpawnPeriod, func() {
		g.obstacles.spawn(g.rng)
	})
	g.emit(core.EventStarted)
}

// ApplyImpulse sets the upward velocity and raises the jumping flag for a
// short while. No-op unless Running.
func (g *Game) ApplyImpulse() {
	if g.phase != PhaseRunning {
		return
	}
	g.body.Velocity = g.cfg.Physics.JumpImpulse
	g.jumping = true
	if g.jumpTimer != nil {
		g.jumpTimer.Stop()
	}
	g.jumpTimer = g.sched.After(g.cfg.Timing.JumpFlag, func() {
		g.jumping = false
	})
	g.emit(core.EventImpulse)
}

// Gesture maps the single play input to Start or ApplyImpulse depending on
// the phase. It is ignored in Over and while paused.
func (g *Game) Gesture() {
	if g.paused {
		return
	}
	switch g.phase {
	case PhaseIdle:
		g.Start()
	case PhaseRunning:
		g.ApplyImpulse()
	}
}

// Restart returns to Idle with empty obstacle and decoration sets, the body
// at its initial position and a zero score. No-op unless Over.
func (g *Game) Restart() {
	if g.phase != PhaseOver {
		return
	}
	g.stopRunTimers()
	g.obstacles.clear()
	g.decorations.clear()
	g.body = Body{Y: g.initialY()}
	g.score = 0
	g.phase = PhaseIdle
	g.emit(core.EventRestarted)
}

// TogglePause pauses or resumes a run. While paused no time passes.
func (g *Game) TogglePause() {
	if g.phase != PhaseRunning {
		return
	}
	g.paused = !g.paused
}

// onCollision ends the run. The collision event is emitted once per run.
func (g *Game) onCollision() {
	if g.phase != PhaseRunning {
		return
	}
	g.phase = PhaseOver
	g.stopRunTimers()
	g.jumping = false
	g.emit(core.EventCollision)
}

func (g *Game) stopRunTimers() {
	for _, t := range []*clock.Timer{g.motionTimer, g.spawnTimer, g.jumpTimer} {
		if t != nil {
			t.Stop()
		}
	}
	g.motionTimer, g.spawnTimer, g.jumpTimer = nil, nil, nil
}

// motionTick runs one fixed step of the Running phase: integrate, move and
// filter, detect collisions, then score.
func (g *Game) motionTick() {
	if g.phase != PhaseRunning {
		return
	}
	g.tick++
	g.body.Integrate(g.cfg.Physics.Gravity)
	g.obstacles.advance()

	box := g.bodyBox()
	if _, hit := g.obstacles.firstCollision(box); hit {
		g.onCollision()
		return
	}
	if g.cfg.Bounds.Enabled && outOfBounds(box, g.cfg.World.Height) {
		g.onCollision()
		return
	}

	for n := g.obstacles.markPassed(g.centerX()); n > 0; n-- {
		g.score++
		g.emit(core.EventObstaclePassed)
	}
}

// Step applies the frame's input and advances virtual time by one frame.
// Actions apply in the order restart, pause, gesture, and a frame makes at
// most one phase transition: a gesture arriving with an accepted restart is
// dropped, so the game rests in Idle for at least one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frame++
	phase := g.phase

	if in.Has(core.ActionRestart) {
		g.Restart()
	}
	if in.Has(core.ActionPause) {
		g.TogglePause()
	}
	if in.Has(core.ActionJump) && g.phase == phase {
		g.Gesture()
	}

	if !g.paused {
		g.sched.Advance(g.runtime.FrameDuration())
	}

	return core.StepResult{State: g.State(), Events: g.drainEvents()}
}

// State returns the summary a host needs after each frame.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:    string(g.phase),
		Score:    g.score,
		GameOver: g.phase == PhaseOver,
		Paused:   g.paused,
	}
}

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Frame returns the number of Step calls since Reset.
func (g *Game) Frame() uint64 {
	return g.frame
}

func (g *Game) centerX() float64 {
	return g.cfg.World.Width / 2
}

func (g *Game) initialY() float64 {
	return g.cfg.World.Height/2 - g.cfg.Body.Height/2
}

func (g *Game) bodyBox() core.Box {
	return bodyBox(g.centerX(), g.body.Y, g.cfg.Body.Width, g.cfg.Body.Height)
}

func init() {
	registry.Register(registry.ModeInfo{
		ID:      ModeClassic,
		Title:   "Lungbird",
		Summary: "Only obstacles end a run",
	}, func() registry.Game {
		return New(ModeClassic)
	})
	registry.Register(registry.ModeInfo{
		ID:      ModeBounded,
		Title:   "Lungbird (bounded)",
		Summary: "Leaving the sky ends a run too",
	}, func() registry.Game {
		return New(ModeBounded)
	})
}
