package lungbird

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lungbird/internal/config"
	"github.com/vovakirdan/lungbird/internal/core"
	"github.com/vovakirdan/lungbird/internal/registry"
)

func newTestGame(t *testing.T, cfg config.Config, mode string) *Game {
	t.Helper()
	g := NewWithConfig(cfg, mode)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

func stepN(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(core.NewInputFrame())
	}
}

// runUntilOver steps with no input until the run ends or limit frames pass.
func runUntilOver(t *testing.T, g *Game, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if g.Step(core.NewInputFrame()).State.GameOver {
			return
		}
	}
	t.Fatalf("run did not end within %d frames", limit)
}

func TestCollides(t *testing.T) {
	// Body centered at 460 with top 380: x in [415, 505], y in [380, 420].
	body := bodyBox(460, 380, 90, 40)
	const width, gap = 100.0, 220.0

	tests := []struct {
		name string
		obs  Obstacle
		want bool
	}{
		{"left of body", Obstacle{X: 200, GapTop: 500}, false},
		{"right edge touches body left", Obstacle{X: 315, GapTop: 0}, false},
		{"left edge touches body right", Obstacle{X: 505, GapTop: 0}, false},
		{"overlaps lower part", Obstacle{X: 504, GapTop: 0}, true},
		{"body top on gap top", Obstacle{X: 400, GapTop: 380}, false},
		{"body top above gap top", Obstacle{X: 400, GapTop: 381}, true},
		{"body bottom on gap bottom", Obstacle{X: 400, GapTop: 200}, false},
		{"body bottom below gap bottom", Obstacle{X: 400, GapTop: 199}, true},
		{"well inside gap", Obstacle{X: 400, GapTop: 300}, false},
		{"fully covered by upper part", Obstacle{X: 430, GapTop: 600}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(body, tt.obs, width, gap); got != tt.want {
				t.Errorf("Collides(%+v) = %v, want %v", tt.obs, got, tt.want)
			}
		})
	}
}

func TestOutOfBounds(t *testing.T) {
	if outOfBounds(bodyBox(460, 0, 90, 40), 800) {
		t.Error("body touching the top is in bounds")
	}
	if outOfBounds(bodyBox(460, 760, 90, 40), 800) {
		t.Error("body touching the bottom is in bounds")
	}
	if !outOfBounds(bodyBox(460, -0.5, 90, 40), 800) {
		t.Error("body above the top should be out of bounds")
	}
	if !outOfBounds(bodyBox(460, 760.5, 90, 40), 800) {
		t.Error("body below the bottom should be out of bounds")
	}
}

func TestMarkPassedIsIdempotent(t *testing.T) {
	f := newObstacleField(100, 220, 5, 920, 800)
	f.items = []Obstacle{
		{X: 360},               // trailing edge exactly at center
		{X: 361},               // one unit short
		{X: 100, Passed: true}, // already counted
	}

	if got := f.markPassed(460); got != 1 {
		t.Fatalf("first pass = %d, want 1", got)
	}
	if got := f.markPassed(460); got != 0 {
		t.Fatalf("second pass = %d, want 0", got)
	}

	f.items[1].X = 360
	if got := f.markPassed(460); got != 1 {
		t.Fatalf("after move = %d, want 1", got)
	}
	for i, o := range f.items {
		if !o.Passed {
			t.Errorf("obstacle %d not marked passed", i)
		}
	}
}

func TestFieldsDropOffscreenEntries(t *testing.T) {
	obs := newObstacleField(100, 220, 5, 920, 800)
	obs.items = []Obstacle{{X: -90}, {X: 0}, {X: 500}}
	deco := newDecorationField(150, 80, 4, 920, 800)
	deco.items = []Decoration{{X: -140}, {X: 300}}

	for i := 0; i < 3; i++ {
		obs.advance()
		deco.advance()
	}

	// -90 -> -105 (gone), 0 -> -15, 500 -> 485
	if len(obs.items) != 2 || obs.items[0].X != -15 || obs.items[1].X != 485 {
		t.Errorf("obstacles = %+v", obs.items)
	}
	// -140 -> -152 (gone), 300 -> 288
	if len(deco.items) != 1 || deco.items[0].X != 288 {
		t.Errorf("decorations = %+v", deco.items)
	}

	for i := 0; i < 200; i++ {
		obs.advance()
		deco.advance()
	}
	if len(obs.items) != 0 || len(deco.items) != 0 {
		t.Errorf("sets not drained: %d obstacles, %d decorations", len(obs.items), len(deco.items))
	}
}

func TestRandomOffset(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := randomOffset(rng, 0.5); got != 0 {
		t.Errorf("randomOffset(0.5) = %v, want 0", got)
	}
	for i := 0; i < 1000; i++ {
		v := randomOffset(rng, 580)
		if v < 0 || v >= 580 || v != float64(int(v)) {
			t.Fatalf("randomOffset(580) = %v, want integer in [0, 580)", v)
		}
	}
}

func TestStateGuards(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	initial := g.body

	g.ApplyImpulse()
	if g.body != initial || g.jumping {
		t.Error("ApplyImpulse in Idle changed the body")
	}
	g.Restart()
	if g.phase != PhaseIdle {
		t.Errorf("Restart in Idle moved to %s", g.phase)
	}

	g.Start()
	if g.phase != PhaseRunning {
		t.Fatalf("Start in Idle: phase = %s", g.phase)
	}
	if g.body.Velocity != -8 {
		t.Errorf("free first jump velocity = %v, want -8", g.body.Velocity)
	}

	g.body.Velocity = 3
	g.Start()
	if g.body.Velocity != 3 {
		t.Error("Start in Running reapplied the impulse")
	}
	g.Restart()
	if g.phase != PhaseRunning {
		t.Errorf("Restart in Running moved to %s", g.phase)
	}

	g.onCollision()
	if g.phase != PhaseOver {
		t.Fatalf("onCollision: phase = %s", g.phase)
	}
	before := g.body
	g.ApplyImpulse()
	g.Start()
	g.Gesture()
	if g.body != before || g.phase != PhaseOver {
		t.Error("input in Over other than restart was applied")
	}
}

func TestGestureMapsToPhase(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)

	res := g.Step(core.FrameOf(core.ActionJump))
	if res.State.Phase != string(PhaseRunning) {
		t.Fatalf("gesture in Idle: phase = %s", res.State.Phase)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventStarted {
		t.Errorf("events = %+v, want one started", res.Events)
	}

	res = g.Step(core.FrameOf(core.ActionJump))
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventImpulse {
		t.Errorf("events = %+v, want one impulse", res.Events)
	}
	if !g.jumping {
		t.Error("gesture in Running did not apply an impulse")
	}
}

func TestRestartResetsFully(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	g.Start()
	runUntilOver(t, g, 2000)

	if len(g.decorations.items) == 0 {
		t.Fatal("expected decorations before restart")
	}

	g.Step(core.FrameOf(core.ActionRestart))

	if g.phase != PhaseIdle {
		t.Errorf("phase = %s, want idle", g.phase)
	}
	if g.score != 0 {
		t.Errorf("score = %d, want 0", g.score)
	}
	if len(g.obstacles.items) != 0 {
		t.Errorf("obstacles = %d, want 0", len(g.obstacles.items))
	}
	if g.body.Y != 380 || g.body.Velocity != 0 {
		t.Errorf("body = %+v, want Y=380 Velocity=0", g.body)
	}
	if g.motionTimer != nil || g.spawnTimer != nil || g.jumpTimer != nil {
		t.Error("running-phase timers still referenced after restart")
	}
	// Only the decoration timers stay armed.
	if n := g.sched.Pending(); n != 2 {
		t.Errorf("pending timers = %d, want 2", n)
	}
}

func TestRestartClearsDecorations(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	g.Start()
	runUntilOver(t, g, 2000)
	g.Restart()

	if len(g.decorations.items) != 0 {
		t.Errorf("decorations = %d, want 0", len(g.decorations.items))
	}
	// Decorations keep spawning in Idle.
	stepN(g, 30)
	if len(g.decorations.items) == 0 {
		t.Error("decorations did not resume spawning in Idle")
	}
}

func TestScenarioObstaclePassesThroughGap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Physics.Gravity = 0
	cfg.Physics.StartImpulse = 0
	cfg.Obstacles.SpawnPeriod = time.Hour

	g := newTestGame(t, cfg, ModeClassic)
	g.Start()
	g.obstacles.items = append(g.obstacles.items, Obstacle{X: 800, GapTop: 300})

	stepN(g, 140)

	if g.tick != 140 {
		t.Fatalf("tick = %d, want 140", g.tick)
	}
	if len(g.obstacles.items) != 1 || g.obstacles.items[0].X != 100 {
		t.Fatalf("obstacles = %+v, want one at x=100", g.obstacles.items)
	}
	if g.body.Y != 380 {
		t.Errorf("body Y = %v, want 380", g.body.Y)
	}
	if g.phase != PhaseRunning {
		t.Fatalf("phase = %s, want running", g.phase)
	}
	if g.score != 1 {
		t.Errorf("score = %d, want 1", g.score)
	}

	stepN(g, 60)
	if g.phase != PhaseRunning {
		t.Errorf("phase = %s after the obstacle left, want running", g.phase)
	}
	if len(g.obstacles.items) != 0 {
		t.Errorf("obstacle not removed: %+v", g.obstacles.items)
	}
	if g.score != 1 {
		t.Errorf("score = %d, want 1", g.score)
	}
}

func TestDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 900)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%22 == 0 {
			inputs[i].Set(core.ActionJump)
		}
		if i == 600 {
			inputs[i].Set(core.ActionRestart)
		}
	}

	run := func() (Snapshot, []core.Event) {
		g := newTestGame(t, config.DefaultConfig(), ModeClassic)
		var events []core.Event
		for _, in := range inputs {
			events = append(events, g.Step(in).Events...)
		}
		return g.Snapshot(), events
	}

	s1, e1 := run()
	s2, e2 := run()

	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if !reflect.DeepEqual(e1, e2) {
		t.Errorf("event streams differ: %d vs %d events", len(e1), len(e2))
	}
}

func TestCollisionEventFiresOnce(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	var collisions, fromResults int
	g.Subscribe(func(ev core.Event) {
		if ev.Kind == core.EventCollision {
			collisions++
		}
	})

	g.Start()
	for i := 0; i < 2000; i++ {
		for _, ev := range g.Step(core.NewInputFrame()).Events {
			if ev.Kind == core.EventCollision {
				fromResults++
			}
		}
	}

	if g.phase != PhaseOver {
		t.Fatalf("phase = %s, want over", g.phase)
	}
	if collisions != 1 || fromResults != 1 {
		t.Errorf("collision events: subscriber %d, results %d, want 1 each", collisions, fromResults)
	}
}

func TestScoreEventsMatchScore(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Physics.Gravity = 0
	cfg.Physics.StartImpulse = 0
	cfg.Obstacles.SpawnPeriod = time.Hour

	g := newTestGame(t, cfg, ModeClassic)
	var passed []core.Event
	g.Subscribe(func(ev core.Event) {
		if ev.Kind == core.EventObstaclePassed {
			passed = append(passed, ev)
		}
	})
	g.Start()
	g.obstacles.items = append(g.obstacles.items,
		Obstacle{X: 600, GapTop: 300},
		Obstacle{X: 900, GapTop: 290},
	)
	stepN(g, 200)

	if g.score != 2 || len(passed) != 2 {
		t.Fatalf("score = %d, passed events = %d, want 2 each", g.score, len(passed))
	}
	if passed[0].Score != 1 || passed[1].Score != 2 {
		t.Errorf("event scores = %d, %d, want 1, 2", passed[0].Score, passed[1].Score)
	}
}

func TestJumpFlagClears(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	g.Start()
	g.Step(core.FrameOf(core.ActionJump))
	if !g.jumping {
		t.Fatal("jumping flag not set")
	}

	stepN(g, 5)
	if !g.jumping {
		t.Error("jumping flag cleared too early")
	}
	stepN(g, 10)
	if g.jumping {
		t.Error("jumping flag still set after 250ms")
	}
}

func TestPauseFreezesTime(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	g.Start()
	stepN(g, 10)

	g.Step(core.FrameOf(core.ActionPause))
	tick, body := g.tick, g.body

	stepN(g, 30)
	g.Step(core.FrameOf(core.ActionJump))
	if g.tick != tick || g.body != body {
		t.Error("state changed while paused")
	}

	g.Step(core.FrameOf(core.ActionPause))
	if g.paused || g.tick != tick+1 {
		t.Errorf("resume: paused=%v tick=%d, want false %d", g.paused, g.tick, tick+1)
	}
}

func TestPauseIgnoredOutsideRunning(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	g.Step(core.FrameOf(core.ActionPause))
	if g.paused {
		t.Error("pause toggled in Idle")
	}
}

func TestBoundedModeEndsOffscreen(t *testing.T) {
	bounded := newTestGame(t, config.DefaultConfig(), ModeBounded)
	classic := newTestGame(t, config.DefaultConfig(), ModeClassic)
	bounded.Start()
	classic.Start()

	runUntilOver(t, bounded, 150)
	if len(bounded.obstacles.items) != 0 {
		t.Errorf("obstacles = %d, want none before the first spawn", len(bounded.obstacles.items))
	}
	if !outOfBounds(bounded.bodyBox(), 800) {
		t.Error("bounded run ended while in bounds")
	}

	stepN(classic, int(bounded.frame))
	if classic.phase != PhaseRunning {
		t.Errorf("classic mode ended off screen: phase = %s", classic.phase)
	}
}

func TestIdleDecorationsStayBounded(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	stepN(g, 600)

	// Lifetime is (920+150)/4 ticks at 9 spawns per second.
	if n := len(g.decorations.items); n == 0 || n > 45 {
		t.Errorf("decorations = %d, want 1..45", n)
	}
	for _, d := range g.decorations.items {
		if d.X+150 <= 0 {
			t.Errorf("offscreen decoration kept: %+v", d)
		}
		if d.Y < 0 || d.Y >= 720 {
			t.Errorf("decoration Y = %v out of [0, 720)", d.Y)
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	g.Start()
	g.obstacles.items = append(g.obstacles.items, Obstacle{X: 700, GapTop: 100})

	snap := g.Snapshot()
	snap.Obstacles[0].X = 0

	if g.obstacles.items[0].X != 700 {
		t.Error("mutating the snapshot changed the game")
	}
	if snap.Body.X != 460 || snap.Phase != PhaseRunning {
		t.Errorf("snapshot = %+v", snap.Body)
	}
	if snap.Body.Tilt != -20 {
		t.Errorf("tilt = %v, want -20 after the first jump", snap.Body.Tilt)
	}
}

func TestRenderShowsPhase(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "TAP TO PLAY") {
		t.Error("idle screen missing prompt")
	}

	g.Start()
	runUntilOver(t, g, 2000)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "try again") {
		t.Error("game over screen missing message")
	}
	if g.bodySprite() != BodyCrash {
		t.Errorf("sprite = %q, want %q", g.bodySprite(), BodyCrash)
	}
}

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{ModeClassic, ModeBounded} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
		info, ok := registry.Lookup(id)
		if !ok || info.Title != g.Title() || info.Summary == "" {
			t.Errorf("Lookup(%q) = %+v, want title %q and a summary", id, info, g.Title())
		}
	}
}

func TestRestartAndGestureInOneFrame(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	g.Start()
	runUntilOver(t, g, 2000)

	res := g.Step(core.FrameOf(core.ActionRestart, core.ActionJump))
	if res.State.Phase != string(PhaseIdle) {
		t.Fatalf("phase = %s, want idle after restart with a gesture", res.State.Phase)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventRestarted {
		t.Errorf("events = %+v, want only restarted", res.Events)
	}

	res = g.Step(core.FrameOf(core.ActionJump))
	if res.State.Phase != string(PhaseRunning) {
		t.Errorf("next gesture: phase = %s, want running", res.State.Phase)
	}
}

func TestBodyTilt(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
		want     float64
	}{
		{"level", 0, 0},
		{"rising", -4, -10},
		{"falling", 2, 5},
		{"first jump clamps up", -8, -20},
		{"exact clamp down", 8, 20},
		{"fast fall clamps down", 40, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Body{Velocity: tt.velocity}
			if got := b.Tilt(2.5, 20); got != tt.want {
				t.Errorf("Tilt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBodySprite(t *testing.T) {
	g := newTestGame(t, config.DefaultConfig(), ModeClassic)
	g.Start()

	tests := []struct {
		name     string
		jumping  bool
		velocity float64
		want     rune
	}{
		{"flap while the jump flag is up", true, -8, BodyFlap},
		{"glide when level", false, 0, BodyGlide},
		{"glide while rising", false, -6, BodyGlide},
		{"dive at full tilt", false, 12, BodyDive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.jumping = tt.jumping
			g.body.Velocity = tt.velocity
			if got := g.bodySprite(); got != tt.want {
				t.Errorf("bodySprite() = %q, want %q", got, tt.want)
			}
		})
	}
}
