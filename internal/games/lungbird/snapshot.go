package lungbird

// Phase is the state of the game state machine.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhaseOver    Phase = "over"
)

// BodyState is the read-only view of the body.
type BodyState struct {
	X        float64 `msgpack:"x" json:"x"` // Horizontal center, constant
	Y        float64 `msgpack:"y" json:"y"`
	Velocity float64 `msgpack:"velocity" json:"velocity"`
	Tilt     float64 `msgpack:"tilt" json:"tilt"`
	Jumping  bool    `msgpack:"jumping" json:"jumping"`
}

// Geometry carries the session constants a renderer needs.
type Geometry struct {
	WorldWidth       float64 `msgpack:"world_width" json:"world_width"`
	WorldHeight      float64 `msgpack:"world_height" json:"world_height"`
	BodyWidth        float64 `msgpack:"body_width" json:"body_width"`
	BodyHeight       float64 `msgpack:"body_height" json:"body_height"`
	ObstacleWidth    float64 `msgpack:"obstacle_width" json:"obstacle_width"`
	Gap              float64 `msgpack:"gap" json:"gap"`
	DecorationWidth  float64 `msgpack:"decoration_width" json:"decoration_width"`
	DecorationHeight float64 `msgpack:"decoration_height" json:"decoration_height"`
}

// Snapshot is a deep copy of the simulation state. Mutating it never
// affects the game.
type Snapshot struct {
	Mode        string       `msgpack:"mode" json:"mode"`
	Tick        uint64       `msgpack:"tick" json:"tick"`
	TimeMs      int64        `msgpack:"time_ms" json:"time_ms"`
	Phase       Phase        `msgpack:"phase" json:"phase"`
	Paused      bool         `msgpack:"paused" json:"paused"`
	Score       int          `msgpack:"score" json:"score"`
	Body        BodyState    `msgpack:"body" json:"body"`
	Obstacles   []Obstacle   `msgpack:"obstacles" json:"obstacles"`
	Decorations []Decoration `msgpack:"decorations" json:"decorations"`
	Geometry    Geometry     `msgpack:"geometry" json:"geometry"`
}

// Snapshot returns the current state for presentation and determinism checks.
func (g *Game) Snapshot() Snapshot {
	phys := g.cfg.Physics
	return Snapshot{
		Mode:   g.mode,
		Tick:   g.tick,
		TimeMs: g.sched.Now().Milliseconds(),
		Phase:  g.phase,
		Paused: g.paused,
		Score:  g.score,
		Body: BodyState{
			X:        g.centerX(),
			Y:        g.body.Y,
			Velocity: g.body.Velocity,
			Tilt:     g.body.Tilt(phys.TiltFactor, phys.MaxTilt),
			Jumping:  g.jumping,
		},
		Obstacles:   g.obstacles.snapshot(),
		Decorations: g.decorations.snapshot(),
		Geometry: Geometry{
			WorldWidth:       g.cfg.World.Width,
			WorldHeight:      g.cfg.World.Height,
			BodyWidth:        g.cfg.Body.Width,
			BodyHeight:       g.cfg.Body.Height,
			ObstacleWidth:    g.cfg.Obstacles.Width,
			Gap:              g.cfg.Obstacles.Gap,
			DecorationWidth:  g.cfg.Decorations.Width,
			DecorationHeight: g.cfg.Decorations.Height,
		},
	}
}
