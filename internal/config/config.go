// Package config provides YAML-based configuration loading for the game,
// with embedded defaults and constant difficulty presets.
package config

import (
	"fmt"
	"time"
)

// Config contains every tunable of a session. World units are abstract
// pixels; hosts scale them to their own surface.
type Config struct {
	World       WorldConfig      `yaml:"world"`
	Physics     PhysicsConfig    `yaml:"physics"`
	Body        BodyConfig       `yaml:"body"`
	Obstacles   ObstacleConfig   `yaml:"obstacles"`
	Decorations DecorationConfig `yaml:"decorations"`
	Timing      TimingConfig     `yaml:"timing"`
	Bounds      BoundsConfig     `yaml:"bounds"`
	Audio       AudioConfig      `yaml:"audio"`
}

// WorldConfig is the visible area, fixed for the session.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds the body kinematics. Negative velocity is upward.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // Added to velocity every motion tick
	StartImpulse float64 `yaml:"start_impulse"` // Velocity set by the free first jump
	JumpImpulse  float64 `yaml:"jump_impulse"`  // Velocity set by each impulse
	TiltFactor   float64 `yaml:"tilt_factor"`   // Degrees of tilt per unit of velocity
	MaxTilt      float64 `yaml:"max_tilt"`      // Tilt magnitude limit in degrees
}

// BodyConfig is the body's hitbox, centered horizontally in the world.
type BodyConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines the gapped obstacles.
type ObstacleConfig struct {
	Width       float64       `yaml:"width"`
	Gap         float64       `yaml:"gap"`
	Speed       float64       `yaml:"speed"` // World units per motion tick
	SpawnPeriod time.Duration `yaml:"spawn_period"`
}

// DecorationConfig defines the background decorations.
type DecorationConfig struct {
	Width       float64       `yaml:"width"`
	Height      float64       `yaml:"height"`
	Speed       float64       `yaml:"speed"` // World units per decoration tick
	SpawnPeriod time.Duration `yaml:"spawn_period"`
}

// TimingConfig holds the fixed tick periods.
type TimingConfig struct {
	TickPeriod           time.Duration `yaml:"tick_period"`
	DecorationTickPeriod time.Duration `yaml:"decoration_tick_period"`
	JumpFlag             time.Duration `yaml:"jump_flag"` // How long the jumping flag stays set
}

// BoundsConfig enables the optional boundary collision rule.
type BoundsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// AudioConfig controls the audio cue player.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Volume      float64 `yaml:"volume"`       // 0.0 to 1.0
	MusicVolume float64 `yaml:"music_volume"` // 0 disables the music loop
}

// DefaultConfig returns the baseline constants.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:  920,
			Height: 800,
		},
		Physics: PhysicsConfig{
			Gravity:      0.6,
			StartImpulse: -8,
			JumpImpulse:  -8,
			TiltFactor:   2.5,
			MaxTilt:      20,
		},
		Body: BodyConfig{
			Width:  90,
			Height: 40,
		},
		Obstacles: ObstacleConfig{
			Width:       100,
			Gap:         220,
			Speed:       5,
			SpawnPeriod: 2500 * time.Millisecond,
		},
		Decorations: DecorationConfig{
			Width:       150,
			Height:      80,
			Speed:       4,
			SpawnPeriod: time.Second / 9,
		},
		Timing: TimingConfig{
			TickPeriod:           time.Second / 60,
			DecorationTickPeriod: time.Second / 60,
			JumpFlag:             200 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled:     false,
			Volume:      0.3,
			MusicVolume: 0.3,
		},
	}
}

// Warnings lists configuration values that break the game's preconditions.
// The simulation does not check them at runtime; hosts log them at startup.
func (c Config) Warnings() []string {
	var out []string

	if c.World.Width <= 0 || c.World.Height <= 0 {
		out = append(out, fmt.Sprintf("world size %vx%v must be positive", c.World.Width, c.World.Height))
	}
	if c.Obstacles.Gap >= c.World.Height {
		out = append(out, fmt.Sprintf("obstacle gap %v is not smaller than world height %v", c.Obstacles.Gap, c.World.Height))
	}
	if c.Body.Height >= c.Obstacles.Gap {
		out = append(out, fmt.Sprintf("body height %v does not fit through gap %v", c.Body.Height, c.Obstacles.Gap))
	}
	if c.Decorations.Height >= c.World.Height {
		out = append(out, fmt.Sprintf("decoration height %v is not smaller than world height %v", c.Decorations.Height, c.World.Height))
	}
	if c.Obstacles.Speed <= 0 {
		out = append(out, "obstacle speed must be positive")
	}

	periods := []struct {
		name string
		d    time.Duration
	}{
		{"timing.tick_period", c.Timing.TickPeriod},
		{"timing.decoration_tick_period", c.Timing.DecorationTickPeriod},
		{"obstacles.spawn_period", c.Obstacles.SpawnPeriod},
		{"decorations.spawn_period", c.Decorations.SpawnPeriod},
	}
	for _, p := range periods {
		if p.d <= 0 {
			out = append(out, fmt.Sprintf("%s must be positive, got %v", p.name, p.d))
		}
	}

	return out
}
