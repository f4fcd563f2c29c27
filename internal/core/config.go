package core

import "time"

// RuntimeConfig is what a host passes to a game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Host surface width in cells
	ScreenH  int   // Host surface height in cells
	TickRate int   // Host frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameDuration is the virtual time covered by one Step call.
func (c RuntimeConfig) FrameDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState is the summary a host needs after each frame.
type GameState struct {
	Phase    string // "idle", "running" or "over"
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State  GameState
	Events []Event // Events emitted during this frame, in order
}
