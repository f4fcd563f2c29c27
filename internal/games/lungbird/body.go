package lungbird

import "github.com/vovakirdan/lungbird/internal/core"

// Body is the player-controlled falling body. Its horizontal position is
// fixed at the world's center; only the vertical axis moves.
type Body struct {
	Y        float64 // Top of the hitbox, world units, grows downward
	Velocity float64 // Units per motion tick, negative is upward
}

// Integrate applies one motion tick of constant-gravity kinematics.
func (b *Body) Integrate(gravity float64) {
	b.Velocity += gravity
	b.Y += b.Velocity
}

// Tilt derives the visual angle in degrees from the velocity:
// nose up while rising, nose down while falling, clamped to ±maxTilt.
func (b Body) Tilt(factor, maxTilt float64) float64 {
	return core.ClampF(b.Velocity*factor, -maxTilt, maxTilt)
}
