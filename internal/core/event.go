package core

// EventKind identifies a one-shot notification from the simulation.
type EventKind int

const (
	EventStarted        EventKind = iota + 1 // Idle -> Running
	EventImpulse                             // Upward impulse applied
	EventObstaclePassed                      // Score incremented
	EventCollision                           // Running -> Over, fires once per run
	EventRestarted                           // Over -> Idle
)

// String returns the event name used in logs and wire formats.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventImpulse:
		return "impulse"
	case EventObstaclePassed:
		return "obstacle_passed"
	case EventCollision:
		return "collision"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Event is a notification emitted by a game.
type Event struct {
	Kind  EventKind
	Tick  uint64 // Motion tick at which the event happened
	Score int    // Score after the event
}
