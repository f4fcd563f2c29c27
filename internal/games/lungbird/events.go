package lungbird

import "github.com/vovakirdan/lungbird/internal/core"

// Subscribe registers fn to receive every event as it is emitted.
// Subscribers run synchronously on the simulation goroutine and must not
// call back into the game. The game works the same with no subscribers.
func (g *Game) Subscribe(fn func(core.Event)) {
	g.subscribers = append(g.subscribers, fn)
}

func (g *Game) emit(kind core.EventKind) {
	ev := core.Event{Kind: kind, Tick: g.tick, Score: g.score}
	g.pending = append(g.pending, ev)
	for _, fn := range g.subscribers {
		fn(ev)
	}
}

// drainEvents returns the events emitted since the last call.
func (g *Game) drainEvents() []core.Event {
	if len(g.pending) == 0 {
		return nil
	}
	out := g.pending
	g.pending = nil
	return out
}
