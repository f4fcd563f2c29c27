// Package runner drives a game from a single goroutine for hosts that
// receive input concurrently (websocket connections). Every command goes
// through one inbox and is applied on the next frame, so the game itself
// never needs a lock.
package runner

import (
	"context"
	"time"

	"github.com/vovakirdan/lungbird/internal/core"
	"github.com/vovakirdan/lungbird/internal/games/lungbird"
)

// Game is what the runner steps.
type Game interface {
	Step(in core.InputFrame) core.StepResult
	Snapshot() lungbird.Snapshot
}

// Frame is published after every stepped frame that is due for broadcast.
type Frame struct {
	Number   uint64
	Input    core.InputFrame // Actions applied on this frame
	State    core.GameState
	Events   []core.Event
	Snapshot lungbird.Snapshot
}

// Config holds the runner pacing.
type Config struct {
	TickRate       int // Frames per second
	BroadcastEvery int // Publish every Nth frame; frames with events are always published
}

// DefaultConfig returns 60 frames per second, publishing every other frame.
func DefaultConfig() Config {
	return Config{
		TickRate:       60,
		BroadcastEvery: 2,
	}
}

// Runner owns a game and steps it on its own goroutine.
type Runner struct {
	game    Game
	config  Config
	inbox   chan core.Action
	onFrame func(Frame)
	pending core.InputFrame
	frame   uint64
	done    chan struct{}
}

// New creates a runner. onFrame is called on the runner goroutine and must
// not block for long.
func New(game Game, cfg Config, onFrame func(Frame)) *Runner {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.BroadcastEvery <= 0 {
		cfg.BroadcastEvery = 1
	}
	return &Runner{
		game:    game,
		config:  cfg,
		inbox:   make(chan core.Action, 64),
		onFrame: onFrame,
		pending: core.NewInputFrame(),
		done:    make(chan struct{}),
	}
}

// Send queues an action for the next frame.
// Non-blocking; the action is dropped if the inbox is full.
func (r *Runner) Send(a core.Action) bool {
	select {
	case r.inbox <- a:
		return true
	default:
		return false
	}
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run steps the game at the configured rate until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(r.config.TickRate))
	defer ticker.Stop()
	r.RunWith(ctx, ticker.C)
}

// RunWith steps the game once per value received from ticks until ctx is
// cancelled or ticks is closed.
func (r *Runner) RunWith(ctx context.Context, ticks <-chan time.Time) {
	defer close(r.done)

	for {
		select {
		case a := <-r.inbox:
			r.pending.Set(a)

		case _, ok := <-ticks:
			if !ok {
				return
			}
			r.step()

		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner) step() {
	// Drain what arrived together with the tick.
	for drained := false; !drained; {
		select {
		case a := <-r.inbox:
			r.pending.Set(a)
		default:
			drained = true
		}
	}

	in := r.pending
	r.pending = core.NewInputFrame()

	res := r.game.Step(in)
	r.frame++

	if r.onFrame == nil {
		return
	}
	if len(res.Events) == 0 && r.frame%uint64(r.config.BroadcastEvery) != 0 {
		return
	}
	r.onFrame(Frame{
		Number:   r.frame,
		Input:    in,
		State:    res.State,
		Events:   res.Events,
		Snapshot: r.game.Snapshot(),
	})
}
