package replay

import (
	"fmt"

	"github.com/vovakirdan/lungbird/internal/config"
	"github.com/vovakirdan/lungbird/internal/core"
	"github.com/vovakirdan/lungbird/internal/games/lungbird"
	"github.com/vovakirdan/lungbird/internal/storage"
)

// Result is the outcome of a re-simulation.
type Result struct {
	Frames uint64
	Score  int
	Phase  lungbird.Phase
	Events int
}

// Simulate steps a fresh game for frames frames, applying the logged input
// on the frames it was recorded for.
func Simulate(cfg config.Config, mode string, seed int64, tickRate int, frames uint64, entries []Entry) Result {
	g := lungbird.NewWithConfig(cfg, mode)
	g.Reset(core.RuntimeConfig{TickRate: tickRate, Seed: seed})

	byFrame := make(map[uint64][]core.Action, len(entries))
	for _, e := range entries {
		byFrame[e.Frame] = append(byFrame[e.Frame], e.Actions...)
	}

	var res Result
	for f := uint64(1); f <= frames; f++ {
		in := core.FrameOf(byFrame[f]...)
		step := g.Step(in)
		res.Events += len(step.Events)
	}

	st := g.State()
	res.Frames = g.Frame()
	res.Score = st.Score
	res.Phase = g.Phase()
	return res
}

// Verify re-simulates a journaled run and checks that it ends Over with the
// stored score.
func Verify(run storage.Run) (Result, error) {
	cfg, err := config.Parse(run.ConfigYAML)
	if err != nil {
		return Result{}, fmt.Errorf("replay: run %d: %w", run.ID, err)
	}
	entries, err := Decode(run.Inputs)
	if err != nil {
		return Result{}, fmt.Errorf("replay: run %d: %w", run.ID, err)
	}

	res := Simulate(cfg, run.Mode, run.Seed, run.TickRate, run.Frames, entries)
	if res.Phase != lungbird.PhaseOver {
		return res, fmt.Errorf("replay: run %d: ended in phase %s, want %s", run.ID, res.Phase, lungbird.PhaseOver)
	}
	if res.Score != run.Score {
		return res, fmt.Errorf("replay: run %d: score %d, journal says %d", run.ID, res.Score, run.Score)
	}
	return res, nil
}
