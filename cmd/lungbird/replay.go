package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lungbird/internal/replay"
	"github.com/vovakirdan/lungbird/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a journaled run and verify its score",
	Long: `Load a run from the journal, step a fresh game through its recorded
input with the stored config, seed and frame rate, and check that it ends
with the journaled score.

Examples:
  lungbird replay 12`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", args[0], err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	run, err := store.RunByID(id)
	if err != nil {
		return err
	}

	res, err := replay.Verify(run)
	if err != nil {
		logger.Error("replay mismatch", "id", run.ID, "score", res.Score, "phase", res.Phase)
		return err
	}
	logger.Info("run verified",
		"id", run.ID,
		"mode", run.Mode,
		"player", run.Player,
		"score", res.Score,
		"frames", res.Frames,
		"events", res.Events,
	)
	return nil
}
