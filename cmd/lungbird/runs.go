package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lungbird/internal/platform/tui"
	"github.com/vovakirdan/lungbird/internal/registry"
	"github.com/vovakirdan/lungbird/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsBrowse bool
	flagRunsClear  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [mode]",
	Short: "Show the run journal",
	Long: `Display the most recent journaled runs, newest first.

Without a mode, runs of every mode are listed along with per-mode totals.

Examples:
  lungbird runs
  lungbird runs lungbird-bounded --limit 5
  lungbird runs --browse
  lungbird runs lungbird --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Open the interactive run history")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the journaled runs of the mode")
}

func runRuns(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if !registry.Exists(mode) {
			return fmt.Errorf("unknown mode %q, run 'lungbird list' to see available modes", mode)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if mode == "" {
			return fmt.Errorf("--clear needs a mode")
		}
		if err := store.DeleteRuns(mode); err != nil {
			return err
		}
		logger.Info("runs deleted", "mode", mode)
		return nil

	case flagRunsBrowse:
		cfg := terminalConfig()
		_, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	runs, err := store.RecentRuns(mode, flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'lungbird play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-6s  %-18s  %-10s  %-6s  %-8s  %s\n", "ID", "Mode", "Player", "Score", "Time", "Date")
	fmt.Printf("  %-6s  %-18s  %-10s  %-6s  %-8s  %s\n", "--", "----", "------", "-----", "----", "----")
	for _, r := range runs {
		played := time.Duration(r.Frames) * time.Second / time.Duration(max(r.TickRate, 1))
		fmt.Printf("  %-6d  %-18s  %-10s  %-6d  %-8s  %s\n",
			r.ID, r.Mode, r.Player, r.Score,
			played.Truncate(100*time.Millisecond), r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if mode != "" {
		return nil
	}
	stats, err := store.AllModeStats()
	if err != nil {
		return err
	}
	fmt.Println()
	for _, info := range registry.List() {
		s, ok := stats[info.ID]
		if !ok {
			continue
		}
		fmt.Printf("%s: %d runs, %d frames, last played %s\n",
			info.Title, s.Runs, s.TotalFrames, s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
