package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lungbird/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for the run journal.
Leaving a game returns to the menu.

Examples:
  lungbird menu
  lungbird menu --fps 30
  lungbird menu --db ./runs.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play audio cues (overrides audio.enabled)")
}

func runMenu(cmd *cobra.Command, _ []string) error {
	deps, cleanup := newDeps(cmd, gameConfig())
	defer cleanup()

	cfg := terminalConfig()
	for {
		result, err := tui.RunMenu(deps.Store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsRuns:
			goBack, err := tui.RunRuns(deps.Store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			game, err := tui.CreateGame(result.ModeID)
			if err != nil {
				logger.Error("could not create game", "mode", result.ModeID, "err", err)
				continue
			}
			runCfg := cfg
			if runCfg.Seed == 0 {
				runCfg.Seed = time.Now().UnixNano()
			}
			goBack, err := tui.Run(game, deps, runCfg)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
		}
	}
}
