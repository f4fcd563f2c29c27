package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lungbird/internal/audio"
	"github.com/vovakirdan/lungbird/internal/config"
	"github.com/vovakirdan/lungbird/internal/games/lungbird"
	"github.com/vovakirdan/lungbird/internal/platform/tui"
	"github.com/vovakirdan/lungbird/internal/registry"
)

var flagSound bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default: lungbird).

Controls:
  Space/Up/W/Click - Flap (starts a run when idle)
  P                - Pause
  R/Enter          - Restart after game over
  B/Esc            - Leave (when idle, paused or over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Every finished run is written to the journal with its input log, so
'lungbird replay <id>' can verify it.

Examples:
  lungbird play
  lungbird play lungbird-bounded
  lungbird play --preset hard --sound
  lungbird play --config ./my-lungbird.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play audio cues (overrides audio.enabled)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	mode := lungbird.ModeClassic
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q, run 'lungbird list' to see available modes", mode)
	}

	game, err := tui.CreateGame(mode)
	if err != nil {
		return err
	}

	cfg := gameConfig()
	deps, cleanup := newDeps(cmd, cfg)
	defer cleanup()

	if _, err := tui.Run(game, deps, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// newDeps opens the journal, the sound device and the log file for
// terminal games. cleanup releases all of them.
func newDeps(cmd *cobra.Command, cfg config.Config) (tui.Deps, func()) {
	audioCfg := cfg.Audio
	if cmd.Flags().Changed("sound") {
		audioCfg.Enabled = flagSound
	}
	player := audio.NewPlayer(audioCfg)
	if err := player.Init(); err != nil {
		logger.Warn("audio disabled", "err", err)
	}

	store := openStore()
	gameLogger, closeLog := tuiLogger()

	deps := tui.Deps{
		Store:  store,
		Audio:  player,
		Logger: gameLogger,
		Player: playerName(),
	}
	return deps, func() {
		player.Close()
		if store != nil {
			store.Close()
		}
		closeLog()
	}
}
