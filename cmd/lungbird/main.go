// lungbird is a side-scrolling reflex game for the terminal, SSH and the
// browser.
//
// Usage:
//
//	lungbird list            - List available modes
//	lungbird play [mode]     - Play a mode
//	lungbird menu            - Pick modes interactively
//	lungbird serve           - Start SSH server for remote play
//	lungbird web             - Serve the game over WebSocket
//	lungbird runs [mode]     - Show the run journal
//	lungbird replay <id>     - Re-simulate and verify a journaled run
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.lungbird/runs.db)
//	--config <path>      - Use a custom game config YAML
//	--preset <name>      - Difficulty preset: easy, normal, hard
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lungbird/internal/config"
	"github.com/vovakirdan/lungbird/internal/core"
	"github.com/vovakirdan/lungbird/internal/games/lungbird"
	"github.com/vovakirdan/lungbird/internal/storage"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
	flagLogFile  string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lungbird",
	Short: "Lungbird - a side-scrolling reflex game",
	Long: `Lungbird is a one-button reflex game: tap to flap, pass through the
gaps, and do not touch the obstacles.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  web      - Serve the game over WebSocket
  runs     - Show the run journal
  replay   - Verify a journaled run

Examples:
  lungbird play
  lungbird play lungbird-bounded --preset hard
  lungbird serve --ssh :2222
  lungbird web --addr 127.0.0.1:8080
  lungbird replay 12`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.lungbird/runs.db", "Path to the run journal")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs of terminal games to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup builds the logger and hands the config flags to the game package.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lungbird",
		Level:           level,
	})

	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return err
	}
	lungbird.SetConfigPath(flagConfig)
	lungbird.SetPreset(preset)
	return nil
}

// gameConfig loads the config the games will use and logs what is wrong
// with it. Invalid values are logged, not rejected.
func gameConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Warn("could not load config, using defaults", "path", flagConfig, "err", err)
		cfg = config.DefaultConfig()
	}
	preset, _ := config.ParsePreset(flagPreset) //nolint:errcheck // validated in setup
	config.ApplyPreset(&cfg, preset)
	for _, w := range cfg.Warnings() {
		logger.Warn("config", "problem", w)
	}
	return cfg
}

// terminalConfig sizes the runtime config to the terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the journal. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run journal", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// tuiLogger returns the logger for full-screen programs, which own stderr.
func tuiLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Warn("could not open log file", "path", flagLogFile, "err", err)
		return log.New(io.Discard), func() {}
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "lungbird",
		Level:           logger.GetLevel(),
	})
	return l, func() { f.Close() }
}

// playerName is the name stored with local runs.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
