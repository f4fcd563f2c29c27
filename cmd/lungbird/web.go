package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lungbird/internal/games/lungbird"
	"github.com/vovakirdan/lungbird/internal/platform/web"
	"github.com/vovakirdan/lungbird/internal/registry"
	"github.com/vovakirdan/lungbird/internal/runner"
)

var (
	flagWebAddr     string
	flagWebMode     string
	flagBroadcastHz int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the game over WebSocket",
	Long: `Start an HTTP server with a WebSocket endpoint. Each connection plays
its own session; the server steps it at --fps and sends snapshots at
--broadcast-hz.

Endpoints:
  GET /ws?codec=msgpack|json  - game session
  GET /healthz                - liveness

Client messages: {"action":"gesture"|"restart"|"pause"}

Examples:
  lungbird web
  lungbird web --addr 127.0.0.1:9000 --broadcast-hz 60 --mode lungbird-bounded`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "127.0.0.1:8080", "HTTP listen address")
	webCmd.Flags().StringVar(&flagWebMode, "mode", lungbird.ModeClassic, "Mode played by every connection")
	webCmd.Flags().IntVar(&flagBroadcastHz, "broadcast-hz", 30, "Snapshots sent per second")
}

func runWeb(_ *cobra.Command, _ []string) error {
	if !registry.Exists(flagWebMode) {
		return fmt.Errorf("unknown mode %q, run 'lungbird list' to see available modes", flagWebMode)
	}

	rc := runner.DefaultConfig()
	if flagFPS > 0 {
		rc.TickRate = flagFPS
	}
	if flagBroadcastHz > 0 && flagBroadcastHz < rc.TickRate {
		rc.BroadcastEvery = rc.TickRate / flagBroadcastHz
	} else {
		rc.BroadcastEvery = 1
	}

	srv := web.NewServer(web.Options{
		Mode:   flagWebMode,
		Game:   gameConfig(),
		Runner: rc,
		Seed:   flagSeed,
	}, logger.WithPrefix("lungbird-web"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving", "addr", flagWebAddr, "mode", flagWebMode, "fps", rc.TickRate, "broadcast_every", rc.BroadcastEvery)
	return srv.ListenAndServe(ctx, flagWebAddr)
}
