// Package web serves the game over WebSocket. Every connection gets its own
// session driven by a runner; browsers send commands and receive snapshots.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/lungbird/internal/config"
	"github.com/vovakirdan/lungbird/internal/core"
	"github.com/vovakirdan/lungbird/internal/games/lungbird"
	"github.com/vovakirdan/lungbird/internal/runner"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Local play; the server binds to loopback by default
	},
}

// Options configures the server.
type Options struct {
	Mode   string
	Game   config.Config
	Runner runner.Config
	Seed   int64 // 0 picks a fresh seed per connection
}

// Server hands out one game session per WebSocket connection.
type Server struct {
	opts     Options
	logger   *log.Logger
	sessions atomic.Int64
}

// NewServer creates a server.
func NewServer(opts Options, logger *log.Logger) *Server {
	if opts.Mode == "" {
		opts.Mode = lungbird.ModeClassic
	}
	return &Server{opts: opts, logger: logger}
}

// Handler returns the HTTP routes: /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Sessions returns the number of live connections.
func (s *Server) Sessions() int64 {
	return s.sessions.Load()
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Stopping web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) newGame() *lungbird.Game {
	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := lungbird.NewWithConfig(s.opts.Game, s.opts.Mode)
	g.Reset(core.RuntimeConfig{TickRate: s.opts.Runner.TickRate, Seed: seed})
	return g
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	codec, err := CodecByName(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	s.sessions.Add(1)
	defer s.sessions.Add(-1)

	logger := s.logger.With("remote", r.RemoteAddr, "codec", codec.Name())
	logger.Info("Session started")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	out := newOutbox(codec, sendBuffer)
	run := runner.New(s.newGame(), s.opts.Runner, func(f runner.Frame) {
		queued, err := out.push(f)
		if err != nil {
			logger.Error("Encode frame failed", "error", err)
			return
		}
		if !queued {
			logger.Debug("Slow client, frame deferred", "frame", f.Number)
		}
	})
	go run.Run(ctx)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer conn.Close()
		s.writeLoop(ctx, conn, codec, out.send)
	}()

	s.readLoop(conn, codec, run, logger)

	cancel()
	<-run.Done()
	<-writerDone
	logger.Info("Session ended")
}

// readLoop forwards client commands to the runner until the connection fails.
func (s *Server) readLoop(conn *websocket.Conn, codec Codec, run *runner.Runner, logger *log.Logger) {
	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Read failed", "error", err)
			}
			return
		}

		var msg ClientMessage
		if msgType == websocket.BinaryMessage {
			err = msgpackCodec{}.Unmarshal(data, &msg)
		} else {
			err = jsonCodec{}.Unmarshal(data, &msg)
		}
		if err != nil {
			logger.Debug("Bad client message", "error", err)
			continue
		}

		a, ok := msg.action()
		if !ok {
			logger.Debug("Unknown action", "action", msg.Action)
			continue
		}
		if !run.Send(a) {
			logger.Debug("Inbox full, dropped action", "action", a)
		}
	}
}

// writeLoop sends frames and keepalive pings until ctx is cancelled.
func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, codec Codec, send <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(codec.MessageType(), data); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
