package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lungbird/internal/audio"
	"github.com/vovakirdan/lungbird/internal/config"
	"github.com/vovakirdan/lungbird/internal/core"
	"github.com/vovakirdan/lungbird/internal/games/lungbird"
	"github.com/vovakirdan/lungbird/internal/registry"
	"github.com/vovakirdan/lungbird/internal/replay"
	"github.com/vovakirdan/lungbird/internal/storage"
)

// Game is what the terminal host needs from a mode on top of the registry
// contract: the frame counter and config for the run journal, and event
// subscription for audio.
type Game interface {
	registry.Game
	Frame() uint64
	Config() config.Config
	Subscribe(fn func(core.Event))
}

// Deps are the services a game screen uses. Every field is optional.
type Deps struct {
	Store         *storage.Store // Run journal; nil disables it
	Audio         *audio.Player  // Event cues; nil disables sound
	Logger        *log.Logger
	Player        string // Name stored with each run
	ScreenshotDir string // Defaults to ~/.lungbird/screenshots
}

// GameModel is the Bubble Tea model that plays one game session.
type GameModel struct {
	game       Game
	screen     *core.Screen
	deps       Deps
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	recorder   *replay.Recorder
	gen        uint64 // Tick generation; ticks of other sessions are ignored
	standalone bool // Own tea.Program: back ends the program
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current Over has been journaled
	lastRunID  int64
}

// NewGameModel creates a game screen for game. The session starts on Init.
func NewGameModel(game Game, deps Deps, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if deps.Audio != nil {
		game.Subscribe(deps.Audio.Handle)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		deps:       deps,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		recorder:   replay.NewRecorder(),
		gen:        nextGeneration(),
	}
}

// Init resets the session and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.recorder.Reset()
	m.logger.Debug("session started", "mode", m.game.ID(), "seed", m.config.Seed, "fps", m.config.TickRate)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		return m, nil
	case tea.WindowSizeMsg:
		// The world is scaled to the screen, so the session survives a resize.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if action, _ := m.keyMapper.MapKey(msg); action == core.ActionBack && m.canLeave() {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

// canLeave reports whether back is allowed: anywhere but an active run.
func (m GameModel) canLeave() bool {
	return m.gameState.Phase != string(lungbird.PhaseRunning) || m.gameState.Paused
}

// handleTick records the frame's input, steps the game and journals the run
// on the frame it ends.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.recorder.Record(m.game.Frame()+1, m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	for _, ev := range result.Events {
		m.logger.Debug("event", "kind", ev.Kind, "tick", ev.Tick, "score", ev.Score)
	}

	switch {
	case m.gameState.GameOver && !m.runSaved:
		m.saveRun()
		m.runSaved = true
	case !m.gameState.GameOver:
		m.runSaved = false
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveRun writes the finished run to the journal. Failures are logged and
// play continues.
func (m *GameModel) saveRun() {
	if m.deps.Store == nil {
		return
	}

	cfgYAML, err := config.Marshal(m.game.Config())
	if err != nil {
		m.logger.Warn("could not encode config", "err", err)
		return
	}
	inputs, err := m.recorder.Encode()
	if err != nil {
		m.logger.Warn("could not encode input log", "err", err)
		return
	}

	id, err := m.deps.Store.SaveRun(storage.Run{
		Mode:       m.game.ID(),
		Player:     m.deps.Player,
		Seed:       m.config.Seed,
		TickRate:   m.config.TickRate,
		Frames:     m.game.Frame(),
		Score:      m.gameState.Score,
		ConfigYAML: cfgYAML,
		Inputs:     inputs,
	})
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
		return
	}
	m.lastRunID = id
	m.logger.Info("run saved", "id", id, "mode", m.game.ID(), "score", m.gameState.Score, "frames", m.game.Frame())
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.deps.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("could not resolve home directory", "err", err)
			return
		}
		dir = filepath.Join(home, ".lungbird", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the state after the last frame.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastRunID returns the journal ID of the most recent saved run, or 0.
func (m GameModel) LastRunID() int64 {
	return m.lastRunID
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own program until the user quits or goes back.
// It reports whether the user asked to go back to the menu.
func Run(game Game, deps Deps, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, deps, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}

// CreateGame creates a registered mode that the terminal host can play.
func CreateGame(id string) (Game, error) {
	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	game, ok := g.(Game)
	if !ok {
		return nil, fmt.Errorf("tui: mode %q cannot be hosted", id)
	}
	return game, nil
}
