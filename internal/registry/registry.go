// Package registry provides a global registry of game modes.
// Modes register themselves in init() functions, so hosts (TUI, SSH, web,
// replay) create them by ID without importing each variant.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/lungbird/internal/core"
)

// Game is the interface every registered mode implements.
// Modes contain pure simulation logic with no terminal or network code.
// Hosts map devices to actions, pace frames and draw the result.
type Game interface {
	// ID returns the mode identifier (e.g., "lungbird", "lungbird-bounded").
	// Used for CLI arguments and the run journal.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset starts a fresh session. The RuntimeConfig provides the host
	// surface size, frame rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input and advances virtual time by one frame.
	// Returns the state after the frame and the events it produced.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current summary (phase, score, paused).
	State() core.GameState
}

// ModeInfo describes a registered mode for menus and the CLI.
type ModeInfo struct {
	ID      string
	Title   string
	Summary string // One line on how the mode plays
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// ErrUnknownMode is returned by Create for IDs nobody registered.
var ErrUnknownMode = errors.New("registry: unknown mode")

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	modes     []ModeInfo // Sorted by ID
)

// Register adds a mode. Typically called from a game's init() function.
// Panics on an empty or duplicate ID.
func Register(info ModeInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: empty mode ID")
	}
	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}

	factories[info.ID] = f
	i := sort.Search(len(modes), func(i int) bool { return modes[i].ID >= info.ID })
	modes = append(modes, ModeInfo{})
	copy(modes[i+1:], modes[i:])
	modes[i] = info
}

// List returns every registered mode, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]ModeInfo, len(modes))
	copy(out, modes)
	return out
}

// Lookup returns the description of a registered mode.
func Lookup(id string) (ModeInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	i := sort.Search(len(modes), func(i int) bool { return modes[i].ID >= id })
	if i < len(modes) && modes[i].ID == id {
		return modes[i], true
	}
	return ModeInfo{}, false
}

// Create instantiates a new game for the mode. The error wraps
// ErrUnknownMode when the ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	return f(), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
