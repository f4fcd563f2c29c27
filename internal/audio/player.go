// Package audio plays short synthesized cues for game events over a looping
// background melody.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/lungbird/internal/config"
	"github.com/vovakirdan/lungbird/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes event cues onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	musicVolume float64
	enabled     bool
	initialized bool
}

// NewPlayer creates a player. Nothing touches the sound device until Init.
func NewPlayer(cfg config.AudioConfig) *Player {
	return &Player{
		mixer:       &beep.Mixer{},
		volume:      cfg.Volume,
		musicVolume: cfg.MusicVolume,
		enabled:     cfg.Enabled,
	}
}

// Init opens the speaker and starts the music loop. A disabled player never
// opens it.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	if p.musicVolume > 0 {
		p.mixer.Add(MusicLoop(sampleRate, p.musicVolume))
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Handle plays the cue for ev. It is safe to pass as a game subscriber.
func (p *Player) Handle(ev core.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	cue := CueFor(ev.Kind, sampleRate, p.volume)
	if cue == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(cue)
	speaker.Unlock()
}

// Close silences every playing cue and the music loop.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
