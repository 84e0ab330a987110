package tones

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/valerio/go-tones/tones/audio"
	"github.com/valerio/go-tones/tones/backend"
	"github.com/valerio/go-tones/tones/input"
	"github.com/valerio/go-tones/tones/input/action"
	"github.com/valerio/go-tones/tones/input/event"
	"github.com/valerio/go-tones/tones/output"
	"github.com/valerio/go-tones/tones/sequence"
	"github.com/valerio/go-tones/tones/sequencer"
	"github.com/valerio/go-tones/tones/timing"
)

// ErrNoBackend is returned by NewPlayer when no front end was configured
var ErrNoBackend = errors.New("tones: no backend configured")

// Config holds everything needed to build a Player
type Config struct {
	Title      string
	FPS        float64
	Channels   int
	VolumeMode sequencer.VolumeMode
	Muted      bool
	Output     output.Kind
	LogLevel   slog.Level

	Backend backend.Backend

	// Optional overrides. A nil Clock advances a fixed amount per frame,
	// a nil Limiter paces frames with a ticker.
	Clock   timing.Clock
	Limiter timing.Limiter
}

// Player runs the host frame loop: it drives the mixer and sequencer,
// feeds the audio output and hands input from the backend to the actions.
type Player struct {
	config  Config
	mixer   *audio.Mixer
	seq     *sequencer.Sequencer
	out     output.Output
	backend backend.Backend
	limiter timing.Limiter
	input   *input.Manager

	muted   atomic.Bool
	loaded  sequence.Sequence
	running bool
	frames  int
}

// NewPlayer builds a player and initializes its backend and audio output
func NewPlayer(config Config) (*Player, error) {
	if config.Backend == nil {
		return nil, ErrNoBackend
	}
	if config.FPS <= 0 {
		config.FPS = timing.DefaultFPS
	}
	if config.Clock == nil {
		config.Clock = timing.NewFixedClock(config.FPS)
	}
	if config.Limiter == nil {
		config.Limiter = timing.NewTickerLimiter(config.FPS)
	}

	p := &Player{
		config:  config,
		mixer:   audio.NewMixer(config.Channels),
		backend: config.Backend,
		limiter: config.Limiter,
		input:   input.NewManager(),
	}
	p.muted.Store(config.Muted)
	p.seq = sequencer.New(p.mixer, p.outputEnabled, config.Clock)
	p.seq.SetVolumeMode(config.VolumeMode)

	err := p.backend.Init(backend.Config{
		Title:    config.Title,
		LogLevel: config.LogLevel,
		Muted:    p.Muted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend: %w", err)
	}

	p.out, err = output.New(config.Output, p.mixer, audio.SampleRate)
	if err != nil {
		_ = p.backend.Cleanup()
		return nil, err
	}

	p.registerActions()
	return p, nil
}

func (p *Player) registerActions() {
	p.input.On(action.PlayerReplay, event.Press, p.Replay)
	p.input.On(action.PlayerStop, event.Press, p.seq.Stop)
	p.input.On(action.PlayerMuteToggle, event.Press, func() {
		p.SetMuted(!p.Muted())
	})
	p.input.On(action.PlayerVolumeModeCycle, event.Press, func() {
		mode := p.seq.VolumeMode().Next()
		p.seq.SetVolumeMode(mode)
		slog.Info("Volume mode changed", "mode", mode)
	})
	p.input.On(action.PlayerQuit, event.Press, func() {
		p.running = false
	})
}

// Sequencer returns the player's sequencer, for the inline tone entry points
func (p *Player) Sequencer() *sequencer.Sequencer {
	return p.seq
}

// Audio returns the sample source feeding the output, for inspection and channel muting
func (p *Player) Audio() audio.Provider {
	return p.mixer
}

// Load starts playing seq and remembers it for Replay
func (p *Player) Load(seq sequence.Sequence) {
	p.loaded = seq
	slog.Info("Sequence loaded", "entries", len(seq), "duration_ms", seq.TotalDuration(), "loops", seq.Loops())
	p.seq.Play(seq)
}

// LoadPacked decodes a packed word buffer and plays it
func (p *Player) LoadPacked(words []uint16) error {
	seq, err := sequence.Decode(words)
	if err != nil {
		return fmt.Errorf("failed to decode packed sequence: %w", err)
	}
	p.Load(seq)
	return nil
}

// Replay restarts the loaded sequence from the beginning
func (p *Player) Replay() {
	if p.loaded == nil {
		return
	}
	p.seq.Play(p.loaded)
}

// Muted reports whether sound output is disabled
func (p *Player) Muted() bool {
	return p.muted.Load()
}

// SetMuted enables or disables sound output. Takes effect from the next tone.
func (p *Player) SetMuted(muted bool) {
	if p.muted.Swap(muted) != muted {
		slog.Info("Sound output changed", "muted", muted)
	}
}

func (p *Player) outputEnabled() bool {
	return !p.muted.Load()
}

// Frames returns the number of frames run so far
func (p *Player) Frames() int {
	return p.frames
}

// RunFrame advances the player by a single frame
func (p *Player) RunFrame() error {
	p.mixer.Update()

	if pumper, ok := p.out.(output.Pumper); ok {
		if err := pumper.Pump(); err != nil {
			return err
		}
	}

	events, err := p.backend.Update(p.seq.Status())
	if err != nil {
		return fmt.Errorf("backend update failed: %w", err)
	}
	for _, evt := range events {
		p.handleEvent(evt)
	}

	p.frames++
	return nil
}

func (p *Player) handleEvent(evt backend.InputEvent) {
	if handler, ok := p.backend.(backend.ActionHandler); ok && evt.Type == event.Press {
		handler.HandleAction(evt.Action)
	}
	p.input.Trigger(evt.Action, evt.Type)
}

// Run starts audio output and loops until a quit action arrives or a frame fails
func (p *Player) Run() error {
	if err := p.out.Start(); err != nil {
		return fmt.Errorf("failed to start audio output: %w", err)
	}
	defer p.out.Stop()

	p.running = true
	p.limiter.Reset()
	for p.running {
		if err := p.RunFrame(); err != nil {
			return err
		}
		p.limiter.WaitForNextFrame()
	}

	slog.Info("Player stopped", "frames", p.frames)
	return nil
}

// Close stops playback and releases the output and the backend
func (p *Player) Close() error {
	p.seq.Stop()
	p.out.Close()
	if stopper, ok := p.limiter.(interface{ Stop() }); ok {
		stopper.Stop()
	}
	return p.backend.Cleanup()
}
