package backend

import (
	"log/slog"

	"github.com/valerio/go-tones/tones/input/action"
	"github.com/valerio/go-tones/tones/input/event"
	"github.com/valerio/go-tones/tones/sequencer"
)

// Backend represents a player front end (status display + input).
// Backends are responsible for:
// - Showing the sequencer status on their specific output (terminal, logs, etc.)
// - Translating platform-specific input events to Actions
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config Config) error

	// Update handles one frame: show the status and collect pending input.
	// Backends should:
	// 1. Poll for platform-specific events (keyboard, signals, etc.)
	// 2. Translate events to InputEvents and return them
	// 3. Render the provided status
	Update(status sequencer.Status) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// Config holds configuration for backends
type Config struct {
	Title    string
	LogLevel slog.Level
	Muted    func() bool // Backends may show the mute state, nil means never muted
}

// InputEvent is an action the backend wants the player to perform
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// ActionHandler is implemented by backends that react to actions themselves,
// such as changing their log filter
type ActionHandler interface {
	HandleAction(act action.Action)
}
