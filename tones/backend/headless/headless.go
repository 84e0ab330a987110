package headless

import (
	"log/slog"
	"os"

	"github.com/valerio/go-tones/tones/backend"
	"github.com/valerio/go-tones/tones/input/action"
	"github.com/valerio/go-tones/tones/input/event"
	"github.com/valerio/go-tones/tones/sequencer"
)

// Backend implements the Backend interface for automated runs and CI.
// It runs a fixed number of frames, or until playback ends when maxFrames is 0.
type Backend struct {
	config     backend.Config
	frameCount int
	maxFrames  int
	wasPlaying bool
	lastCursor int
}

func New(maxFrames int) *Backend {
	return &Backend{
		maxFrames: maxFrames,
	}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config

	// Set up logging for headless mode
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevel,
	})
	slog.SetDefault(slog.New(handler))

	slog.Info("Running headless mode", "title", config.Title, "frames", h.maxFrames)
	return nil
}

// Update logs tone transitions and signals quit once the run is over
func (h *Backend) Update(status sequencer.Status) ([]backend.InputEvent, error) {
	h.frameCount++

	if status.Playing && (!h.wasPlaying || status.Cursor != h.lastCursor) {
		slog.Info("Playing",
			"frame", h.frameCount,
			"freq", status.Frequency,
			"silent", status.Silent,
			"high", status.HighVolume,
			"entry", status.Cursor)
	}
	if h.wasPlaying && !status.Playing {
		slog.Info("Playback finished", "frame", h.frameCount)
	}
	h.wasPlaying = status.Playing
	h.lastCursor = status.Cursor

	// Log progress periodically
	if h.frameCount%60 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	done := h.maxFrames > 0 && h.frameCount >= h.maxFrames
	if h.maxFrames == 0 && !status.Playing {
		done = true
	}
	if done {
		slog.Info("Headless execution completed", "frames", h.frameCount)
		// Signal completion via quit event
		return []backend.InputEvent{{Action: action.PlayerQuit, Type: event.Press}}, nil
	}

	return nil, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// Frames returns the number of frames processed so far
func (h *Backend) Frames() int {
	return h.frameCount
}
