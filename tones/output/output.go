// Package output moves rendered PCM from the mixer to the host's sound device.
package output

import (
	"fmt"
	"io"
	"log/slog"
)

// Output drives a sound device from a PCM source
type Output interface {
	Start() error
	Stop()
	Close()
}

// Pumper is implemented by outputs that must be fed from the frame loop
// instead of pulling samples on their own goroutine.
type Pumper interface {
	Pump() error
}

// Kind selects an output implementation
type Kind string

const (
	KindOto  Kind = "oto"
	KindSDL2 Kind = "sdl2"
	KindNone Kind = "none"
)

// New creates the output named by kind, reading mono 16-bit PCM from src
func New(kind Kind, src io.Reader, sampleRate int) (Output, error) {
	switch kind {
	case KindOto, "":
		out, err := NewOto(src, sampleRate)
		if err != nil {
			return nil, err
		}
		return out, nil
	case KindSDL2:
		out, err := NewSDL2(src, sampleRate)
		if err != nil {
			return nil, err
		}
		return out, nil
	case KindNone:
		return NewNull(src), nil
	default:
		return nil, fmt.Errorf("unknown audio output %q", kind)
	}
}

// Null consumes nothing and plays nothing
type Null struct {
	started bool
}

func NewNull(_ io.Reader) *Null {
	return &Null{}
}

func (n *Null) Start() error {
	if !n.started {
		slog.Debug("Null audio output started")
	}
	n.started = true
	return nil
}

func (n *Null) Stop()  { n.started = false }
func (n *Null) Close() { n.started = false }

// IsStarted reports whether Start was called more recently than Stop
func (n *Null) IsStarted() bool {
	return n.started
}
