//go:build !sdl2

package output

import (
	"fmt"
	"io"
)

// SDL2 stub for when SDL2 is not available
type SDL2 struct{}

func NewSDL2(_ io.Reader, _ int) (*SDL2, error) {
	return nil, fmt.Errorf("SDL2 audio output not available - build with -tags sdl2 to enable")
}

func (s *SDL2) Start() error {
	return fmt.Errorf("SDL2 audio output not available")
}

func (s *SDL2) Pump() error { return nil }
func (s *SDL2) Stop()       {}
func (s *SDL2) Close()      {}
