//go:build sdl2

package output

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	sdlSamplesPerCallback = 1024
	// keep roughly this many bytes queued on the device
	sdlQueueWatermark = sdlSamplesPerCallback * 4 * 2
)

// SDL2 queues PCM on an SDL audio device. It has no pull goroutine,
// the frame loop feeds it through Pump.
type SDL2 struct {
	src     io.Reader
	device  sdl.AudioDeviceID
	buf     []byte
	started bool
}

func NewSDL2(src io.Reader, sampleRate int) (*SDL2, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL audio: %w", err)
	}

	desired := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  sdlSamplesPerCallback,
	}
	device, err := sdl.OpenAudioDevice("", false, desired, nil, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, fmt.Errorf("failed to open SDL audio device: %w", err)
	}

	return &SDL2{
		src:    src,
		device: device,
		buf:    make([]byte, sdlSamplesPerCallback*2),
	}, nil
}

func (s *SDL2) Start() error {
	if !s.started {
		sdl.PauseAudioDevice(s.device, false)
		s.started = true
		slog.Debug("SDL2 audio output started", "device", s.device)
	}
	return s.Pump()
}

// Pump tops up the device queue from the source
func (s *SDL2) Pump() error {
	if !s.started {
		return nil
	}

	for sdl.GetQueuedAudioSize(s.device) < sdlQueueWatermark {
		n, err := s.src.Read(s.buf)
		if err != nil {
			return fmt.Errorf("failed to render audio: %w", err)
		}
		if n == 0 {
			return nil
		}
		if err := sdl.QueueAudio(s.device, s.buf[:n]); err != nil {
			return fmt.Errorf("failed to queue audio: %w", err)
		}
	}
	return nil
}

func (s *SDL2) Stop() {
	if s.started {
		sdl.PauseAudioDevice(s.device, true)
		sdl.ClearQueuedAudio(s.device)
		s.started = false
	}
}

func (s *SDL2) Close() {
	s.Stop()
	if s.device != 0 {
		sdl.CloseAudioDevice(s.device)
		s.device = 0
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
	}
}
