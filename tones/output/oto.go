//go:build !headless

package output

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const otoBufferSize = 50 * time.Millisecond

// Oto plays PCM through an oto context. The oto player pulls from the
// source on its own goroutine.
type Oto struct {
	ctx     *oto.Context
	player  *oto.Player
	started bool
	mutex   sync.Mutex // Only for setup/control operations
}

func NewOto(src io.Reader, sampleRate int) (*Oto, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   otoBufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio context: %w", err)
	}
	<-ready

	return &Oto{
		ctx:    ctx,
		player: ctx.NewPlayer(src),
	}, nil
}

func (o *Oto) Start() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player == nil {
		return fmt.Errorf("audio output closed")
	}
	if !o.started {
		o.player.Play()
		o.started = true
		slog.Debug("Oto audio output started")
	}
	return nil
}

func (o *Oto) Stop() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.started && o.player != nil {
		o.player.Pause()
		o.started = false
	}
}

func (o *Oto) Close() {
	o.Stop()
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player != nil {
		if err := o.player.Close(); err != nil {
			slog.Warn("Failed to close audio player", "error", err)
		}
		o.player = nil
	}
}

func (o *Oto) IsStarted() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.started
}
