package audio

import (
	"encoding/binary"
	"errors"
	"log/slog"
	"sync"
)

// ErrNoChannel is returned by Acquire when every channel slot is in use
var ErrNoChannel = errors.New("audio: no free channel")

// Handler is attached to a channel slot by Acquire and notified by the mixer
type Handler interface {
	// Update is called once per host frame while the handler owns a slot
	Update()

	// Rewind is called when the host restarts audio output
	Rewind()

	// Release is called when the slot holding ch is handed to another handler
	Release(ch *Channel)
}

// Mixer owns a fixed set of channel slots and renders them to PCM.
// It replaces a global sound channel: the host creates one and passes it to its users.
type Mixer struct {
	// mu protects slot ownership. Rendering only touches channel atomics.
	mu       sync.Mutex
	channels []*Channel
	handlers []Handler
	pending  []Handler // scratch for dispatching callbacks outside mu

	renderMu sync.Mutex
}

// NewMixer creates a mixer with the given number of channel slots
func NewMixer(channels int) *Mixer {
	if channels <= 0 {
		channels = DefaultChannelCount
	}

	m := &Mixer{
		channels: make([]*Channel, channels),
		handlers: make([]Handler, channels),
		pending:  make([]Handler, 0, channels),
	}
	for i := range m.channels {
		m.channels[i] = &Channel{}
	}
	return m
}

// Acquire attaches h to the first disabled channel and returns it enabled and silent.
// The slot's previous handler, if any, is told via Release.
func (m *Mixer) Acquire(h Handler) (*Channel, error) {
	m.mu.Lock()
	for i, ch := range m.channels {
		if ch.Enabled() {
			continue
		}

		prev := m.handlers[i]
		m.handlers[i] = h
		ch.reset()
		ch.Enable()
		m.mu.Unlock()

		if prev != nil && prev != h {
			prev.Release(ch)
		}
		slog.Debug("Channel acquired", "slot", i)
		return ch, nil
	}
	m.mu.Unlock()

	return nil, ErrNoChannel
}

// Update notifies every attached handler that a frame has passed
func (m *Mixer) Update() {
	for _, h := range m.attached() {
		h.Update()
	}
}

// Rewind notifies every attached handler that output restarted
func (m *Mixer) Rewind() {
	for _, h := range m.attached() {
		h.Rewind()
	}
}

func (m *Mixer) attached() []Handler {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = m.pending[:0]
	for _, h := range m.handlers {
		if h != nil {
			m.pending = append(m.pending, h)
		}
	}
	return m.pending
}

// Channel returns the channel in slot i, or nil if out of range
func (m *Mixer) Channel(i int) *Channel {
	if i < 0 || i >= len(m.channels) {
		return nil
	}
	return m.channels[i]
}

// ChannelCount returns the number of slots
func (m *Mixer) ChannelCount() int {
	return len(m.channels)
}

func (m *Mixer) mixSample() int16 {
	var mixed int32
	for _, ch := range m.channels {
		mixed += ch.next()
	}

	if mixed > maxSampleValue {
		mixed = maxSampleValue
	} else if mixed < minSampleValue {
		mixed = minSampleValue
	}
	return int16(mixed)
}

// Read renders mono signed 16-bit little endian PCM at SampleRate.
// It never blocks and never returns an error, so it can back an audio player directly.
func (m *Mixer) Read(p []byte) (int, error) {
	m.renderMu.Lock()
	defer m.renderMu.Unlock()

	n := len(p) / bytesPerSample
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(p[i*bytesPerSample:], uint16(m.mixSample()))
	}
	return n * bytesPerSample, nil
}

// GetSamples renders count samples
func (m *Mixer) GetSamples(count int) []int16 {
	m.renderMu.Lock()
	defer m.renderMu.Unlock()

	samples := make([]int16, count)
	for i := range samples {
		samples[i] = m.mixSample()
	}
	return samples
}

// MuteChannel mutes or unmutes a channel slot for debugging
func (m *Mixer) MuteChannel(channel int, muted bool) {
	if ch := m.Channel(channel); ch != nil {
		ch.muted.Store(muted)
	}
}

// ToggleChannel toggles muting for a channel slot
func (m *Mixer) ToggleChannel(channel int) {
	if ch := m.Channel(channel); ch != nil {
		ch.muted.Store(!ch.muted.Load())
	}
}

// ChannelStatus returns a snapshot of every slot
func (m *Mixer) ChannelStatus() []ChannelStatus {
	status := make([]ChannelStatus, len(m.channels))
	for i, ch := range m.channels {
		status[i] = ch.Snapshot()
	}
	return status
}
