package audio

import "sync/atomic"

// Channel is a single output slot of the mixer.
//
// The owner programs it from the update loop while the mixer renders it from the
// audio output goroutine, so every shared field is atomic. polarity is only ever
// touched by the render path.
type Channel struct {
	enabled   atomic.Bool
	total     atomic.Uint32 // samples per half period, 0 = no waveform
	index     atomic.Uint32 // position within the current half period
	amplitude atomic.Uint32
	muted     atomic.Bool

	polarity bool
}

// ChannelStatus is a point-in-time copy of a channel's fields
type ChannelStatus struct {
	Enabled   bool
	Total     uint32
	Amplitude uint8
	Frequency float64
	Muted     bool
}

func (c *Channel) Enable()       { c.enabled.Store(true) }
func (c *Channel) Disable()      { c.enabled.Store(false) }
func (c *Channel) Enabled() bool { return c.enabled.Load() }

// SetTotal sets the repeat count: the number of output samples between polarity flips.
func (c *Channel) SetTotal(total uint32) { c.total.Store(total) }
func (c *Channel) Total() uint32         { return c.total.Load() }

// ResetIndex restarts the waveform from the beginning of a half period.
func (c *Channel) ResetIndex() { c.index.Store(0) }

func (c *Channel) SetAmplitude(level uint8) { c.amplitude.Store(uint32(level)) }
func (c *Channel) Amplitude() uint8         { return uint8(c.amplitude.Load()) }

// Snapshot returns the current channel fields
func (c *Channel) Snapshot() ChannelStatus {
	s := ChannelStatus{
		Enabled:   c.enabled.Load(),
		Total:     c.total.Load(),
		Amplitude: uint8(c.amplitude.Load()),
		Muted:     c.muted.Load(),
	}
	if s.Total > 0 {
		s.Frequency = float64(SampleRate) / float64(2*s.Total)
	}
	return s
}

func (c *Channel) reset() {
	c.total.Store(0)
	c.index.Store(0)
	c.amplitude.Store(uint32(AmplitudeSilent))
}

// next renders one sample of the channel's square wave
func (c *Channel) next() int32 {
	if !c.enabled.Load() || c.muted.Load() {
		return 0
	}

	total := c.total.Load()
	amp := int32(c.amplitude.Load())
	if total == 0 || amp == 0 {
		return 0
	}

	if c.index.Add(1) >= total {
		c.index.Store(0)
		c.polarity = !c.polarity
	}

	if c.polarity {
		return amp * sampleScale
	}
	return -amp * sampleScale
}
