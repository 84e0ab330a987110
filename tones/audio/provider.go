package audio

import "io"

// Provider is what audio outputs and debug views consume from a mixer
type Provider interface {
	io.Reader

	// GetSamples renders samples for playback
	GetSamples(count int) []int16

	// Audio debugging controls

	ToggleChannel(channel int)
	ChannelStatus() []ChannelStatus
}

var _ Provider = (*Mixer)(nil)
