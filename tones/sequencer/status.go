package sequencer

import "github.com/valerio/go-tones/tones/audio"

// Status is a snapshot of the sequencer for front ends and logging
type Status struct {
	Playing    bool
	Silent     bool
	HighVolume bool
	Frequency  uint16
	Amplitude  uint8
	Remaining  int32
	Cursor     int
	Length     int
	VolumeMode VolumeMode
	HasChannel bool
}

// Status returns the current playback state
func (s *Sequencer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Playing:    s.playing,
		Silent:     s.silent,
		HighVolume: s.highVolume,
		Frequency:  s.frequency,
		Amplitude:  audio.AmplitudeSilent,
		Remaining:  s.remaining,
		Cursor:     s.cursor,
		Length:     len(s.seq),
		VolumeMode: s.volumeMode,
	}

	if ch := s.channel.Load(); ch != nil {
		st.HasChannel = true
		if ch.Enabled() {
			st.Amplitude = ch.Amplitude()
		}
	}
	return st
}
