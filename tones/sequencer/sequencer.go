package sequencer

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/valerio/go-tones/tones/audio"
	"github.com/valerio/go-tones/tones/sequence"
	"github.com/valerio/go-tones/tones/timing"
)

// ChannelSource hands out sound channels. *audio.Mixer implements it.
type ChannelSource interface {
	Acquire(h audio.Handler) (*audio.Channel, error)
}

// Sequencer plays one tone sequence at a time on a single mixer channel.
//
// The host drives it by calling Tick (or the mixer's Update) once per frame;
// each tone sounds until its duration has been consumed, then the next entry
// is read and the channel is reprogrammed.
type Sequencer struct {
	// mu guards the playback state. The channel pointer lives outside it so the
	// mixer can revoke it from Release without taking the lock.
	mu      sync.Mutex
	channel atomic.Pointer[audio.Channel]

	source        ChannelSource
	outputEnabled func() bool
	clock         timing.Clock

	inline [sequence.MaxInlineTones + 1]sequence.Entry
	seq    sequence.Sequence
	cursor int

	playing    bool
	silent     bool
	highVolume bool
	frequency  uint16
	remaining  int32
	volumeMode VolumeMode
}

var _ audio.Handler = (*Sequencer)(nil)

// New creates a sequencer that takes its channel from source.
// outputEnabled is polled once per tone, false forces the tone silent; nil means always enabled.
// clock is read once per Update; nil means a fixed 60 Hz frame clock.
func New(source ChannelSource, outputEnabled func() bool, clock timing.Clock) *Sequencer {
	if outputEnabled == nil {
		outputEnabled = func() bool { return true }
	}
	if clock == nil {
		clock = timing.NewFixedClock(timing.DefaultFPS)
	}

	s := &Sequencer{
		source:        source,
		outputEnabled: outputEnabled,
		clock:         clock,
	}
	s.inline[sequence.MaxInlineTones] = sequence.End()
	return s
}

// Tone plays a single tone. Frequencies use the packed word encoding, so the
// high volume bit and the End/Repeat marker words are honoured.
func (s *Sequencer) Tone(freq, dur uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inline[0] = sequence.FromWords(freq, dur)
	s.inline[1] = sequence.End()
	s.startLocked(s.inline[:2])
}

// Tone2 plays two tones in succession.
func (s *Sequencer) Tone2(freq1, dur1, freq2, dur2 uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inline[0] = sequence.FromWords(freq1, dur1)
	s.inline[1] = sequence.FromWords(freq2, dur2)
	s.inline[2] = sequence.End()
	s.startLocked(s.inline[:3])
}

// Tone3 plays three tones in succession.
func (s *Sequencer) Tone3(freq1, dur1, freq2, dur2, freq3, dur3 uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inline[0] = sequence.FromWords(freq1, dur1)
	s.inline[1] = sequence.FromWords(freq2, dur2)
	s.inline[2] = sequence.FromWords(freq3, dur3)
	// inline[3] is the End set in New, it never changes
	s.startLocked(s.inline[:])
}

// Play starts seq from its first entry, replacing whatever was playing.
// The sequence is referenced, not copied: the caller must not modify it during playback.
func (s *Sequencer) Play(seq sequence.Sequence) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.startLocked(seq)
}

// PlayPacked decodes a packed word buffer and plays it.
func (s *Sequencer) PlayPacked(words []uint16) error {
	seq, err := sequence.Decode(words)
	if err != nil {
		return err
	}

	s.Play(seq)
	return nil
}

// Stop silences the channel and ends playback. Safe to call when nothing is playing.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
}

// SetVolumeMode changes how tone volume is chosen, starting with the next tone.
func (s *Sequencer) SetVolumeMode(mode VolumeMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volumeMode = mode
}

// VolumeMode returns the current volume mode
func (s *Sequencer) VolumeMode() VolumeMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.volumeMode
}

// Playing reports whether a sequence is active. Rests count as playing.
func (s *Sequencer) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.playing
}

// Tick consumes elapsed time units of the current tone and moves to the next
// entry once the remaining duration reaches zero.
func (s *Sequencer) Tick(elapsed int32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.channel.Load() == nil {
		s.stopLocked()
		return
	}
	if !s.playing {
		return
	}

	s.remaining -= elapsed
	if s.remaining <= 0 {
		s.advanceLocked()
	}
}

// Update implements audio.Handler: one frame passed, read the clock and tick.
func (s *Sequencer) Update() {
	s.Tick(s.clock.Elapsed())
}

// Rewind implements audio.Handler. Tones are generated from channel fields,
// there is no sample stream position to restore.
func (s *Sequencer) Rewind() {}

// Release implements audio.Handler: the mixer gave ch to someone else.
func (s *Sequencer) Release(ch *audio.Channel) {
	if s.channel.CompareAndSwap(ch, nil) {
		slog.Debug("Sound channel reclaimed by another handler")
	}
}

func (s *Sequencer) startLocked(seq sequence.Sequence) {
	s.seq = seq
	s.cursor = 0
	s.advanceLocked()
}

func (s *Sequencer) next() sequence.Entry {
	e := s.seq.At(s.cursor)
	s.cursor++
	return e
}

func (s *Sequencer) stopLocked() {
	if ch := s.channel.Load(); ch != nil {
		ch.Disable()
	}
	s.playing = false
}

func (s *Sequencer) advanceLocked() {
	e := s.next()
	if e.Kind == sequence.KindEnd {
		s.stopLocked()
		return
	}

	if e.Kind == sequence.KindRepeat {
		s.cursor = 0
		e = s.next()
		if e.Kind == sequence.KindEnd || e.Kind == sequence.KindRepeat {
			// nothing playable before the marker, looping would spin forever
			slog.Debug("Sequence repeats without any tones, stopping")
			s.stopLocked()
			return
		}
	}

	high := s.volumeMode.resolve(e.HighVolume)
	freq := e.Frequency &^ sequence.HighVolumeBit
	if e.Kind == sequence.KindRest {
		freq = 0
	}
	enabled := s.outputEnabled()
	silent := freq == 0 || !enabled

	ch := s.acquireLocked()
	if ch == nil {
		s.stopLocked()
		return
	}

	ch.SetTotal(repeatCount(freq))
	ch.ResetIndex()
	switch {
	case silent:
		ch.SetAmplitude(audio.AmplitudeSilent)
	case high:
		ch.SetAmplitude(audio.AmplitudeHigh)
	default:
		ch.SetAmplitude(audio.AmplitudeLow)
	}
	ch.Enable()

	s.playing = true
	s.silent = silent
	s.highVolume = high
	s.frequency = freq
	s.remaining = int32(e.Duration)

	slog.Debug("Tone", "freq", freq, "duration", e.Duration, "silent", silent, "high", high, "cursor", s.cursor)
}

func (s *Sequencer) acquireLocked() *audio.Channel {
	if ch := s.channel.Load(); ch != nil {
		return ch
	}
	if s.source == nil {
		return nil
	}

	ch, err := s.source.Acquire(s)
	if err != nil {
		slog.Warn("No sound channel available, playback stopped", "error", err)
		return nil
	}
	s.channel.Store(ch)
	return ch
}

// repeatCount converts a frequency into the channel's samples per half period.
// Zero frequency is a rest and must never reach the division.
func repeatCount(freq uint16) uint32 {
	if freq == 0 {
		return 0
	}
	total := audio.PatternRate / uint32(freq)
	if total == 0 {
		total = 1
	}
	return total
}
