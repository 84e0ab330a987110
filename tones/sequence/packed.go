package sequence

import "errors"

// Packed word format: a flat array of [freq, dur, freq, dur, ..., WordEnd].
// The top bit of a frequency word requests high volume for that tone.
const (
	WordEnd       uint16 = 0x8000
	WordRepeat    uint16 = 0x8001
	HighVolumeBit uint16 = 0x8000

	// MaxInlineTones is the number of tones the inline play entry points can hold.
	MaxInlineTones = 3
)

var (
	ErrMissingTerminator = errors.New("sequence: packed data has no end or repeat marker")
	ErrMissingDuration   = errors.New("sequence: tone without a duration word")
)

// FromWords converts one packed (freq, dur) pair into an entry.
// The marker words map to End and Repeat, the duration is then ignored.
func FromWords(freq, dur uint16) Entry {
	switch freq {
	case WordEnd:
		return End()
	case WordRepeat:
		return Repeat()
	}
	if freq&HighVolumeBit != 0 {
		return HighTone(freq, dur)
	}
	return Tone(freq, dur)
}

// Decode converts a packed word buffer into a Sequence.
// Words after the first End or Repeat marker are never reached during playback and are dropped.
func Decode(words []uint16) (Sequence, error) {
	seq := make(Sequence, 0, len(words)/2+1)
	for i := 0; i < len(words); i += 2 {
		switch words[i] {
		case WordEnd:
			return append(seq, End()), nil
		case WordRepeat:
			return append(seq, Repeat()), nil
		}
		if i+1 >= len(words) {
			return nil, ErrMissingDuration
		}
		seq = append(seq, FromWords(words[i], words[i+1]))
	}
	return nil, ErrMissingTerminator
}

// Encode converts the sequence into the packed word format, always ending with a marker.
// High volume rests encode as plain rests since 0|HighVolumeBit is the end marker.
func (s Sequence) Encode() []uint16 {
	words := make([]uint16, 0, len(s)*2+1)
	for _, e := range s {
		switch e.Kind {
		case KindEnd:
			return append(words, WordEnd)
		case KindRepeat:
			return append(words, WordRepeat)
		case KindRest:
			words = append(words, 0, e.Duration)
		case KindTone:
			freq := e.Frequency &^ HighVolumeBit
			if e.HighVolume {
				freq |= HighVolumeBit
			}
			words = append(words, freq, e.Duration)
		}
	}
	return append(words, WordEnd)
}
