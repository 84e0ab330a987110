package sequence

// Kind identifies what a sequence entry does when the cursor reaches it
type Kind uint8

const (
	// KindEnd terminates playback. It is the zero value so an empty Entry is always a stop.
	KindEnd Kind = iota
	KindTone
	KindRest
	KindRepeat
)

func (k Kind) String() string {
	switch k {
	case KindTone:
		return "tone"
	case KindRest:
		return "rest"
	case KindRepeat:
		return "repeat"
	default:
		return "end"
	}
}

// Entry is a single step of a sequence.
// Frequency and HighVolume are only meaningful for KindTone, Duration for KindTone and KindRest.
type Entry struct {
	Kind       Kind
	Frequency  uint16 // Hz, never carries the packed high volume bit
	HighVolume bool
	Duration   uint16 // frame time units (milliseconds)
}

// Sequence is an ordered list of entries. Reaching the end of the slice behaves like an End entry.
type Sequence []Entry

// Tone returns a normal volume tone. A zero frequency yields a rest.
func Tone(freq, dur uint16) Entry {
	freq &^= HighVolumeBit
	if freq == 0 {
		return Rest(dur)
	}
	return Entry{Kind: KindTone, Frequency: freq, Duration: dur}
}

// HighTone returns a tone that plays at high volume unless the volume mode overrides it.
func HighTone(freq, dur uint16) Entry {
	e := Tone(freq, dur)
	if e.Kind == KindTone {
		e.HighVolume = true
	}
	return e
}

// Rest returns a silent entry that still takes dur time units.
func Rest(dur uint16) Entry {
	return Entry{Kind: KindRest, Duration: dur}
}

// Repeat returns a marker that loops playback back to the first entry.
func Repeat() Entry {
	return Entry{Kind: KindRepeat}
}

// End returns the terminating marker.
func End() Entry {
	return Entry{Kind: KindEnd}
}

// At returns the entry at index i, or End when i is outside the sequence.
func (s Sequence) At(i int) Entry {
	if i < 0 || i >= len(s) {
		return End()
	}
	return s[i]
}

// Terminated reports whether the sequence contains an explicit End or Repeat marker.
func (s Sequence) Terminated() bool {
	for _, e := range s {
		if e.Kind == KindEnd || e.Kind == KindRepeat {
			return true
		}
	}
	return false
}

// Loops reports whether playback reaches a Repeat marker before stopping.
func (s Sequence) Loops() bool {
	for _, e := range s {
		switch e.Kind {
		case KindRepeat:
			return true
		case KindEnd:
			return false
		}
	}
	return false
}

// TotalDuration sums the durations of one pass through the sequence,
// stopping at the first End or Repeat marker.
func (s Sequence) TotalDuration() uint32 {
	var total uint32
	for _, e := range s {
		if e.Kind == KindEnd || e.Kind == KindRepeat {
			break
		}
		total += uint32(e.Duration)
	}
	return total
}
