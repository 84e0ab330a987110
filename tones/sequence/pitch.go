package sequence

import (
	"fmt"
	"math"
	"strings"
)

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteOffsets = map[byte]int{'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11}

const (
	minOctave = 0
	maxOctave = 9
	a4Hz      = 440.0
	a4Midi    = 69
)

// NoteFrequency returns the equal-tempered frequency in Hz for a note name such as
// "a4", "C#5" or "bb3". Octaves 0 through 9 are supported.
func NoteFrequency(name string) (uint16, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) < 2 {
		return 0, fmt.Errorf("%w: bad note %q", ErrSyntax, name)
	}

	offset, ok := noteOffsets[n[0]]
	if !ok {
		return 0, fmt.Errorf("%w: bad note %q", ErrSyntax, name)
	}

	rest := n[1:]
	switch rest[0] {
	case '#', 's':
		offset++
		rest = rest[1:]
	case 'b':
		offset--
		rest = rest[1:]
	}

	if len(rest) != 1 || rest[0] < '0' || rest[0] > '9' {
		return 0, fmt.Errorf("%w: bad octave in note %q", ErrSyntax, name)
	}
	octave := int(rest[0] - '0')
	if octave < minOctave || octave > maxOctave {
		return 0, fmt.Errorf("%w: octave out of range in note %q", ErrSyntax, name)
	}

	midi := (octave+1)*12 + offset
	hz := a4Hz * math.Pow(2, float64(midi-a4Midi)/12)
	return uint16(math.Round(hz)), nil
}

// NoteName returns the nearest note name for a frequency, or "--" outside the audible range.
func NoteName(freq float64) string {
	if freq < 20 || freq > 20000 {
		return "--"
	}

	halfSteps := 12.0 * math.Log2(freq/a4Hz)
	midi := int(math.Round(halfSteps)) + a4Midi
	noteIndex := midi % 12
	octave := midi/12 - 1
	if noteIndex < 0 {
		noteIndex += 12
		octave--
	}

	return fmt.Sprintf("%s%d", noteNames[noteIndex], octave)
}
