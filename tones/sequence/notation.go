package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is wrapped by every notation parse error.
var ErrSyntax = errors.New("sequence: syntax error")

// Parse reads the text notation used on the command line:
//
//	a4:200 r:100 880h:50 c#5!:120 repeat
//
// Each token is <pitch>:<duration> or one of the markers "repeat" and "end".
// A pitch is a frequency in Hz, a note name, or "r"/"rest". A trailing 'h' or '!'
// on the pitch requests high volume. Tokens may be separated by spaces or commas.
func Parse(text string) (Sequence, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	seq := make(Sequence, 0, len(fields))
	for i, tok := range fields {
		e, err := parseToken(tok)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i+1, err)
		}
		seq = append(seq, e)
		if e.Kind == KindEnd || e.Kind == KindRepeat {
			if i != len(fields)-1 {
				return nil, fmt.Errorf("%w: %q must be the last token", ErrSyntax, tok)
			}
		}
	}
	return seq, nil
}

func parseToken(tok string) (Entry, error) {
	switch strings.ToLower(tok) {
	case "repeat":
		return Repeat(), nil
	case "end":
		return End(), nil
	}

	pitch, dur, ok := strings.Cut(tok, ":")
	if !ok {
		return Entry{}, fmt.Errorf("%w: expected <pitch>:<duration>, got %q", ErrSyntax, tok)
	}

	d, err := strconv.ParseUint(dur, 10, 16)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad duration %q", ErrSyntax, dur)
	}

	high := false
	if strings.HasSuffix(pitch, "h") || strings.HasSuffix(pitch, "H") || strings.HasSuffix(pitch, "!") {
		high = true
		pitch = pitch[:len(pitch)-1]
	}

	switch strings.ToLower(pitch) {
	case "r", "rest":
		return Rest(uint16(d)), nil
	}

	var freq uint16
	if n, err := strconv.ParseUint(pitch, 10, 16); err == nil {
		if n >= uint64(HighVolumeBit) {
			return Entry{}, fmt.Errorf("%w: frequency %d out of range", ErrSyntax, n)
		}
		freq = uint16(n)
	} else {
		freq, err = NoteFrequency(pitch)
		if err != nil {
			return Entry{}, err
		}
	}

	if high {
		return HighTone(freq, uint16(d)), nil
	}
	return Tone(freq, uint16(d)), nil
}

// String renders the sequence in the notation accepted by Parse.
func (s Sequence) String() string {
	parts := make([]string, 0, len(s))
	for _, e := range s {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, " ")
}

func (e Entry) String() string {
	switch e.Kind {
	case KindTone:
		if e.HighVolume {
			return fmt.Sprintf("%dh:%d", e.Frequency, e.Duration)
		}
		return fmt.Sprintf("%d:%d", e.Frequency, e.Duration)
	case KindRest:
		return fmt.Sprintf("r:%d", e.Duration)
	case KindRepeat:
		return "repeat"
	default:
		return "end"
	}
}
