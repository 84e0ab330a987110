package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, Entry{Kind: KindTone, Frequency: 440, Duration: 100}, Tone(440, 100))
	assert.Equal(t, Entry{Kind: KindRest, Duration: 100}, Tone(0, 100), "zero frequency should be a rest")
	assert.Equal(t, Entry{Kind: KindTone, Frequency: 440, HighVolume: true, Duration: 5}, HighTone(440, 5))
	assert.Equal(t, Entry{Kind: KindRest, Duration: 5}, HighTone(0, 5), "high volume rest is still a rest")
	assert.Equal(t, KindEnd, Entry{}.Kind, "zero entry should terminate")
}

func TestSequence_At(t *testing.T) {
	seq := Sequence{Tone(440, 10)}

	assert.Equal(t, Tone(440, 10), seq.At(0))
	assert.Equal(t, End(), seq.At(1), "reading past the slice should act as End")
	assert.Equal(t, End(), seq.At(-1))
}

func TestSequence_Queries(t *testing.T) {
	tests := []struct {
		name       string
		seq        Sequence
		terminated bool
		loops      bool
		total      uint32
	}{
		{"empty", Sequence{}, false, false, 0},
		{"unterminated", Sequence{Tone(440, 10), Rest(5)}, false, false, 15},
		{"ends", Sequence{Tone(440, 10), End(), Tone(880, 99)}, true, false, 10},
		{"repeats", Sequence{Tone(440, 10), HighTone(880, 20), Repeat()}, true, true, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.terminated, tt.seq.Terminated())
			assert.Equal(t, tt.loops, tt.seq.Loops())
			assert.Equal(t, tt.total, tt.seq.TotalDuration())
		})
	}
}

func TestFromWords(t *testing.T) {
	assert.Equal(t, End(), FromWords(WordEnd, 100))
	assert.Equal(t, Repeat(), FromWords(WordRepeat, 100))
	assert.Equal(t, Rest(100), FromWords(0, 100))
	assert.Equal(t, Tone(1000, 100), FromWords(1000, 100))
	assert.Equal(t, HighTone(1000, 100), FromWords(1000|HighVolumeBit, 100))
}

func TestDecode(t *testing.T) {
	seq, err := Decode([]uint16{440, 100, 0, 50, 880 | HighVolumeBit, 25, WordRepeat})
	require.NoError(t, err)
	assert.Equal(t, Sequence{Tone(440, 100), Rest(50), HighTone(880, 25), Repeat()}, seq)

	seq, err = Decode([]uint16{440, 100, WordEnd, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, Sequence{Tone(440, 100), End()}, seq, "words after the marker are dropped")

	_, err = Decode([]uint16{440, 100})
	assert.ErrorIs(t, err, ErrMissingTerminator)

	_, err = Decode([]uint16{440})
	assert.ErrorIs(t, err, ErrMissingDuration)

	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrMissingTerminator)
}

func TestEncode(t *testing.T) {
	seq := Sequence{Tone(440, 100), Rest(50), HighTone(880, 25), Repeat()}
	assert.Equal(t, []uint16{440, 100, 0, 50, 880 | HighVolumeBit, 25, WordRepeat}, seq.Encode())

	unterminated := Sequence{Tone(262, 10)}
	assert.Equal(t, []uint16{262, 10, WordEnd}, unterminated.Encode(), "encode should add the end marker")

	highRest := Sequence{{Kind: KindRest, HighVolume: true, Duration: 7}}
	assert.Equal(t, []uint16{0, 7, WordEnd}, highRest.Encode(), "a rest must never encode as the end marker")
}
