package render

import (
	"log/slog"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-tones/tones/audio"
)

func TestLogBuffer_Wraps(t *testing.T) {
	lb := NewLogBuffer(3)
	for _, msg := range []string{"a", "b", "c", "d"} {
		lb.Add(LogEntry{Message: msg})
	}

	recent := lb.GetRecent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Message)
	assert.Equal(t, "b", recent[2].Message)

	assert.Len(t, lb.GetRecent(2), 2)

	lb.Clear()
	assert.Nil(t, lb.GetRecent(0))
}

func TestLogBufferHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	var level slog.LevelVar
	level.Set(slog.LevelInfo)

	logger := slog.New(NewLogBufferHandler(lb, &level)).With("seq", "intro")
	logger.Debug("hidden")
	logger.Info("Tone", "freq", 440)

	recent := lb.GetRecent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, "Tone seq=intro freq=440", recent[0].Message)

	level.Set(slog.LevelDebug)
	logger.Debug("shown")
	assert.Len(t, lb.GetRecent(0), 2)
}

func TestFormatLogEntry(t *testing.T) {
	entry := LogEntry{
		Time:    time.Date(2024, 1, 1, 12, 30, 5, 0, time.UTC),
		Level:   slog.LevelWarn,
		Message: "No sound channel available",
	}
	assert.Equal(t, "12:30:05 [WRN] No sound channel available", FormatLogEntry(entry))
}

func TestBars(t *testing.T) {
	assert.Equal(t, 10, utf8.RuneCountInString(AmplitudeBar(audio.AmplitudeLow, 10)))
	assert.Equal(t, "████", AmplitudeBar(audio.AmplitudeHigh, 4))
	assert.Equal(t, "····", AmplitudeBar(audio.AmplitudeSilent, 4))

	assert.Equal(t, "▀▀··", ProgressBar(1, 2, 4))
	assert.Equal(t, "····", ProgressBar(3, 0, 4))
	assert.Equal(t, "", ProgressBar(1, 2, 0))
}
