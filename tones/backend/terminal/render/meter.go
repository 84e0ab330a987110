package render

import (
	"strings"

	"github.com/valerio/go-tones/tones/audio"
)

// AmplitudeBar draws a channel amplitude as a bar of the given width
func AmplitudeBar(amplitude uint8, width int) string {
	if width <= 0 {
		return ""
	}

	filled := int(amplitude) * width / int(audio.AmplitudeHigh)
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("·", width-filled)
}

// ProgressBar draws how far through a sequence playback is
func ProgressBar(pos, length, width int) string {
	if width <= 0 {
		return ""
	}
	if length <= 0 {
		return strings.Repeat("·", width)
	}

	filled := pos * width / length
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("▀", filled) + strings.Repeat("·", width-filled)
}
