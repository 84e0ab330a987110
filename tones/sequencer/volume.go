package sequencer

import (
	"fmt"
	"strings"
)

// VolumeMode decides whether a tone plays at the low or the high amplitude
type VolumeMode uint8

const (
	// VolumeInTone uses each tone's own high volume flag
	VolumeInTone VolumeMode = iota
	// VolumeAlwaysNormal plays every tone at the low amplitude
	VolumeAlwaysNormal
	// VolumeAlwaysHigh plays every tone at the high amplitude
	VolumeAlwaysHigh
)

func (m VolumeMode) resolve(toneHigh bool) bool {
	switch m {
	case VolumeAlwaysNormal:
		return false
	case VolumeAlwaysHigh:
		return true
	default:
		return toneHigh
	}
}

// Next cycles through the modes in order
func (m VolumeMode) Next() VolumeMode {
	return (m + 1) % 3
}

func (m VolumeMode) String() string {
	switch m {
	case VolumeAlwaysNormal:
		return "normal"
	case VolumeAlwaysHigh:
		return "high"
	default:
		return "tone"
	}
}

// ParseVolumeMode accepts "tone", "normal" or "high"
func ParseVolumeMode(s string) (VolumeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tone", "in-tone":
		return VolumeInTone, nil
	case "normal", "always-normal":
		return VolumeAlwaysNormal, nil
	case "high", "always-high":
		return VolumeAlwaysHigh, nil
	}
	return VolumeInTone, fmt.Errorf("unknown volume mode %q (want tone, normal or high)", s)
}
