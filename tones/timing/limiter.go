package timing

import (
	"math"
	"time"
)

// Limiter controls the frame rate of the host update loop.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// DefaultFPS is the canonical frame rate durations are scaled against.
const DefaultFPS = 60.0

// FrameDuration returns the target duration of a single frame at fps.
func FrameDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Duration(float64(time.Second) / fps)
}

// TimePerFrame returns the number of time units (milliseconds) a frame lasts at fps.
func TimePerFrame(fps float64) int32 {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return int32(math.Round(1000 / fps))
}
