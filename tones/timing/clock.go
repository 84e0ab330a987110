package timing

import "time"

// Clock reports how many time units (milliseconds) passed since it was last asked.
type Clock interface {
	Elapsed() int32
}

// FixedClock reports the same elapsed time every frame, for deterministic playback.
type FixedClock struct {
	perFrame int32
}

func NewFixedClock(fps float64) *FixedClock {
	return &FixedClock{perFrame: TimePerFrame(fps)}
}

// NewFixedClockUnits returns a clock that advances by exactly units per call.
func NewFixedClockUnits(units int32) *FixedClock {
	return &FixedClock{perFrame: units}
}

func (c *FixedClock) Elapsed() int32 {
	return c.perFrame
}

// WallClock measures real time between calls.
// Sub-millisecond remainders are carried over so they don't drift.
type WallClock struct {
	now   func() time.Time
	last  time.Time
	carry time.Duration
}

func NewWallClock() *WallClock {
	return &WallClock{now: time.Now}
}

// Elapsed returns 0 on the first call, which only starts the measurement.
func (c *WallClock) Elapsed() int32 {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}

	d := t.Sub(c.last) + c.carry
	c.last = t
	if d < 0 {
		c.carry = 0
		return 0
	}

	ms := d / time.Millisecond
	c.carry = d - ms*time.Millisecond
	return int32(ms)
}
