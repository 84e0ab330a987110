package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimePerFrame(t *testing.T) {
	assert.Equal(t, int32(17), TimePerFrame(60))
	assert.Equal(t, int32(40), TimePerFrame(25))
	assert.Equal(t, int32(17), TimePerFrame(0), "non-positive fps falls back to the default")
	assert.Equal(t, 40*time.Millisecond, FrameDuration(25))
}

func TestFixedClock(t *testing.T) {
	c := NewFixedClock(25)
	assert.Equal(t, int32(40), c.Elapsed())
	assert.Equal(t, int32(40), c.Elapsed())

	assert.Equal(t, int32(7), NewFixedClockUnits(7).Elapsed())
}

func TestWallClock(t *testing.T) {
	base := time.Unix(1000, 0)
	times := []time.Time{
		base,
		base.Add(16*time.Millisecond + 600*time.Microsecond),
		base.Add(33*time.Millisecond + 200*time.Microsecond),
		base.Add(33*time.Millisecond + 200*time.Microsecond),
	}
	i := 0
	c := &WallClock{now: func() time.Time {
		now := times[i]
		i++
		return now
	}}

	assert.Equal(t, int32(0), c.Elapsed(), "first call starts the measurement")
	assert.Equal(t, int32(16), c.Elapsed())
	assert.Equal(t, int32(17), c.Elapsed(), "carried 0.6ms plus 16.6ms")
	assert.Equal(t, int32(0), c.Elapsed())
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()
	start := time.Now()
	for i := 0; i < 100; i++ {
		l.WaitForNextFrame()
	}
	l.Reset()
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
