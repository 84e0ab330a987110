package tones

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-tones/tones/audio"
	"github.com/valerio/go-tones/tones/backend"
	"github.com/valerio/go-tones/tones/input/action"
	"github.com/valerio/go-tones/tones/input/event"
	"github.com/valerio/go-tones/tones/output"
	"github.com/valerio/go-tones/tones/sequence"
	"github.com/valerio/go-tones/tones/sequencer"
	"github.com/valerio/go-tones/tones/timing"
)

// MockBackend is a test backend that returns predetermined events per frame
type MockBackend struct {
	script      map[int][]backend.InputEvent
	statuses    []sequencer.Status
	handled     []action.Action
	initErr     error
	updateErr   error
	initialized bool
	cleanedUp   bool
	updateCalls int
}

func (m *MockBackend) Init(config backend.Config) error {
	m.initialized = true
	return m.initErr
}

func (m *MockBackend) Update(status sequencer.Status) ([]backend.InputEvent, error) {
	m.updateCalls++
	m.statuses = append(m.statuses, status)
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.script[m.updateCalls], nil
}

func (m *MockBackend) Cleanup() error {
	m.cleanedUp = true
	return nil
}

func (m *MockBackend) HandleAction(act action.Action) {
	m.handled = append(m.handled, act)
}

func press(act action.Action) []backend.InputEvent {
	return []backend.InputEvent{{Action: act, Type: event.Press}}
}

func newTestPlayer(t *testing.T, mock *MockBackend) *Player {
	t.Helper()

	p, err := NewPlayer(Config{
		Title:   "test",
		Output:  output.KindNone,
		Backend: mock,
		Clock:   timing.NewFixedClockUnits(16),
		Limiter: timing.NewNoOpLimiter(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestNewPlayer_RequiresBackend(t *testing.T) {
	_, err := NewPlayer(Config{Output: output.KindNone})
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestNewPlayer_BackendInitFails(t *testing.T) {
	mock := &MockBackend{initErr: errors.New("no tty")}
	_, err := NewPlayer(Config{Output: output.KindNone, Backend: mock})
	assert.ErrorContains(t, err, "no tty")
}

func TestPlayer_PlaysSequenceToEnd(t *testing.T) {
	mock := &MockBackend{}
	p := newTestPlayer(t, mock)

	p.Load(sequence.Sequence{sequence.Tone(440, 50), sequence.End()})
	assert.True(t, p.Sequencer().Playing())

	// 50 units at 16 per frame: 34, 18, 2, then past the boundary
	for i := 0; i < 3; i++ {
		require.NoError(t, p.RunFrame())
		assert.True(t, p.Sequencer().Playing(), "frame %d", i+1)
	}
	require.NoError(t, p.RunFrame())
	assert.False(t, p.Sequencer().Playing())

	require.Len(t, mock.statuses, 4)
	assert.Equal(t, uint16(440), mock.statuses[0].Frequency)
	assert.Equal(t, int32(34), mock.statuses[0].Remaining)
	assert.Equal(t, 4, p.Frames())

	channels := p.Audio().ChannelStatus()
	require.Len(t, channels, audio.DefaultChannelCount)
	assert.False(t, channels[0].Enabled, "channel is disabled when the sequence ends")
}

func TestPlayer_RunUntilQuit(t *testing.T) {
	mock := &MockBackend{script: map[int][]backend.InputEvent{3: press(action.PlayerQuit)}}
	p := newTestPlayer(t, mock)

	require.NoError(t, p.Run())
	assert.Equal(t, 3, mock.updateCalls)
	assert.Equal(t, []action.Action{action.PlayerQuit}, mock.handled)
}

func TestPlayer_RunStopsOnBackendError(t *testing.T) {
	mock := &MockBackend{updateErr: errors.New("screen gone")}
	p := newTestPlayer(t, mock)

	err := p.Run()
	assert.ErrorContains(t, err, "screen gone")
	assert.Equal(t, 1, mock.updateCalls)
}

func TestPlayer_Actions(t *testing.T) {
	t.Run("mute applies from the next tone", func(t *testing.T) {
		mock := &MockBackend{script: map[int][]backend.InputEvent{1: press(action.PlayerMuteToggle)}}
		p := newTestPlayer(t, mock)
		p.Load(sequence.Sequence{sequence.Tone(440, 20), sequence.Tone(880, 20), sequence.End()})

		require.NoError(t, p.RunFrame())
		assert.True(t, p.Muted())
		assert.False(t, p.Sequencer().Status().Silent, "current tone keeps sounding")
		assert.NotEqual(t, int16(0), p.Audio().GetSamples(1)[0])

		require.NoError(t, p.RunFrame())
		st := p.Sequencer().Status()
		assert.Equal(t, uint16(880), st.Frequency)
		assert.True(t, st.Silent)
		assert.Equal(t, audio.AmplitudeSilent, st.Amplitude)
	})

	t.Run("stop and replay", func(t *testing.T) {
		mock := &MockBackend{script: map[int][]backend.InputEvent{
			1: press(action.PlayerStop),
			2: press(action.PlayerReplay),
		}}
		p := newTestPlayer(t, mock)
		p.Load(sequence.Sequence{sequence.Tone(440, 1000), sequence.End()})

		require.NoError(t, p.RunFrame())
		assert.False(t, p.Sequencer().Playing())

		require.NoError(t, p.RunFrame())
		st := p.Sequencer().Status()
		assert.True(t, st.Playing)
		assert.Equal(t, int32(1000), st.Remaining)
	})

	t.Run("volume mode cycles", func(t *testing.T) {
		mock := &MockBackend{script: map[int][]backend.InputEvent{1: press(action.PlayerVolumeModeCycle)}}
		p := newTestPlayer(t, mock)

		require.NoError(t, p.RunFrame())
		assert.Equal(t, sequencer.VolumeAlwaysNormal, p.Sequencer().VolumeMode())
	})

	t.Run("replay without a sequence does nothing", func(t *testing.T) {
		mock := &MockBackend{script: map[int][]backend.InputEvent{1: press(action.PlayerReplay)}}
		p := newTestPlayer(t, mock)

		require.NoError(t, p.RunFrame())
		assert.False(t, p.Sequencer().Playing())
	})
}

func TestPlayer_LoadPacked(t *testing.T) {
	p := newTestPlayer(t, &MockBackend{})

	require.NoError(t, p.LoadPacked([]uint16{262, 100, 0, 50, sequence.WordRepeat}))
	st := p.Sequencer().Status()
	assert.True(t, st.Playing)
	assert.Equal(t, uint16(262), st.Frequency)

	err := p.LoadPacked([]uint16{262})
	assert.ErrorIs(t, err, sequence.ErrMissingDuration)
}

func TestPlayer_CloseCleansUpBackend(t *testing.T) {
	mock := &MockBackend{}
	p, err := NewPlayer(Config{Output: output.KindNone, Backend: mock, Limiter: timing.NewNoOpLimiter()})
	require.NoError(t, err)
	p.Load(sequence.Sequence{sequence.Tone(440, 100), sequence.End()})

	require.NoError(t, p.Close())
	assert.True(t, mock.cleanedUp)
	assert.False(t, p.Sequencer().Playing())
}
