package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-tones/tones/audio"
	"github.com/valerio/go-tones/tones/backend"
	"github.com/valerio/go-tones/tones/backend/terminal/render"
	"github.com/valerio/go-tones/tones/input"
	"github.com/valerio/go-tones/tones/input/action"
	"github.com/valerio/go-tones/tones/input/event"
	"github.com/valerio/go-tones/tones/sequence"
	"github.com/valerio/go-tones/tones/sequencer"
)

const (
	statusHeight  = 9
	barWidth      = 24
	minTermWidth  = 60
	minTermHeight = 16
	logCapacity   = 100
)

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	running    bool
	logBuffer  *render.LogBuffer
	logLevel   slog.LevelVar
	config     backend.Config
	eventQueue []backend.InputEvent
	signals    chan os.Signal
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	return t.init(screen, config)
}

func (t *Backend) init(screen tcell.Screen, config backend.Config) error {
	t.config = config
	t.screen = screen
	t.running = true
	t.logLevel.Set(config.LogLevel)

	// Logs go to the log pane, stderr belongs to the screen now
	t.logBuffer = render.NewLogBuffer(logCapacity)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, &t.logLevel)))
	slog.Info("Terminal backend initialized", "title", config.Title)

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	// Set up signal handling for graceful shutdown
	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	return nil
}

// Update renders the player status and processes events
func (t *Backend) Update(status sequencer.Status) ([]backend.InputEvent, error) {
	select {
	case <-t.signals:
		t.running = false
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.PlayerQuit, Type: event.Press})
	default:
	}

	// Poll for input events synchronously
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	events := t.eventQueue
	t.eventQueue = nil
	for _, evt := range events {
		slog.Debug("UI event", "action", evt.Action, "type", evt.Type)
	}

	if !t.running {
		return events, nil
	}

	t.render(status)
	t.screen.Show()

	return events, nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEnter:  "Enter",
	tcell.KeyEscape: "Escape",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)
	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}

	mapping[tcell.KeyCtrlC] = action.PlayerQuit
	return mapping
}

// keyMapping maps tcell keys to actions
var keyMapping = buildKeyMapping()

func runeKeyName(r rune) string {
	if r == ' ' {
		return "Space"
	}
	return string(r)
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = input.GetDefaultMapping(runeKeyName(ev.Rune()))
	}
	if !ok {
		return
	}

	if act == action.PlayerQuit {
		t.running = false
	}
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

var logLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

// changeLogLevel moves the log filter; positive directions show more
func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel.Level()

	idx := 1
	for i, l := range logLevels {
		if l == oldLevel {
			idx = i
		}
	}
	idx -= direction
	if idx < 0 {
		idx = 0
	}
	if idx >= len(logLevels) {
		idx = len(logLevels) - 1
	}

	t.logLevel.Set(logLevels[idx])
	if oldLevel != logLevels[idx] {
		slog.Info("Log filter changed", "from", oldLevel, "to", logLevels[idx])
	}
}

func (t *Backend) render(status sequencer.Status) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		t.drawText(0, termHeight/2, termWidth, style,
			fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight))
		return
	}

	t.drawBorders(termWidth, termHeight)
	t.drawStatus(2, 1, termWidth-4, status)
	t.drawLogs(2, statusHeight+2, termWidth-4, termHeight-statusHeight-4)
}

func (t *Backend) drawBorders(termWidth, termHeight int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for x := 0; x < termWidth; x++ {
		t.screen.SetContent(x, statusHeight+1, '─', nil, borderStyle)
	}

	t.drawText(1, 0, termWidth-1, titleStyle, fmt.Sprintf(" %s ", t.config.Title))
	t.drawText(1, statusHeight+1, termWidth-1, titleStyle,
		fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.logLevel.Level()))

	help := " SPACE=replay S=stop M=mute V=volume mode Q=quit "
	t.drawText(0, termHeight-1, termWidth, borderStyle, help)
}

func (t *Backend) drawStatus(x, y, width int, status sequencer.Status) {
	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	valueStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	barStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	if status.HighVolume {
		barStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	}

	state := "stopped"
	switch {
	case status.Playing && status.Frequency == 0:
		state = "rest"
	case status.Playing:
		state = "playing"
	}

	note := "--"
	if status.Playing && status.Frequency > 0 {
		note = sequence.NoteName(float64(status.Frequency))
	}

	muted := t.config.Muted != nil && t.config.Muted()

	rows := []struct {
		label string
		value string
		style tcell.Style
	}{
		{"State", state, valueStyle},
		{"Tone", fmt.Sprintf("%5d Hz  %s", status.Frequency, note), valueStyle},
		{"Level", render.AmplitudeBar(status.Amplitude, barWidth), barStyle},
		{"Remaining", fmt.Sprintf("%d ms", max(status.Remaining, 0)), valueStyle},
		{"Entry", fmt.Sprintf("%s %d/%d", render.ProgressBar(status.Cursor, status.Length, barWidth), status.Cursor, status.Length), valueStyle},
		{"Volume", status.VolumeMode.String(), valueStyle},
		{"Muted", fmt.Sprintf("%t", muted), valueStyle},
		{"Channel", channelLabel(status), valueStyle},
	}

	for i, row := range rows {
		t.drawText(x, y+i, 12, labelStyle, row.label)
		t.drawText(x+12, y+i, width-12, row.style, row.value)
	}
}

func channelLabel(status sequencer.Status) string {
	if !status.HasChannel {
		return "none"
	}
	switch status.Amplitude {
	case audio.AmplitudeSilent:
		return "held, silent"
	default:
		return "held"
	}
}

func (t *Backend) drawLogs(x, y, width, height int) {
	if height <= 0 {
		return
	}

	for i, entry := range t.logBuffer.GetRecent(height) {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		switch entry.Level {
		case slog.LevelDebug:
			style = tcell.StyleDefault.Foreground(tcell.ColorGray)
		case slog.LevelWarn:
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
		case slog.LevelError:
			style = tcell.StyleDefault.Foreground(tcell.ColorRed)
		}
		t.drawText(x, y+i, width, style, render.FormatLogEntry(entry))
	}
}

func (t *Backend) drawText(x, y, width int, style tcell.Style, text string) {
	i := 0
	for _, ch := range text {
		if i >= width {
			return
		}
		t.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
