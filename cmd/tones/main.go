package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"
	"github.com/valerio/go-tones/tones"
	"github.com/valerio/go-tones/tones/backend"
	"github.com/valerio/go-tones/tones/backend/headless"
	"github.com/valerio/go-tones/tones/backend/terminal"
	"github.com/valerio/go-tones/tones/output"
	"github.com/valerio/go-tones/tones/sequence"
	"github.com/valerio/go-tones/tones/sequencer"
	"github.com/valerio/go-tones/tones/timing"
)

func main() {
	app := cli.NewApp()

	app.Name = "tones"
	app.Description = "Plays tone sequences through a square wave channel"
	app.Usage = "tones [options] <sequence>"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "seq",
			Usage: `Sequence in text notation, e.g. "a4:200 r:100 880h:50 repeat"`,
		},
		cli.StringFlag{
			Name:  "packed",
			Usage: "Sequence as comma separated packed words (hex allowed), e.g. 440,200,0x8000",
		},
		cli.BoolFlag{
			Name:  "repeat",
			Usage: "Loop the sequence when it has no end or repeat marker",
		},
		cli.StringFlag{
			Name:  "volume",
			Usage: "Volume mode: tone, normal or high",
			Value: "tone",
		},
		cli.BoolFlag{
			Name:  "mute",
			Usage: "Start with sound output disabled",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without the terminal interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (0 = until playback ends)",
			Value: 0,
		},
		cli.Float64Flag{
			Name:  "fps",
			Usage: "Frame rate of the update loop",
			Value: timing.DefaultFPS,
		},
		cli.StringFlag{
			Name:  "output",
			Usage: "Audio output: oto, sdl2 or none",
			Value: string(output.KindOto),
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log every tone transition",
		},
	}

	app.Action = runPlayer

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running player", "error", err)
		os.Exit(1)
	}
}

func runPlayer(c *cli.Context) error {
	seq, err := loadSequence(c)
	if err != nil {
		return err
	}
	if seq == nil {
		cli.ShowAppHelp(c)
		return errors.New("no sequence provided")
	}
	if c.Bool("repeat") && !seq.Terminated() {
		seq = append(seq, sequence.Repeat())
	}

	mode, err := sequencer.ParseVolumeMode(c.String("volume"))
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}

	config := tones.Config{
		Title:      "tones",
		FPS:        c.Float64("fps"),
		VolumeMode: mode,
		Muted:      c.Bool("mute"),
		Output:     output.Kind(c.String("output")),
		LogLevel:   logLevel,
	}

	var b backend.Backend
	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames < 0 {
			return errors.New("--frames must not be negative")
		}
		if frames == 0 && seq.Loops() {
			return errors.New("a looping sequence needs --frames in headless mode")
		}
		b = headless.New(frames)
		config.Limiter = timing.NewNoOpLimiter()
		if !c.IsSet("output") {
			config.Output = output.KindNone
		}
	} else {
		b = terminal.New()
		config.Clock = timing.NewWallClock()
		config.Limiter = timing.NewAdaptiveLimiter(config.FPS)
	}
	config.Backend = b

	player, err := tones.NewPlayer(config)
	if err != nil {
		return err
	}
	defer func() {
		if err := player.Close(); err != nil {
			slog.Error("Failed to clean up player", "error", err)
		}
	}()

	player.Load(seq)
	return player.Run()
}

// loadSequence reads the sequence from the flags or the first argument.
// A nil sequence means none was given.
func loadSequence(c *cli.Context) (sequence.Sequence, error) {
	if packed := c.String("packed"); packed != "" {
		words, err := parsePackedWords(packed)
		if err != nil {
			return nil, err
		}
		seq, err := sequence.Decode(words)
		if err != nil {
			return nil, fmt.Errorf("invalid packed sequence: %w", err)
		}
		return seq, nil
	}

	text := c.String("seq")
	if text == "" && c.NArg() > 0 {
		text = strings.Join(c.Args(), " ")
	}
	if text == "" {
		return nil, nil
	}

	seq, err := sequence.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid sequence: %w", err)
	}
	return seq, nil
}

func parsePackedWords(s string) ([]uint16, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})

	words := make([]uint16, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("packed word %d: %w", i+1, err)
		}
		words = append(words, uint16(v))
	}
	return words, nil
}
