// Package loop runs the game: the per-frame controller and the terminal
// frame loop that drives it.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/audio"
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/input"
	"github.com/tomz197/spaceship/internal/object"
)

// Assets provides the sprite sheets and the images and font behind them.
type Assets interface {
	draw.ImageSource
	Sheets() object.Sheets
}

// Options configures a terminal game.
type Options struct {
	Config       config.Config
	Assets       Assets
	Music        audio.Player       // nil plays silently
	TermSizeFunc draw.TermSizeFunc  // nil uses the local terminal
	Renderer     *lipgloss.Renderer // styles text for the client's terminal
	Logger       *log.Logger
	Seed         int64 // 0 seeds from the clock
}

// Run starts the main game loop with the standard Input → Update → Draw cycle.
// It returns when the player quits, the input closes, or writing a frame fails.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	var music audio.Player = opts.Music
	if music == nil {
		music = audio.NewSilent(cfg.Audio.Volume)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := NewGame(cfg, opts.Assets.Sheets(), music, rand.New(rand.NewSource(seed)), logger)
	stream := input.StartStream(r)

	// Game uses fixed logical resolution
	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		return fmt.Errorf("failed to get terminal size: %w", err)
	}
	canvas := draw.NewCanvas(termWidth, termHeight, cfg.Arena.Width, cfg.Arena.Height)
	surface := draw.NewSurface(canvas, opts.Assets, opts.Renderer, logger)
	defer surface.Close()

	cw := draw.NewChunkWriter(w)
	draw.HideCursor(cw)
	draw.EnableMouse(cw)
	draw.ClearScreen(cw)
	if err := cw.Flush(); err != nil {
		return fmt.Errorf("failed to prepare terminal: %w", err)
	}
	defer func() {
		draw.DisableMouse(w)
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()

	frameTime := cfg.FrameTime()
	lastTime := time.Now()

	for {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream, canvas.TerminalToLogical)
		if in.Quit {
			logger.Debug("quit requested from keyboard")
			return nil
		}

		// ===== UPDATE PHASE =====
		termWidth, termHeight, err := sizeFunc()
		if err != nil {
			return fmt.Errorf("failed to get terminal size: %w", err)
		}
		canvas.Resize(termWidth, termHeight)

		game.Step(in, delta, surface)
		if game.Done() {
			return nil
		}

		// ===== DRAW PHASE =====
		draw.ClearScreen(cw)
		surface.Begin()
		game.Draw(surface)
		surface.Render(cw)
		if err := cw.Flush(); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}
