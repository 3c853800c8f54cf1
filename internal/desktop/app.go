// Package desktop runs the game in a desktop window.
package desktop

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/spaceship/internal/audio"
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/input"
	"github.com/tomz197/spaceship/internal/loop"
	"github.com/tomz197/spaceship/internal/physics"
)

// maxDelta caps the frame delta after the window was stalled (dragged,
// minimised), so animations do not skip ahead.
const maxDelta = 250 * time.Millisecond

var background = color.Black

// App adapts a loop.Game to ebiten's Update/Draw/Layout cycle.
type App struct {
	cfg     config.Config
	game    *loop.Game
	surface *Surface
	logger  *log.Logger

	lastUpdateTime time.Time
}

// New creates the window application. music may be nil.
func New(cfg config.Config, assets loop.Assets, music audio.Player, seed int64, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	if music == nil {
		music = audio.NewSilent(cfg.Audio.Volume)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &App{
		cfg:            cfg,
		game:           loop.NewGame(cfg, assets.Sheets(), music, rand.New(rand.NewSource(seed)), logger),
		surface:        NewSurface(assets, cfg.HUD.HoverScale, logger),
		logger:         logger,
		lastUpdateTime: time.Now(),
	}
}

func (a *App) Update() error {
	now := time.Now()
	delta := min(now.Sub(a.lastUpdateTime), maxDelta)
	a.lastUpdateTime = now

	a.game.Step(readInput(), delta, a.surface)
	if a.game.Done() {
		a.logger.Info("exit requested")
		return ebiten.Termination
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	a.surface.target = screen
	a.game.Draw(a.surface)
	a.surface.target = nil
}

// Layout keeps the logical arena size; ebiten scales it to the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.cfg.Arena.Width), int(a.cfg.Arena.Height)
}

// Run opens the window and blocks until it is closed or the player exits.
func Run(a *App) error {
	ebiten.SetWindowSize(int(a.cfg.Arena.Width), int(a.cfg.Arena.Height))
	ebiten.SetWindowTitle("Space Ratao")
	ebiten.SetTPS(a.cfg.Arena.FPS)
	return ebiten.RunGame(a)
}

// readInput samples the keyboard and mouse.
func readInput() input.Input {
	key := ebiten.IsKeyPressed
	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	return input.Input{
		Up:        key(ebiten.KeyW) || key(ebiten.KeyArrowUp),
		Down:      key(ebiten.KeyS) || key(ebiten.KeyArrowDown),
		Left:      key(ebiten.KeyA) || key(ebiten.KeyArrowLeft),
		Right:     key(ebiten.KeyD) || key(ebiten.KeyArrowRight),
		Fire:      down || key(ebiten.KeySpace),
		MouseDown: down,
		Cursor:    physics.Vec{X: float64(x), Y: float64(y)},
		HasCursor: true,
	}
}
