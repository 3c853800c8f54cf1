package loop

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/input"
	"github.com/tomz197/spaceship/internal/menu"
	"github.com/tomz197/spaceship/internal/object"
)

// Game holds the state of one single-player game: the menu, the ship and
// every live entity. It is not safe for concurrent use; the frame loop
// that owns it is its only caller.
type Game struct {
	cfg    config.Config
	sheets object.Sheets
	logger *log.Logger
	volume menu.VolumeControl

	Menu        *menu.Menu
	Ship        *object.Ship
	Asteroids   []*object.Asteroid
	Projectiles []*object.Projectile
	Animations  []*object.Animation

	spawner *object.AsteroidSpawner
	gun     *object.Gun
	hud     *object.HUD
	timer   object.SurvivalTimer
	running bool // a run was in progress on the previous frame
}

// NewGame creates a game showing the main menu. volume receives music
// changes from the options screen and the playing/menu transitions.
func NewGame(cfg config.Config, sheets object.Sheets, volume menu.VolumeControl, rng *rand.Rand, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		cfg:     cfg,
		sheets:  sheets,
		logger:  logger,
		volume:  volume,
		Menu:    menu.New(cfg, volume, logger),
		Ship:    object.NewShip(cfg, sheets.Ship),
		spawner: object.NewAsteroidSpawner(cfg, sheets, rng),
		gun:     object.NewGun(cfg, sheets.Projectile),
		hud:     object.NewHUD(cfg, sheets.Life),
	}
}

// Playing reports whether a run is in progress.
func (g *Game) Playing() bool {
	return g.Menu.Started()
}

// Done reports whether the player asked to close the game.
func (g *Game) Done() bool {
	return g.Menu.QuitRequested()
}

// Timer returns the survival timer of the current run.
func (g *Game) Timer() *object.SurvivalTimer {
	return &g.timer
}

// Spawner returns the asteroid spawner.
func (g *Game) Spawner() *object.AsteroidSpawner {
	return g.spawner
}

// Step advances the game by one frame. While a menu is shown only the menu
// reacts to input; during a run the order is ship, collisions, spawning,
// pruning, then the gun.
func (g *Game) Step(in input.Input, delta time.Duration, m object.Measurer) {
	if !g.Menu.Started() {
		g.Menu.HandleInput(in, m)
		g.timer.Reset()
		g.syncVolume()
		return
	}
	g.syncVolume()

	ctx := object.UpdateContext{Delta: delta, Input: in}

	g.Ship.Update(ctx)

	g.resolveShipCollisions()
	g.resolveProjectileCollisions()

	if g.Ship.Lives == 0 {
		g.endRun()
		return
	}

	if a := g.spawner.Tick(); a != nil {
		g.Asteroids = append(g.Asteroids, a)
		g.logger.Debug("asteroid spawned", "tier", a.Tier, "count", g.spawner.Count())
	}

	g.prune(ctx)

	// A projectile fired this frame first moves and collides next frame.
	if p := g.gun.Tick(in.Fire, g.Ship); p != nil {
		g.Projectiles = append(g.Projectiles, p)
	}
	g.timer.Add(delta)
}

// prune moves every entity one frame and drops the ones that are destroyed,
// out of the arena or finished.
func (g *Game) prune(ctx object.UpdateContext) {
	g.Asteroids = keep(g.Asteroids, func(a *object.Asteroid) bool { return !a.Update(ctx) })
	g.Projectiles = keep(g.Projectiles, func(p *object.Projectile) bool { return !p.Update(ctx) })
	g.Animations = keep(g.Animations, func(a *object.Animation) bool { return !a.Update(ctx) })
}

// keep filters items in place, preserving order.
func keep[T any](items []T, alive func(T) bool) []T {
	kept := items[:0]
	for _, it := range items {
		if alive(it) {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}

// endRun shows the game-over menu and resets the world for the next run.
func (g *Game) endRun() {
	g.logger.Info("ship destroyed", "survived", g.timer.String(), "asteroids", g.spawner.Count())

	g.Menu.SetType(menu.Dead)
	g.Menu.SetStarted(false)
	g.reset()
	g.syncVolume()
}

func (g *Game) reset() {
	g.Ship.Reset()
	g.Asteroids = g.Asteroids[:0]
	g.Projectiles = g.Projectiles[:0]
	g.Animations = g.Animations[:0]
	g.spawner.Reset()
	g.gun.Reset()
	g.timer.Reset()
}

// syncVolume lowers the music during a run and restores it in the menus.
func (g *Game) syncVolume() {
	started := g.Menu.Started()
	if started == g.running {
		return
	}
	g.running = started
	if g.volume == nil || !g.Menu.MusicOn() {
		return
	}
	if started {
		g.volume.SetVolume(g.cfg.Audio.PlayingVolume)
	} else {
		g.volume.SetVolume(g.fullVolume())
	}
}

func (g *Game) fullVolume() float64 {
	if g.cfg.Audio.Volume <= 0 {
		return 100
	}
	return g.cfg.Audio.Volume
}

// Draw renders the current frame: the arena and HUD during a run, the
// current menu otherwise.
func (g *Game) Draw(s object.Surface) {
	if !g.Menu.Started() {
		g.Menu.Draw(s)
		return
	}
	for _, a := range g.Asteroids {
		a.Draw(s)
	}
	for _, p := range g.Projectiles {
		p.Draw(s)
	}
	for _, a := range g.Animations {
		a.Draw(s)
	}
	g.Ship.Draw(s)
	g.hud.Draw(s, g.Ship.Lives, &g.timer)
}
