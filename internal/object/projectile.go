package object

import (
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/physics"
)

// Projectile is a bullet fired by the player.
type Projectile struct {
	Position  physics.Vec
	Velocity  physics.Vec
	Rotation  float64 // facing of the ship when fired
	destroyed bool

	sheet Sheet
	scale float64
	arena arena
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Update moves the projectile. It is removed once destroyed or past the
// prune margin.
func (p *Projectile) Update(ctx UpdateContext) bool {
	if p.destroyed {
		return true
	}
	p.Position = p.Position.Add(p.Velocity)
	return p.arena.outside(p.Position)
}

// Sprite returns the projectile as drawn this frame.
func (p *Projectile) Sprite() Sprite {
	return Sprite{
		Sheet:    p.sheet,
		Position: p.Position,
		Scale:    physics.Vec{X: p.scale, Y: p.scale},
		Rotation: p.Rotation,
		Alpha:    opaque,
	}
}

// Draw renders the projectile.
func (p *Projectile) Draw(s Surface) {
	if p.destroyed {
		return
	}
	s.DrawSprite(p.Sprite())
}

// Gun fires projectiles from the ship's nose, gated by a frame-coupled cooldown.
type Gun struct {
	cfg      config.ProjectileConfig
	step     float64
	arena    arena
	sheet    Sheet
	cooldown float64
}

// NewGun creates a gun whose first shot is available after one cooldown.
func NewGun(cfg config.Config, sheet Sheet) *Gun {
	return &Gun{
		cfg:      cfg.Projectiles,
		step:     cfg.Arena.CooldownStep,
		arena:    arena{width: cfg.Arena.Width, height: cfg.Arena.Height, margin: cfg.Asteroids.PruneMargin},
		sheet:    sheet,
		cooldown: cfg.Projectiles.Cooldown,
	}
}

// Tick advances the cooldown by one frame and returns a projectile when
// fire is held and the gun is ready, or nil.
func (g *Gun) Tick(fire bool, ship *Ship) *Projectile {
	ready := tickCooldown(&g.cooldown, g.step)
	if !fire || !ready {
		return nil
	}
	g.cooldown = g.cfg.Cooldown

	return &Projectile{
		Position: ship.Nose(),
		Velocity: physics.Heading(ship.Facing).Scale(g.cfg.Speed),
		Rotation: ship.Facing,
		sheet:    g.sheet,
		scale:    g.cfg.Scale,
		arena:    g.arena,
	}
}

// Reset restores the initial cooldown.
func (g *Gun) Reset() {
	g.cooldown = g.cfg.Cooldown
}
