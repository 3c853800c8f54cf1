package object

import (
	"github.com/tomz197/spaceship/internal/physics"
)

// Tier is the size category of an asteroid.
type Tier int

const (
	TierSmall Tier = iota
	TierMedium
	TierLarge
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	default:
		return "unknown"
	}
}

// TierFor maps the spawn counter onto the repeating medium, large, small cycle.
func TierFor(counter int) Tier {
	switch counter % 3 {
	case 1:
		return TierMedium
	case 2:
		return TierLarge
	default:
		return TierSmall
	}
}

// SheetFor returns the sprite sheet drawn for a tier.
func (s Sheets) SheetFor(t Tier) Sheet {
	switch t {
	case TierMedium:
		return s.AsteroidMedium
	case TierLarge:
		return s.AsteroidLarge
	default:
		return s.AsteroidSmall
	}
}

// Asteroid is a drifting space rock.
type Asteroid struct {
	Position  physics.Vec
	Velocity  physics.Vec
	Rotation  float64 // degrees
	Spin      float64 // degrees per frame
	Tier      Tier
	Large     bool
	Destroyed bool

	sheet Sheet
	scale physics.Vec
	arena arena
}

// MarkDestroyed marks the asteroid for removal.
func (a *Asteroid) MarkDestroyed() {
	a.Destroyed = true
}

// IsDestroyed returns true if the asteroid is marked for destruction.
func (a *Asteroid) IsDestroyed() bool {
	return a.Destroyed
}

// OutOfArena reports whether the asteroid drifted past the prune margin.
func (a *Asteroid) OutOfArena() bool {
	return a.arena.outside(a.Position)
}

// Update moves and spins the asteroid. Destroyed asteroids are not moved.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	if a.Destroyed {
		return true
	}
	a.Position = a.Position.Add(a.Velocity)
	a.Rotation += a.Spin
	return a.OutOfArena()
}

// Sprite returns the asteroid as drawn this frame.
func (a *Asteroid) Sprite() Sprite {
	return Sprite{
		Sheet:    a.sheet,
		Position: a.Position,
		Scale:    a.scale,
		Rotation: a.Rotation,
		Alpha:    opaque,
	}
}

// Draw renders the asteroid.
func (a *Asteroid) Draw(s Surface) {
	if a.Destroyed {
		return
	}
	s.DrawSprite(a.Sprite())
}
