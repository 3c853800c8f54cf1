// Package object holds the game entities and the rules that move them.
package object

import (
	"time"

	"github.com/tomz197/spaceship/internal/input"
	"github.com/tomz197/spaceship/internal/physics"
)

// cooldownEpsilon absorbs float drift from repeated fixed decrements, so a
// cooldown of 3.0 stepped by 0.1 expires on the 30th frame.
const cooldownEpsilon = 1e-9

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta time.Duration
	Input Input
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by one frame. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw draws the object onto the surface.
	Draw(s Surface)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

var (
	_ Object       = (*Ship)(nil)
	_ Object       = (*Asteroid)(nil)
	_ Object       = (*Projectile)(nil)
	_ Object       = (*Animation)(nil)
	_ Destructible = (*Asteroid)(nil)
	_ Destructible = (*Projectile)(nil)
)

// arena is the play field an object is pruned against.
type arena struct {
	width, height, margin float64
}

func (a arena) outside(p physics.Vec) bool {
	return physics.OutsideArena(p, a.width, a.height, a.margin)
}

// CheckCollision reports whether two sprites overlap once their bounding
// boxes are shrunk by scale.
func CheckCollision(a, b Sprite, scale float64) bool {
	return physics.Overlap(a.Bounds(), b.Bounds(), scale)
}

// tickCooldown steps a frame-coupled cooldown toward zero. It reports true
// when the cooldown has expired. An expired cooldown is not decremented
// further, so it never drops more than one step below zero.
func tickCooldown(cooldown *float64, step float64) bool {
	if *cooldown > cooldownEpsilon {
		*cooldown -= step
	}
	return *cooldown <= cooldownEpsilon
}
