package object

import (
	"time"

	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/physics"
)

const opaque = 255

// Ship is the player-controlled spaceship.
type Ship struct {
	Position physics.Vec
	Velocity physics.Vec
	Facing   float64 // degrees, 0 = nose up, clockwise
	Lives    int

	immunity time.Duration // time left before the ship can be hit again
	cfg      config.ShipConfig
	width    float64
	height   float64
	sheet    Sheet
}

// NewShip creates a ship at the arena centre.
func NewShip(cfg config.Config, sheet Sheet) *Ship {
	s := &Ship{
		cfg:    cfg.Ship,
		width:  cfg.Arena.Width,
		height: cfg.Arena.Height,
		sheet:  sheet,
	}
	s.Reset()
	return s
}

// Reset puts the ship back at the centre with full lives and no immunity.
func (s *Ship) Reset() {
	s.Position = physics.Vec{X: s.width / 2, Y: s.height / 2}
	s.Velocity = physics.Vec{}
	s.Facing = s.cfg.StartFacing
	s.Lives = s.cfg.Lives
	s.immunity = 0
}

// Update handles aiming, thrust, drag, the speed cap, wrapping and the
// immunity countdown.
func (s *Ship) Update(ctx UpdateContext) bool {
	if ctx.Input.HasCursor {
		s.Aim(ctx.Input.Cursor)
	}
	s.Steer(ctx.Input)

	s.Position = s.Position.Add(s.Velocity)
	s.Position.X = physics.WrapAxis(s.Position.X, s.width)
	s.Position.Y = physics.WrapAxis(s.Position.Y, s.height)

	if s.immunity > 0 {
		s.immunity -= ctx.Delta
		if s.immunity < 0 {
			s.immunity = 0
		}
	}
	return false
}

// Aim turns the nose toward target.
func (s *Ship) Aim(target physics.Vec) {
	if target == s.Position {
		return
	}
	s.Facing = physics.FacingTowards(s.Position, target)
}

// Steer applies one frame of acceleration, drag and the speed cap.
func (s *Ship) Steer(in Input) {
	if in.Up {
		s.Velocity.Y -= s.cfg.Acceleration
	}
	if in.Down {
		s.Velocity.Y += s.cfg.Acceleration
	}
	if in.Left {
		s.Velocity.X -= s.cfg.Acceleration
	}
	if in.Right {
		s.Velocity.X += s.cfg.Acceleration
	}

	s.Velocity.X = physics.ApproachZero(s.Velocity.X, s.cfg.Drag)
	s.Velocity.Y = physics.ApproachZero(s.Velocity.Y, s.cfg.Drag)
	s.Velocity = s.Velocity.ClampLen(s.cfg.MaxSpeed)
}

// CanCollide reports whether asteroids can currently hurt the ship.
func (s *Ship) CanCollide() bool {
	return s.immunity <= 0
}

// Immunity returns the time left before the ship can be hit again.
func (s *Ship) Immunity() time.Duration {
	return s.immunity
}

// Hit removes a life, never going below zero, and starts the immunity window.
func (s *Ship) Hit() {
	if s.Lives > 0 {
		s.Lives--
	}
	s.immunity = s.cfg.Immunity
}

// Alpha is the ship opacity: translucent while immune.
func (s *Ship) Alpha() uint8 {
	if s.CanCollide() {
		return opaque
	}
	return s.cfg.ImmuneAlpha
}

// Sprite returns the ship as drawn this frame.
func (s *Ship) Sprite() Sprite {
	return Sprite{
		Sheet:    s.sheet,
		Position: s.Position,
		Scale:    physics.Vec{X: s.cfg.ScaleX, Y: s.cfg.ScaleY},
		Rotation: s.Facing,
		Alpha:    s.Alpha(),
	}
}

// Nose is where projectiles leave the ship: the centre pushed along the
// facing by half the height of the rotated bounding box.
func (s *Ship) Nose() physics.Vec {
	half := s.Sprite().Bounds().Height / 2
	return s.Position.Add(physics.Heading(s.Facing).Scale(half))
}

// Draw renders the ship.
func (s *Ship) Draw(surface Surface) {
	surface.DrawSprite(s.Sprite())
}
