package object

import (
	"image"

	"github.com/tomz197/spaceship/internal/physics"
)

// Sheet describes a sprite sheet whose frames are laid out left to right.
type Sheet struct {
	Name        string
	FrameWidth  int
	FrameHeight int
	Frames      int
}

// FrameRect returns the source rectangle of frame i within the sheet image.
func (s Sheet) FrameRect(i int) image.Rectangle {
	x := i * s.FrameWidth
	return image.Rect(x, 0, x+s.FrameWidth, s.FrameHeight)
}

// Sheets is the full set of sprite sheets the game draws.
type Sheets struct {
	Ship           Sheet
	AsteroidSmall  Sheet
	AsteroidMedium Sheet
	AsteroidLarge  Sheet
	Projectile     Sheet
	Explosion      Sheet
	Life           Sheet
	LifeLoss       Sheet
}

// Sprite is one frame of a sheet placed in the arena.
// Position is the centre of the sprite; rotation is clockwise in degrees.
type Sprite struct {
	Sheet    Sheet
	Frame    int
	Position physics.Vec
	Scale    physics.Vec
	Rotation float64
	Alpha    uint8
}

// Size returns the scaled, unrotated size of the sprite.
func (s Sprite) Size() physics.Vec {
	return physics.Vec{
		X: float64(s.Sheet.FrameWidth) * s.Scale.X,
		Y: float64(s.Sheet.FrameHeight) * s.Scale.Y,
	}
}

// Bounds returns the axis-aligned box around the rotated, scaled sprite.
func (s Sprite) Bounds() physics.Rect {
	return physics.SpriteBounds(s.Position, s.Size(), s.Rotation)
}

// Surface is what the game draws onto each frame.
type Surface interface {
	Measurer
	DrawSprite(s Sprite)
	DrawText(t Text)
}
