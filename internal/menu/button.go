package menu

import (
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

// Button is a clickable text label. Position is the label centre.
type Button struct {
	Label    string
	Position physics.Vec
	Size     float64
	Hovered  bool
}

// Text returns the label as drawn this frame.
func (b *Button) Text() object.Text {
	return object.Text{
		Value:       b.Label,
		Position:    b.Position,
		Size:        b.Size,
		Centered:    true,
		Highlighted: b.Hovered,
	}
}

// Contains reports whether p lies within the label bounds.
func (b *Button) Contains(m object.Measurer, p physics.Vec) bool {
	return b.Text().Bounds(m).Contains(p)
}
