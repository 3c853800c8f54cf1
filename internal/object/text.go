package object

import "github.com/tomz197/spaceship/internal/physics"

// Text is a label drawn in the arena. Sizes are in arena pixels.
type Text struct {
	Value       string
	Position    physics.Vec // centre when Centered, top-left otherwise
	Size        float64
	Centered    bool
	Highlighted bool
}

// Bounds returns the box the text occupies according to m.
func (t Text) Bounds(m Measurer) physics.Rect {
	w, h := m.MeasureText(t.Value, t.Size)
	if t.Centered {
		return physics.Rect{Left: t.Position.X - w/2, Top: t.Position.Y - h/2, Width: w, Height: h}
	}
	return physics.Rect{Left: t.Position.X, Top: t.Position.Y, Width: w, Height: h}
}

// Measurer reports the size a string occupies when drawn at a text size.
type Measurer interface {
	MeasureText(s string, size float64) (w, h float64)
}
