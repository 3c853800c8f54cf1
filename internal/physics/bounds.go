package physics

import "math"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the centre point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Intersects reports whether r and o share a region of non-zero area.
// Rectangles that only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	left := math.Max(r.Left, o.Left)
	top := math.Max(r.Top, o.Top)
	right := math.Min(r.Right(), o.Right())
	bottom := math.Min(r.Bottom(), o.Bottom())
	return left < right && top < bottom
}

// Contains reports whether p lies inside r. The left and top edges are
// inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// ScaleSize multiplies width and height by f, keeping the top-left corner.
func (r Rect) ScaleSize(f float64) Rect {
	return Rect{Left: r.Left, Top: r.Top, Width: r.Width * f, Height: r.Height * f}
}

// SpriteBounds returns the axis-aligned box around a rectangle of the given
// size, centred on center and rotated clockwise by rotation degrees.
func SpriteBounds(center, size Vec, rotation float64) Rect {
	rad := DegToRad(rotation)
	cos, sin := math.Cos(rad), math.Sin(rad)
	hw, hh := size.X/2, size.Y/2

	// Half-extents of the rotated rectangle projected on each axis
	ex := math.Abs(hw*cos) + math.Abs(hh*sin)
	ey := math.Abs(hw*sin) + math.Abs(hh*cos)

	return Rect{
		Left:   center.X - ex,
		Top:    center.Y - ey,
		Width:  2 * ex,
		Height: 2 * ey,
	}
}

// Overlap reports whether two boxes intersect after each is shrunk by scale.
// The shrink compensates for transparent padding around sprite artwork.
func Overlap(a, b Rect, scale float64) bool {
	return a.ScaleSize(scale).Intersects(b.ScaleSize(scale))
}
