package physics

import "math"

// Vec is a 2D vector in arena units (pixels of the logical arena).
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by f.
func (v Vec) Scale(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

// Len returns the vector magnitude.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in the direction of v.
// The zero vector stays zero.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// ClampLen rescales v along its own angle so its length does not exceed max.
func (v Vec) ClampLen(max float64) Vec {
	if v.Len() <= max {
		return v
	}
	angle := math.Atan2(v.Y, v.X)
	return Vec{X: math.Cos(angle) * max, Y: math.Sin(angle) * max}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Heading returns the unit vector for a facing angle in degrees.
// A facing of 0 points up the screen and angles grow clockwise, so 90 points right.
func Heading(facing float64) Vec {
	rad := DegToRad(facing - 90)
	return Vec{X: math.Cos(rad), Y: math.Sin(rad)}
}

// FacingTowards returns the facing angle (see Heading) that points from
// from to to.
func FacingTowards(from, to Vec) float64 {
	d := to.Sub(from)
	return RadToDeg(math.Atan2(d.Y, d.X)) + 90
}
