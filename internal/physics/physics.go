// Package physics provides vector math, bounding boxes and arena helpers.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return b.Sub(a).Len()
}

// WrapAxis teleports a coordinate that left [0, size] to the opposite edge.
// Coordinates inside the range are returned unchanged.
func WrapAxis(v, size float64) float64 {
	if v < 0 {
		return size
	}
	if v > size {
		return 0
	}
	return v
}

// OutsideArena reports whether p lies outside the arena by more than margin
// on any axis.
func OutsideArena(p Vec, width, height, margin float64) bool {
	return p.X < -margin || p.X > width+margin ||
		p.Y < -margin || p.Y > height+margin
}

// ApproachZero moves v toward zero by step without crossing it.
func ApproachZero(v, step float64) float64 {
	switch {
	case v > 0:
		return math.Max(v-step, 0)
	case v < 0:
		return math.Min(v+step, 0)
	default:
		return 0
	}
}
