// Package physics provides the per-tick integrator primitives and collision detection.
package physics

import "math"

// Body is anything with a center position and a size.
type Body interface {
	GetPosition() (x, y float64)
	GetSize() float64
}

// Overlap reports whether two bodies' axis-aligned boxes intersect.
// Each box is centered on the body with side length equal to its size, so two
// bodies collide when both axis distances are below the mean of their sizes.
// Touching edges (distance exactly equal) do not collide.
func Overlap(a, b Body) bool {
	ax, ay := a.GetPosition()
	bx, by := b.GetPosition()
	half := (a.GetSize() + b.GetSize()) / 2
	return math.Abs(ax-bx) < half && math.Abs(ay-by) < half
}

// Speed returns the magnitude of a velocity vector.
func Speed(vx, vy float64) float64 {
	return math.Sqrt(vx*vx + vy*vy)
}

// ClampSpeed rescales (vx, vy) to max if its magnitude exceeds max,
// preserving direction.
func ClampSpeed(vx, vy, max float64) (float64, float64) {
	speed := Speed(vx, vy)
	if speed > max && speed > 0 {
		scale := max / speed
		return vx * scale, vy * scale
	}
	return vx, vy
}

// Thrust returns the velocity delta for accelerating by accel along angle.
func Thrust(angle, accel float64) (dx, dy float64) {
	return math.Cos(angle) * accel, math.Sin(angle) * accel
}

// Wrap moves a coordinate that left [0, w] x [0, h] to the opposite edge.
// Axes are handled independently. A non-positive dimension disables wrapping
// on that axis.
func Wrap(x, y *float64, w, h float64) {
	if w > 0 {
		if *x < 0 {
			*x = w
		} else if *x > w {
			*x = 0
		}
	}
	if h > 0 {
		if *y < 0 {
			*y = h
		} else if *y > h {
			*y = 0
		}
	}
}
