package core

import "math"

// Ray represents a ray with an origin and direction.
// InvDirection and DirIsNeg are precomputed for slab tests.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3    // Component-wise reciprocal of Direction (±Inf on zero components)
	DirIsNeg     [3]bool // Sign bit of each direction component, so -0 pairs with -Inf
	T            float64 // Travel time of the ray
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return NewRayAt(origin, direction, 0)
}

// NewRayAt creates a new ray carrying the given travel time
func NewRayAt(origin, direction Vec3, t float64) Ray {
	return Ray{
		Origin:       origin,
		Direction:    direction,
		InvDirection: Vec3{X: 1.0 / direction.X, Y: 1.0 / direction.Y, Z: 1.0 / direction.Z},
		DirIsNeg:     [3]bool{math.Signbit(direction.X), math.Signbit(direction.Y), math.Signbit(direction.Z)},
		T:            t,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
