package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// EmptyAABB returns the degenerate box that bounds nothing.
// It is the identity element of Union.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewAABB creates a new AABB spanning two corner points in any order
func NewAABB(p1, p2 Vec3) AABB {
	return AABB{Min: p1.Min(p2), Max: p1.Max(p2)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box = box.UnionPoint(point)
	}
	return box
}

// IntersectP tests if a ray intersects with this AABB using the slab method.
// A box touched at a single parameter (entry == exit) counts as a hit; a box
// lying entirely behind the ray origin does not.
func (aabb AABB) IntersectP(ray Ray) bool {
	tEnter := math.Inf(-1)
	tExit := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		invDirection := ray.InvDirection.Axis(axis)

		t0 := (aabb.Min.Axis(axis) - origin) * invDirection
		t1 := (aabb.Max.Axis(axis) - origin) * invDirection
		if ray.DirIsNeg[axis] {
			t0, t1 = t1, t0
		}

		// 0 * Inf: the ray is parallel to this slab and starts on one of its planes
		if math.IsNaN(t0) || math.IsNaN(t1) {
			continue
		}

		tEnter = math.Max(tEnter, t0)
		tExit = math.Min(tExit, t1)
	}

	return tEnter <= tExit && tExit >= 0
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// UnionPoint returns an AABB that bounds this AABB and the given point
func (aabb AABB) UnionPoint(point Vec3) AABB {
	return AABB{
		Min: aabb.Min.Min(point),
		Max: aabb.Max.Max(point),
	}
}

// Centroid returns the center point of the AABB
func (aabb AABB) Centroid() Vec3 {
	return aabb.Min.Multiply(0.5).Add(aabb.Max.Multiply(0.5))
}

// Diagonal returns the extent of the AABB along each axis
func (aabb AABB) Diagonal() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	if aabb.IsEmpty() {
		return 0
	}
	d := aabb.Diagonal()
	return 2.0 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// MaxExtent returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) MaxExtent() int {
	d := aabb.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// IsEmpty reports whether min > max on any axis
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X ||
		aabb.Min.Y > aabb.Max.Y ||
		aabb.Min.Z > aabb.Max.Z
}

// Contains reports whether other lies entirely inside this box.
// The empty box is contained in every box.
func (aabb AABB) Contains(other AABB) bool {
	if other.IsEmpty() {
		return true
	}
	return aabb.ContainsPoint(other.Min) && aabb.ContainsPoint(other.Max)
}

// ContainsPoint reports whether the point lies inside or on the box
func (aabb AABB) ContainsPoint(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

