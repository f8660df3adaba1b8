package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB builds an AABB from its center and half-extents
func NewAABB(center, halfSize mgl64.Vec3) AABB {
	return AABB{
		Min: center.Sub(halfSize),
		Max: center.Add(halfSize),
	}
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) HalfSize() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// ClosestPointAABB clamps point into the box
func ClosestPointAABB(point mgl64.Vec3, a AABB) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Max(a.Min.X(), math.Min(a.Max.X(), point.X())),
		math.Max(a.Min.Y(), math.Min(a.Max.Y(), point.Y())),
		math.Max(a.Min.Z(), math.Min(a.Max.Z(), point.Z())),
	}
}

// IntervalAABB projects the 8 corners of the box on axis
func IntervalAABB(a AABB, axis mgl64.Vec3) Interval {
	corners := [8]mgl64.Vec3{
		{a.Min.X(), a.Max.Y(), a.Max.Z()},
		{a.Min.X(), a.Max.Y(), a.Min.Z()},
		{a.Min.X(), a.Min.Y(), a.Max.Z()},
		{a.Min.X(), a.Min.Y(), a.Min.Z()},
		{a.Max.X(), a.Max.Y(), a.Max.Z()},
		{a.Max.X(), a.Max.Y(), a.Min.Z()},
		{a.Max.X(), a.Min.Y(), a.Max.Z()},
		{a.Max.X(), a.Min.Y(), a.Min.Z()},
	}

	return project(corners[:], axis)
}
