package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is defined by the equation: Normal · p = Distance
// where Normal is the plane's normal vector (must be normalized)
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// SignedDistance returns the distance of point above the plane (negative below)
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) - p.Distance
}

// ClosestPointPlane projects point onto the plane
func ClosestPointPlane(point mgl64.Vec3, p Plane) mgl64.Vec3 {
	return point.Sub(p.Normal.Mul(p.SignedDistance(point)))
}

// ClipToPlane returns the intersection of the segment with the plane.
// Segments parallel to the plane, or crossing it outside [Start, End], do not clip.
func ClipToPlane(p Plane, line Line) (mgl64.Vec3, bool) {
	ab := line.End.Sub(line.Start)
	nAB := p.Normal.Dot(ab)
	if math.Abs(nAB) < epsilon {
		return mgl64.Vec3{}, false
	}

	t := (p.Distance - p.Normal.Dot(line.Start)) / nAB
	if t < 0 || t > 1 {
		return mgl64.Vec3{}, false
	}

	return line.Start.Add(ab.Mul(t)), true
}

// SpherePlane reports whether the sphere touches the plane
func SpherePlane(s Sphere, p Plane) bool {
	return math.Abs(p.SignedDistance(s.Position)) <= s.Radius
}

// AABBPlane reports whether the box straddles or touches the plane
func AABBPlane(a AABB, p Plane) bool {
	h := a.HalfSize()
	r := h.X()*math.Abs(p.Normal.X()) + h.Y()*math.Abs(p.Normal.Y()) + h.Z()*math.Abs(p.Normal.Z())

	return math.Abs(p.SignedDistance(a.Center())) <= r
}

// OBBPlane reports whether the box straddles or touches the plane.
// The extent of the box along the normal is Σ halfSize[i] · |axis[i] · normal|.
func OBBPlane(o OBB, p Plane) bool {
	axes := o.Axes()

	r := 0.0
	for i, axis := range axes {
		r += o.HalfSize[i] * math.Abs(axis.Dot(p.Normal))
	}

	return math.Abs(p.SignedDistance(o.Position)) <= r
}

// PlanePlane reports whether two planes meet: they do unless they are parallel and distinct
func PlanePlane(a, b Plane) bool {
	if a.Normal.Cross(b.Normal).LenSqr() > epsilon {
		return true
	}

	// Parallel normals, facing the same way or not
	return math.Abs(b.Distance-a.Normal.Dot(b.Normal)*a.Distance) < epsilon
}

// RaycastPlane intersects the ray with the front of the plane.
// Rays parallel to the plane or leaving it through its front never hit.
func RaycastPlane(ray Ray, p Plane) (RaycastResult, bool) {
	nd := p.Normal.Dot(ray.Direction)
	if nd >= 0 {
		return RaycastResult{}, false
	}

	t := (p.Distance - p.Normal.Dot(ray.Origin)) / nd
	if t < 0 {
		return RaycastResult{}, false
	}

	return RaycastResult{
		Point:  ray.At(t),
		Normal: p.Normal,
		T:      t,
		Hit:    true,
	}, true
}

// LineTestPlane reports whether the segment crosses the plane between its two ends
func LineTestPlane(line Line, p Plane) bool {
	_, ok := ClipToPlane(p, line)

	return ok
}
