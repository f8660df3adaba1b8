package geometry

import "github.com/go-gl/mathgl/mgl64"

// Sphere represents a spherical collision volume
type Sphere struct {
	Position mgl64.Vec3
	Radius   float64
}

// PointInSphere reports whether point lies inside the sphere, surface included
func PointInSphere(point mgl64.Vec3, s Sphere) bool {
	return point.Sub(s.Position).LenSqr() <= s.Radius*s.Radius
}

// ClosestPointSphere returns the point on the sphere surface toward point.
// The center itself has no preferred direction and is returned unchanged.
func ClosestPointSphere(point mgl64.Vec3, s Sphere) mgl64.Vec3 {
	d := point.Sub(s.Position)
	if d.LenSqr() < epsilon {
		return s.Position
	}

	return s.Position.Add(d.Normalize().Mul(s.Radius))
}

// SphereSphere reports whether two spheres overlap
func SphereSphere(a, b Sphere) bool {
	r := a.Radius + b.Radius

	return a.Position.Sub(b.Position).LenSqr() <= r*r
}

// SphereOBB reports whether a sphere overlaps a box
func SphereOBB(s Sphere, o OBB) bool {
	closest := ClosestPointOBB(s.Position, o)

	return s.Position.Sub(closest).LenSqr() <= s.Radius*s.Radius
}

// AABB returns the bounds of the sphere
func (s Sphere) AABB() AABB {
	return NewAABB(s.Position, mgl64.Vec3{s.Radius, s.Radius, s.Radius})
}
