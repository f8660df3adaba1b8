// Package manifold builds contact manifolds between pairs of collision volumes.
//
// A manifold tells whether two volumes collide and, if they do, how to separate them:
// a unit contact normal pointing from the first volume toward the second, a penetration
// depth and 1-4 contact points. Every function returns a fresh manifold and absorbs
// degenerate input (coincident centers, zero-length normals) by reporting no collision.
package manifold

import (
	"github.com/akmonengine/impulse/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// degenerateSqr is the squared length under which a normal candidate is meaningless
const degenerateSqr = 1e-12

// Manifold is the result of a narrow phase test.
// When Colliding is false the other fields are zero.
type Manifold struct {
	Colliding bool
	Normal    mgl64.Vec3 // unit, from A toward B
	Depth     float64
	Contacts  []mgl64.Vec3
}

// Flip swaps the roles of A and B
func (m Manifold) Flip() Manifold {
	m.Normal = m.Normal.Mul(-1)

	return m
}

// SphereSphere collides two spheres.
// The depth is half the overlap, the contact lies in the middle of the overlap region.
func SphereSphere(a, b geometry.Sphere) Manifold {
	r := a.Radius + b.Radius
	d := b.Position.Sub(a.Position)
	distanceSq := d.LenSqr()

	if distanceSq >= r*r || distanceSq < degenerateSqr {
		return Manifold{}
	}

	distance := d.Len()
	normal := d.Mul(1.0 / distance)
	depth := (r - distance) * 0.5

	return Manifold{
		Colliding: true,
		Normal:    normal,
		Depth:     depth,
		Contacts:  []mgl64.Vec3{a.Position.Add(normal.Mul(a.Radius - depth))},
	}
}

// OBBSphere collides a box (A) with a sphere (B)
func OBBSphere(o geometry.OBB, s geometry.Sphere) Manifold {
	closest := geometry.ClosestPointOBB(s.Position, o)
	distanceSq := s.Position.Sub(closest).LenSqr()

	if distanceSq > s.Radius*s.Radius {
		return Manifold{}
	}

	var normal mgl64.Vec3
	if distanceSq < degenerateSqr {
		// Center on or inside the box: push away from the box center instead
		fromCenter := closest.Sub(o.Position)
		if fromCenter.LenSqr() < degenerateSqr {
			return Manifold{}
		}
		normal = fromCenter.Normalize()
	} else {
		normal = s.Position.Sub(closest).Normalize()
	}

	// Deepest point of the sphere toward the box
	outside := s.Position.Sub(normal.Mul(s.Radius))
	distance := closest.Sub(outside).Len()

	return Manifold{
		Colliding: true,
		Normal:    normal,
		Depth:     distance * 0.5,
		Contacts:  []mgl64.Vec3{closest.Add(outside.Sub(closest).Mul(0.5))},
	}
}

// SphereOBB collides a sphere (A) with a box (B)
func SphereOBB(s geometry.Sphere, o geometry.OBB) Manifold {
	m := OBBSphere(o, s)
	if !m.Colliding {
		return m
	}

	return m.Flip()
}
