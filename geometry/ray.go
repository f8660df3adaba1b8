package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Line is a segment between two points
type Line struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
}

func (l Line) Length() float64 {
	return l.End.Sub(l.Start).Len()
}

func (l Line) LengthSqr() float64 {
	return l.End.Sub(l.Start).LenSqr()
}

// Ray is a half-line with a normalized direction
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay normalizes direction; a zero direction is kept as is and never hits anything
func NewRay(origin, direction mgl64.Vec3) Ray {
	if direction.LenSqr() > epsilon*epsilon {
		direction = direction.Normalize()
	}

	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RaycastResult is returned by value from every raycast, a miss is the zero value
type RaycastResult struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	T      float64
	Hit    bool
}

// RaycastAABB intersects the ray with the box using the slab method.
// When the origin is inside the box the exit point is reported, with the outward normal of the exit face.
func RaycastAABB(ray Ray, box AABB) (RaycastResult, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	minAxis, maxAxis := -1, -1

	for i := 0; i < 3; i++ {
		if math.Abs(ray.Direction[i]) < epsilon {
			// Parallel to the slab: the origin must be between both planes
			if ray.Origin[i] < box.Min[i] || ray.Origin[i] > box.Max[i] {
				return RaycastResult{}, false
			}
			continue
		}

		invD := 1.0 / ray.Direction[i]
		t0 := (box.Min[i] - ray.Origin[i]) * invD
		t1 := (box.Max[i] - ray.Origin[i]) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin, minAxis = t0, i
		}
		if t1 < tMax {
			tMax, maxAxis = t1, i
		}
		if tMin > tMax {
			return RaycastResult{}, false
		}
	}

	// Box entirely behind the ray
	if tMax < 0 {
		return RaycastResult{}, false
	}

	t, axis, sign := tMin, minAxis, -1.0
	if tMin < 0 {
		t, axis, sign = tMax, maxAxis, 1.0
	}
	if axis < 0 {
		return RaycastResult{}, false
	}

	var normal mgl64.Vec3
	normal[axis] = sign * math.Copysign(1, ray.Direction[axis])

	return RaycastResult{
		Point:  ray.At(t),
		Normal: normal,
		T:      t,
		Hit:    true,
	}, true
}

// RaycastOBB casts the ray in the box frame and transforms the hit back to world space
func RaycastOBB(ray Ray, o OBB) (RaycastResult, bool) {
	inverse := o.Orientation.Conjugate()
	local := Ray{
		Origin:    inverse.Rotate(ray.Origin.Sub(o.Position)),
		Direction: inverse.Rotate(ray.Direction),
	}

	result, hit := RaycastAABB(local, AABB{Min: o.HalfSize.Mul(-1), Max: o.HalfSize})
	if !hit {
		return RaycastResult{}, false
	}

	result.Point = o.Orientation.Rotate(result.Point).Add(o.Position)
	result.Normal = o.Orientation.Rotate(result.Normal)

	return result, true
}

// RaycastSphere reports the first intersection of the ray with the sphere,
// or the exit point when the origin is inside
func RaycastSphere(ray Ray, s Sphere) (RaycastResult, bool) {
	if ray.Direction.LenSqr() < epsilon {
		return RaycastResult{}, false
	}

	e := s.Position.Sub(ray.Origin)
	rSq := s.Radius * s.Radius
	eSq := e.LenSqr()
	a := e.Dot(ray.Direction)
	bSq := eSq - a*a

	if rSq-bSq < 0 {
		return RaycastResult{}, false
	}

	f := math.Sqrt(rSq - bSq)
	t := a - f
	if eSq < rSq {
		t = a + f
	}
	if t < 0 {
		return RaycastResult{}, false
	}

	point := ray.At(t)
	return RaycastResult{
		Point:  point,
		Normal: point.Sub(s.Position).Normalize(),
		T:      t,
		Hit:    true,
	}, true
}

// LineTestOBB reports whether the segment enters the box between its two ends
func LineTestOBB(line Line, o OBB) bool {
	lengthSq := line.LengthSqr()
	if lengthSq < epsilon*epsilon {
		return false
	}

	result, hit := RaycastOBB(NewRay(line.Start, line.End.Sub(line.Start)), o)
	if !hit {
		return false
	}

	return result.T >= 0 && result.T*result.T < lengthSq
}

// LineTestSphere reports whether the segment passes within the sphere
func LineTestSphere(line Line, s Sphere) bool {
	closest := ClosestPointLine(s.Position, line)

	return s.Position.Sub(closest).LenSqr() < s.Radius*s.Radius
}

// ClosestPointLine returns the point of the segment closest to point
func ClosestPointLine(point mgl64.Vec3, line Line) mgl64.Vec3 {
	ab := line.End.Sub(line.Start)
	lengthSq := ab.LenSqr()
	if lengthSq < epsilon*epsilon {
		return line.Start
	}

	t := mgl64.Clamp(point.Sub(line.Start).Dot(ab)/lengthSq, 0, 1)

	return line.Start.Add(ab.Mul(t))
}
