package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// pointInTolerance absorbs the rounding of points produced by clipping,
// which land exactly on a face plane
const pointInTolerance = 1e-5

// OBB represents an oriented bounding box
// The box is defined by its center, half-extents along its local axes and a rotation
type OBB struct {
	Position    mgl64.Vec3
	HalfSize    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewOBB creates an OBB. A zero quaternion is replaced by the identity.
func NewOBB(position, halfSize mgl64.Vec3, orientation mgl64.Quat) OBB {
	if orientation.Len() == 0 {
		orientation = mgl64.QuatIdent()
	}

	return OBB{
		Position:    position,
		HalfSize:    halfSize,
		Orientation: orientation,
	}
}

// Axes returns the local X, Y, Z axes rotated into world space
func (o OBB) Axes() [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{
		o.Orientation.Rotate(mgl64.Vec3{1, 0, 0}),
		o.Orientation.Rotate(mgl64.Vec3{0, 1, 0}),
		o.Orientation.Rotate(mgl64.Vec3{0, 0, 1}),
	}
}

// Corners returns the 8 world space corners.
// Bit 0, 1, 2 of the index select the positive side of the X, Y, Z axis.
func (o OBB) Corners() [8]mgl64.Vec3 {
	var corners [8]mgl64.Vec3
	for i := range corners {
		local := mgl64.Vec3{-o.HalfSize.X(), -o.HalfSize.Y(), -o.HalfSize.Z()}
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				local[k] = o.HalfSize[k]
			}
		}
		corners[i] = o.Orientation.Rotate(local).Add(o.Position)
	}

	return corners
}

// Edges returns the 12 edges of the box, as segments between corners differing on a single axis
func (o OBB) Edges() [12]Line {
	corners := o.Corners()

	var edges [12]Line
	n := 0
	for i := range corners {
		for k := 0; k < 3; k++ {
			bit := 1 << k
			if i&bit == 0 {
				edges[n] = Line{Start: corners[i], End: corners[i|bit]}
				n++
			}
		}
	}

	return edges
}

// Planes returns the 6 face planes, normals pointing outward
func (o OBB) Planes() [6]Plane {
	axes := o.Axes()

	var planes [6]Plane
	for k, axis := range axes {
		d := axis.Dot(o.Position)
		planes[2*k] = Plane{Normal: axis, Distance: d + o.HalfSize[k]}
		planes[2*k+1] = Plane{Normal: axis.Mul(-1), Distance: -d + o.HalfSize[k]}
	}

	return planes
}

// AABB returns the world space bounds of the rotated box
func (o OBB) AABB() AABB {
	corners := o.Corners()
	min, max := corners[0], corners[0]
	for _, c := range corners[1:] {
		for k := 0; k < 3; k++ {
			min[k] = math.Min(min[k], c[k])
			max[k] = math.Max(max[k], c[k])
		}
	}

	return AABB{Min: min, Max: max}
}

// toLocal transforms a world point into the box frame
func (o OBB) toLocal(point mgl64.Vec3) mgl64.Vec3 {
	return o.Orientation.Conjugate().Rotate(point.Sub(o.Position))
}

// PointInOBB reports whether point lies inside the box, surface included
func PointInOBB(point mgl64.Vec3, o OBB) bool {
	local := o.toLocal(point)

	return math.Abs(local.X()) <= o.HalfSize.X()+pointInTolerance &&
		math.Abs(local.Y()) <= o.HalfSize.Y()+pointInTolerance &&
		math.Abs(local.Z()) <= o.HalfSize.Z()+pointInTolerance
}

// ClosestPointOBB returns the point of the box closest to point.
// A point inside the box is its own closest point.
func ClosestPointOBB(point mgl64.Vec3, o OBB) mgl64.Vec3 {
	local := o.toLocal(point)

	clamped := mgl64.Vec3{
		mgl64.Clamp(local.X(), -o.HalfSize.X(), o.HalfSize.X()),
		mgl64.Clamp(local.Y(), -o.HalfSize.Y(), o.HalfSize.Y()),
		mgl64.Clamp(local.Z(), -o.HalfSize.Z(), o.HalfSize.Z()),
	}

	return o.Orientation.Rotate(clamped).Add(o.Position)
}

// IntervalOBB projects the box on axis
func IntervalOBB(o OBB, axis mgl64.Vec3) Interval {
	corners := o.Corners()

	return project(corners[:], axis)
}
