// Package geometry implements the value-type primitives of the collision layer
// (sphere, oriented box, axis-aligned box, plane, ray, segment) and the pure predicates
// between them: closest points, containment, raycasts and separating axis overlap tests.
//
// References:
//   - Ericson: "Real-Time Collision Detection" (2004), chapters 4.4 and 5
//   - Szauer: "Game Physics Cookbook" (2017)
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	epsilon = 1e-8

	// Cross products of nearly parallel edges carry no separating information
	degenerateAxisSqr = 1e-6
)

// Interval is the projection of a shape on an axis
type Interval struct {
	Min float64
	Max float64
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Min <= other.Max && other.Min <= i.Max
}

func project(points []mgl64.Vec3, axis mgl64.Vec3) Interval {
	interval := Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, p := range points {
		d := p.Dot(axis)
		interval.Min = math.Min(interval.Min, d)
		interval.Max = math.Max(interval.Max, d)
	}

	return interval
}

// CandidateAxes returns the 15 separating axis candidates of two boxes:
// the 3 face normals of each box, then the 9 cross products of their edge directions.
// Cross products are not normalized and may be degenerate.
func CandidateAxes(axesA, axesB [3]mgl64.Vec3) [15]mgl64.Vec3 {
	var axes [15]mgl64.Vec3
	copy(axes[0:3], axesA[:])
	copy(axes[3:6], axesB[:])

	n := 6
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes[n] = axesA[i].Cross(axesB[j])
			n++
		}
	}

	return axes
}

// IsDegenerateAxis reports whether axis is too short to be tested
func IsDegenerateAxis(axis mgl64.Vec3) bool {
	return axis.LenSqr() < degenerateAxisSqr
}

// OBBOBB tests two oriented boxes for overlap with the separating axis theorem.
// It stops at the first separating axis found.
func OBBOBB(a, b OBB) bool {
	for _, axis := range CandidateAxes(a.Axes(), b.Axes()) {
		if IsDegenerateAxis(axis) {
			continue
		}
		if !IntervalOBB(a, axis).Overlaps(IntervalOBB(b, axis)) {
			return false
		}
	}

	return true
}

// AABBOBB tests an axis-aligned box against an oriented box
func AABBOBB(a AABB, o OBB) bool {
	world := [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for _, axis := range CandidateAxes(world, o.Axes()) {
		if IsDegenerateAxis(axis) {
			continue
		}
		if !IntervalAABB(a, axis).Overlaps(IntervalOBB(o, axis)) {
			return false
		}
	}

	return true
}
