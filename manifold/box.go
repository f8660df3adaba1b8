package manifold

import (
	"math"

	"github.com/akmonengine/impulse/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// MaxContacts is the largest manifold produced for a box pair
const MaxContacts = 4

// duplicateSqr merges contacts closer than 1e-4
const duplicateSqr = 1e-8

// OBBOBB collides two oriented boxes.
//
// Algorithm:
//  1. Project both boxes on the 15 SAT axes; any separating axis means no collision
//  2. The axis of least penetration becomes the normal (oriented A toward B), its overlap the depth
//  3. Clip the edges of each box against the face planes of the other, keeping points inside both
//  4. Project the clipped points onto the plane halfway through the penetration
//  5. Merge duplicates and keep at most MaxContacts extreme points
func OBBOBB(a, b geometry.OBB) Manifold {
	depth := math.Inf(1)
	var normal mgl64.Vec3

	for _, axis := range geometry.CandidateAxes(a.Axes(), b.Axes()) {
		if geometry.IsDegenerateAxis(axis) {
			continue
		}
		axis = axis.Normalize()

		d, flip := penetrationDepth(a, b, axis)
		if d <= 0 {
			return Manifold{}
		}
		if d < depth {
			depth = d
			normal = axis
			if flip {
				normal = axis.Mul(-1)
			}
		}
	}

	if math.IsInf(depth, 1) {
		return Manifold{}
	}

	contacts := clipEdgesToOBB(b.Edges(), a)
	contacts = append(contacts, clipEdgesToOBB(a.Edges(), b)...)

	interval := geometry.IntervalOBB(a, normal)
	distance := (interval.Max-interval.Min)*0.5 - depth*0.5
	pointOnPlane := a.Position.Add(normal.Mul(distance))

	for i, c := range contacts {
		contacts[i] = c.Add(normal.Mul(normal.Dot(pointOnPlane.Sub(c))))
	}
	contacts = removeDuplicates(contacts)

	// One box fully inside the other, no edge crosses a face
	if len(contacts) == 0 {
		contacts = []mgl64.Vec3{pointOnPlane}
	}
	if len(contacts) > MaxContacts {
		contacts = reduceTo4Points(contacts, normal)
	}

	return Manifold{
		Colliding: true,
		Normal:    normal,
		Depth:     depth,
		Contacts:  contacts,
	}
}

// penetrationDepth returns the overlap of both boxes along a normalized axis,
// and whether B lies on the negative side of A so that the axis must be flipped
func penetrationDepth(a, b geometry.OBB, axis mgl64.Vec3) (float64, bool) {
	i1 := geometry.IntervalOBB(a, axis)
	i2 := geometry.IntervalOBB(b, axis)

	if !i1.Overlaps(i2) {
		return 0, false
	}

	len1 := i1.Max - i1.Min
	len2 := i2.Max - i2.Min
	length := math.Max(i1.Max, i2.Max) - math.Min(i1.Min, i2.Min)

	return (len1 + len2) - length, i2.Min < i1.Min
}

// clipEdgesToOBB intersects every edge with the face planes of the box
// and keeps the intersections lying on the box
func clipEdgesToOBB(edges [12]geometry.Line, o geometry.OBB) []mgl64.Vec3 {
	var result []mgl64.Vec3

	for _, plane := range o.Planes() {
		for _, edge := range edges {
			point, ok := geometry.ClipToPlane(plane, edge)
			if ok && geometry.PointInOBB(point, o) {
				result = append(result, point)
			}
		}
	}

	return result
}

func removeDuplicates(points []mgl64.Vec3) []mgl64.Vec3 {
	result := points[:0]
	for _, p := range points {
		duplicate := false
		for _, kept := range result {
			if p.Sub(kept).LenSqr() < duplicateSqr {
				duplicate = true
				break
			}
		}
		if !duplicate {
			result = append(result, p)
		}
	}

	return result
}

// reduceTo4Points keeps the extreme points of the manifold along two tangent directions
func reduceTo4Points(points []mgl64.Vec3, normal mgl64.Vec3) []mgl64.Vec3 {
	tangent1, tangent2 := tangentBasis(normal)

	minX, maxX, minY, maxY := 0, 0, 0, 0
	minXval, maxXval := math.Inf(1), math.Inf(-1)
	minYval, maxYval := math.Inf(1), math.Inf(-1)

	for i, p := range points {
		x := p.Dot(tangent1)
		y := p.Dot(tangent2)

		if x < minXval {
			minXval, minX = x, i
		}
		if x > maxXval {
			maxXval, maxX = x, i
		}
		if y < minYval {
			minYval, minY = y, i
		}
		if y > maxYval {
			maxYval, maxY = y, i
		}
	}

	result := make([]mgl64.Vec3, 0, MaxContacts)
	seen := make(map[int]bool, MaxContacts)
	for _, idx := range [4]int{minX, maxX, minY, maxY} {
		if !seen[idx] {
			seen[idx] = true
			result = append(result, points[idx])
		}
	}

	return result
}

func tangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	tangent1 := mgl64.Vec3{1, 0, 0}
	if math.Abs(normal.X()) > 0.9 {
		tangent1 = mgl64.Vec3{0, 1, 0}
	}

	tangent1 = tangent1.Sub(normal.Mul(tangent1.Dot(normal))).Normalize()
	tangent2 := normal.Cross(tangent1).Normalize()

	return tangent1, tangent2
}
