package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPlaneSignedDistance(t *testing.T) {
	p := Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 2}

	if d := p.SignedDistance(mgl64.Vec3{5, 3, 5}); !almostEqual(d, 1, 1e-12) {
		t.Errorf("above: %v, want 1", d)
	}
	if d := p.SignedDistance(mgl64.Vec3{0, 0, 0}); !almostEqual(d, -2, 1e-12) {
		t.Errorf("below: %v, want -2", d)
	}
	if got := ClosestPointPlane(mgl64.Vec3{5, 3, 5}, p); !vec3AlmostEqual(got, mgl64.Vec3{5, 2, 5}, 1e-12) {
		t.Errorf("ClosestPointPlane = %v, want (5, 2, 5)", got)
	}
}

func TestClipToPlane(t *testing.T) {
	p := Plane{Normal: mgl64.Vec3{1, 0, 0}, Distance: 1}

	tests := []struct {
		name     string
		line     Line
		wantOK   bool
		expected mgl64.Vec3
	}{
		{"crossing", Line{Start: mgl64.Vec3{0, 2, 0}, End: mgl64.Vec3{2, 2, 0}}, true, mgl64.Vec3{1, 2, 0}},
		{"ending on the plane", Line{Start: mgl64.Vec3{0, 0, 0}, End: mgl64.Vec3{1, 0, 0}}, true, mgl64.Vec3{1, 0, 0}},
		{"short of the plane", Line{Start: mgl64.Vec3{0, 0, 0}, End: mgl64.Vec3{0.5, 0, 0}}, false, mgl64.Vec3{}},
		{"parallel", Line{Start: mgl64.Vec3{0, 0, 0}, End: mgl64.Vec3{0, 5, 0}}, false, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClipToPlane(p, tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !vec3AlmostEqual(got, tt.expected, 1e-12) {
				t.Errorf("ClipToPlane = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpherePlane(t *testing.T) {
	p := Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 1}

	tests := []struct {
		name     string
		sphere   Sphere
		expected bool
	}{
		{"crossing", Sphere{Position: mgl64.Vec3{0, 1.2, 0}, Radius: 0.5}, true},
		{"touching from above", Sphere{Position: mgl64.Vec3{3, 1.5, 3}, Radius: 0.5}, true},
		{"below", Sphere{Position: mgl64.Vec3{0, 0.2, 0}, Radius: 0.5}, false},
		{"above", Sphere{Position: mgl64.Vec3{0, 2, 0}, Radius: 0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpherePlane(tt.sphere, p); got != tt.expected {
				t.Errorf("SpherePlane() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAABBPlane(t *testing.T) {
	tilted := Plane{Normal: mgl64.Vec3{1, 1, 0}.Normalize(), Distance: 0}

	tests := []struct {
		name     string
		box      AABB
		plane    Plane
		expected bool
	}{
		{"straddling", NewAABB(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0.5, 1}), Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 1.2}, true},
		{"above", NewAABB(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{1, 0.5, 1}), Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 1.2}, false},
		// The lower corner (-0.1, -0.1, z) lies behind the diagonal plane
		{"corner on a tilted plane", NewAABB(mgl64.Vec3{0.9, 0.9, 0}, mgl64.Vec3{1, 1, 1}), tilted, true},
		{"clear of a tilted plane", NewAABB(mgl64.Vec3{1.5, 1.5, 0}, mgl64.Vec3{1, 1, 1}), tilted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AABBPlane(tt.box, tt.plane); got != tt.expected {
				t.Errorf("AABBPlane() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOBBPlane(t *testing.T) {
	floor := Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0}
	// Rotated 45° around Z, a unit cube reaches √2/2 ≈ 0.707 along Y
	rotated := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1})

	tests := []struct {
		name     string
		box      OBB
		expected bool
	}{
		{"axis aligned, crossing", NewOBB(mgl64.Vec3{0, 0.4, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.QuatIdent()), true},
		{"axis aligned, above", NewOBB(mgl64.Vec3{0, 0.6, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.QuatIdent()), false},
		{"rotated, corner below", NewOBB(mgl64.Vec3{0, 0.6, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, rotated), true},
		{"rotated, above", NewOBB(mgl64.Vec3{0, 0.8, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, rotated), false},
		{"rotated, fully below", NewOBB(mgl64.Vec3{0, -0.8, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, rotated), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OBBPlane(tt.box, floor); got != tt.expected {
				t.Errorf("OBBPlane() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPlanePlane(t *testing.T) {
	floor := Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 1}

	tests := []struct {
		name     string
		other    Plane
		expected bool
	}{
		{"perpendicular", Plane{Normal: mgl64.Vec3{1, 0, 0}, Distance: 5}, true},
		{"oblique", Plane{Normal: mgl64.Vec3{0, 1, 1}.Normalize(), Distance: -3}, true},
		{"parallel and distinct", Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 2}, false},
		{"coincident", Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 1}, true},
		{"coincident, flipped", Plane{Normal: mgl64.Vec3{0, -1, 0}, Distance: -1}, true},
		{"opposite and distinct", Plane{Normal: mgl64.Vec3{0, -1, 0}, Distance: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlanePlane(floor, tt.other); got != tt.expected {
				t.Errorf("PlanePlane() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRaycastPlane(t *testing.T) {
	p := Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 1}

	tests := []struct {
		name      string
		ray       Ray
		wantHit   bool
		wantPoint mgl64.Vec3
		wantT     float64
	}{
		{"straight down", NewRay(mgl64.Vec3{2, 4, 0}, mgl64.Vec3{0, -1, 0}), true, mgl64.Vec3{2, 1, 0}, 3},
		{"slanted", NewRay(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{1, -1, 0}), true, mgl64.Vec3{1, 1, 0}, math.Sqrt2},
		{"pointing away", NewRay(mgl64.Vec3{0, 4, 0}, mgl64.Vec3{0, 1, 0}), false, mgl64.Vec3{}, 0},
		{"parallel", NewRay(mgl64.Vec3{0, 4, 0}, mgl64.Vec3{1, 0, 0}), false, mgl64.Vec3{}, 0},
		{"from behind", NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}), false, mgl64.Vec3{}, 0},
		{"plane behind the origin", NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, -1, 0}), false, mgl64.Vec3{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, hit := RaycastPlane(tt.ray, p)
			if hit != tt.wantHit || result.Hit != tt.wantHit {
				t.Fatalf("RaycastPlane() hit = %v, want %v", hit, tt.wantHit)
			}
			if !hit {
				return
			}
			if !vec3AlmostEqual(result.Point, tt.wantPoint, 1e-9) {
				t.Errorf("Point = %v, want %v", result.Point, tt.wantPoint)
			}
			if !almostEqual(result.T, tt.wantT, 1e-9) {
				t.Errorf("T = %v, want %v", result.T, tt.wantT)
			}
			if result.Normal != p.Normal {
				t.Errorf("Normal = %v, want %v", result.Normal, p.Normal)
			}
		})
	}
}

func TestLineTestPlane(t *testing.T) {
	p := Plane{Normal: mgl64.Vec3{0, 0, 1}, Distance: 0}

	tests := []struct {
		name     string
		line     Line
		expected bool
	}{
		{"crossing", Line{Start: mgl64.Vec3{0, 0, -1}, End: mgl64.Vec3{0, 0, 1}}, true},
		{"crossing backwards", Line{Start: mgl64.Vec3{1, 1, 2}, End: mgl64.Vec3{1, 1, -2}}, true},
		{"same side", Line{Start: mgl64.Vec3{0, 0, 1}, End: mgl64.Vec3{0, 0, 3}}, false},
		{"in a parallel plane", Line{Start: mgl64.Vec3{0, 0, 1}, End: mgl64.Vec3{5, 0, 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineTestPlane(tt.line, p); got != tt.expected {
				t.Errorf("LineTestPlane() = %v, want %v", got, tt.expected)
			}
		})
	}
}
