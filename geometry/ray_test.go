package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Raycast Tests
// =============================================================================

func TestNewRay_NormalizesDirection(t *testing.T) {
	ray := NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 3, 4})

	if !almostEqual(ray.Direction.Len(), 1, 1e-12) {
		t.Errorf("|Direction| = %v, want 1", ray.Direction.Len())
	}
	if !vec3AlmostEqual(ray.At(5), mgl64.Vec3{0, 3, 4}, 1e-12) {
		t.Errorf("At(5) = %v", ray.At(5))
	}
}

func TestRaycastAABB(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name       string
		ray        Ray
		wantHit    bool
		wantT      float64
		wantNormal mgl64.Vec3
	}{
		{
			name:       "hit from the left",
			ray:        NewRay(mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{1, 0, 0}),
			wantHit:    true,
			wantT:      4,
			wantNormal: mgl64.Vec3{-1, 0, 0},
		},
		{
			name:       "hit from above",
			ray:        NewRay(mgl64.Vec3{0.5, 3, 0.5}, mgl64.Vec3{0, -1, 0}),
			wantHit:    true,
			wantT:      2,
			wantNormal: mgl64.Vec3{0, 1, 0},
		},
		{
			name:       "origin inside exits through the far face",
			ray:        NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}),
			wantHit:    true,
			wantT:      1,
			wantNormal: mgl64.Vec3{0, 0, 1},
		},
		{
			name:    "box behind the ray",
			ray:     NewRay(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 0, 0}),
			wantHit: false,
		},
		{
			name:    "parallel outside the slab",
			ray:     NewRay(mgl64.Vec3{-5, 2, 0}, mgl64.Vec3{1, 0, 0}),
			wantHit: false,
		},
		{
			name:    "passes beside",
			ray:     NewRay(mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{1, 1, 0}),
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, hit := RaycastAABB(tt.ray, box)
			if hit != tt.wantHit || result.Hit != tt.wantHit {
				t.Fatalf("hit = %v (result.Hit %v), want %v", hit, result.Hit, tt.wantHit)
			}
			if !tt.wantHit {
				return
			}
			if !almostEqual(result.T, tt.wantT, 1e-9) {
				t.Errorf("T = %v, want %v", result.T, tt.wantT)
			}
			if !vec3AlmostEqual(result.Normal, tt.wantNormal, 1e-9) {
				t.Errorf("Normal = %v, want %v", result.Normal, tt.wantNormal)
			}
			if !vec3AlmostEqual(result.Point, tt.ray.At(tt.wantT), 1e-9) {
				t.Errorf("Point = %v, want %v", result.Point, tt.ray.At(tt.wantT))
			}
		})
	}
}

func TestRaycastOBB_RoundTrip(t *testing.T) {
	rotation := mgl64.QuatRotate(math.Pi/6, mgl64.Vec3{0, 1, 0}).Mul(mgl64.QuatRotate(0.4, mgl64.Vec3{1, 0, 0}))
	o := NewOBB(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}, rotation)
	axes := o.Axes()

	for k, axis := range axes {
		for _, sign := range []float64{1, -1} {
			direction := axis.Mul(sign)
			result, hit := RaycastOBB(NewRay(o.Position, direction), o)
			if !hit {
				t.Fatalf("axis %d sign %v: no hit", k, sign)
			}
			if !almostEqual(result.T, o.HalfSize[k], 1e-9) {
				t.Errorf("axis %d sign %v: T = %v, want %v", k, sign, result.T, o.HalfSize[k])
			}
			if !vec3AlmostEqual(result.Normal, direction, 1e-9) {
				t.Errorf("axis %d sign %v: Normal = %v, want %v", k, sign, result.Normal, direction)
			}
		}
	}

	t.Run("from outside toward a face", func(t *testing.T) {
		origin := o.Position.Add(axes[1].Mul(10))
		result, hit := RaycastOBB(NewRay(origin, axes[1].Mul(-1)), o)
		if !hit {
			t.Fatal("no hit")
		}
		if !almostEqual(result.T, 8, 1e-9) {
			t.Errorf("T = %v, want 8", result.T)
		}
		if !vec3AlmostEqual(result.Normal, axes[1], 1e-9) {
			t.Errorf("Normal = %v, want %v", result.Normal, axes[1])
		}
		if !vec3AlmostEqual(result.Point, o.Position.Add(axes[1].Mul(2)), 1e-9) {
			t.Errorf("Point = %v", result.Point)
		}
	})
}

func TestRaycastOBB_FreshResult(t *testing.T) {
	o := NewOBB(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())

	if _, hit := RaycastOBB(NewRay(mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{1, 0, 0}), o); !hit {
		t.Fatal("first cast should hit")
	}

	result, hit := RaycastOBB(NewRay(mgl64.Vec3{-5, 5, 0}, mgl64.Vec3{1, 0, 0}), o)
	if hit {
		t.Fatal("second cast should miss")
	}
	if result != (RaycastResult{}) {
		t.Errorf("miss returned %+v, want the zero value", result)
	}
}

func TestRaycastSphere(t *testing.T) {
	s := Sphere{Position: mgl64.Vec3{}, Radius: 1}

	tests := []struct {
		name       string
		ray        Ray
		wantHit    bool
		wantT      float64
		wantNormal mgl64.Vec3
	}{
		{"outside", NewRay(mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{1, 0, 0}), true, 4, mgl64.Vec3{-1, 0, 0}},
		{"inside", NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}), true, 1, mgl64.Vec3{0, 1, 0}},
		{"behind", NewRay(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 0, 0}), false, 0, mgl64.Vec3{}},
		{"beside", NewRay(mgl64.Vec3{-5, 2, 0}, mgl64.Vec3{1, 0, 0}), false, 0, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, hit := RaycastSphere(tt.ray, s)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if !tt.wantHit {
				return
			}
			if !almostEqual(result.T, tt.wantT, 1e-9) {
				t.Errorf("T = %v, want %v", result.T, tt.wantT)
			}
			if !vec3AlmostEqual(result.Normal, tt.wantNormal, 1e-9) {
				t.Errorf("Normal = %v, want %v", result.Normal, tt.wantNormal)
			}
		})
	}
}

func TestLineTestOBB(t *testing.T) {
	o := NewOBB(mgl64.Vec3{0, 0.5, 1}, mgl64.Vec3{2.5, 0.1, 1}, mgl64.QuatIdent())

	tests := []struct {
		name     string
		line     Line
		expected bool
	}{
		{"crosses the top face", Line{Start: mgl64.Vec3{0, 0.7, 1}, End: mgl64.Vec3{0, 0.55, 1}}, true},
		{"stops above", Line{Start: mgl64.Vec3{0, 2, 1}, End: mgl64.Vec3{0, 0.61, 1}}, false},
		{"points away", Line{Start: mgl64.Vec3{0, 0.7, 1}, End: mgl64.Vec3{0, 2, 1}}, false},
		{"zero length", Line{Start: mgl64.Vec3{0, 0.5, 1}, End: mgl64.Vec3{0, 0.5, 1}}, false},
		{"misses sideways", Line{Start: mgl64.Vec3{5, 0.7, 1}, End: mgl64.Vec3{5, 0.3, 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineTestOBB(tt.line, o); got != tt.expected {
				t.Errorf("LineTestOBB = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLineTestSphere(t *testing.T) {
	s := Sphere{Position: mgl64.Vec3{}, Radius: 1}

	if !LineTestSphere(Line{Start: mgl64.Vec3{-2, 0, 0}, End: mgl64.Vec3{2, 0, 0}}, s) {
		t.Error("line through the center should hit")
	}
	if LineTestSphere(Line{Start: mgl64.Vec3{-2, 0, 0}, End: mgl64.Vec3{-1.5, 0, 0}}, s) {
		t.Error("line stopping short should miss")
	}
	if LineTestSphere(Line{Start: mgl64.Vec3{-2, 1.5, 0}, End: mgl64.Vec3{2, 1.5, 0}}, s) {
		t.Error("line passing above should miss")
	}
}

func TestClosestPointLine(t *testing.T) {
	line := Line{Start: mgl64.Vec3{0, 0, 0}, End: mgl64.Vec3{10, 0, 0}}

	tests := []struct {
		point    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{mgl64.Vec3{5, 3, 0}, mgl64.Vec3{5, 0, 0}},
		{mgl64.Vec3{-5, 3, 0}, mgl64.Vec3{0, 0, 0}},
		{mgl64.Vec3{15, 0, 3}, mgl64.Vec3{10, 0, 0}},
	}

	for _, tt := range tests {
		if got := ClosestPointLine(tt.point, line); !vec3AlmostEqual(got, tt.expected, 1e-12) {
			t.Errorf("ClosestPointLine(%v) = %v, want %v", tt.point, got, tt.expected)
		}
	}
}
