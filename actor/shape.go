package actor

import "github.com/go-gl/mathgl/mgl64"

// Kind selects the variant of a rigid body
type Kind int

const (
	// KindParticle is a point mass without orientation.
	// It only collides against static constraints, through swept-line tests.
	KindParticle Kind = iota

	// KindSphere is a 6-DOF body carrying a sphere collision volume
	KindSphere

	// KindBox is a 6-DOF body carrying an oriented box collision volume
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindParticle:
		return "particle"
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	}

	return "unknown"
}

// HasVolume reports whether bodies of this kind collide pairwise
func (k Kind) HasVolume() bool {
	return k == KindSphere || k == KindBox
}

// SphereInertia returns the local inertia tensor of a solid sphere
func SphereInertia(mass, radius float64) mgl64.Mat3 {
	// I = (2/5) * m * r²
	i := (2.0 / 5.0) * mass * radius * radius

	return mgl64.Mat3{
		i, 0, 0,
		0, i, 0,
		0, 0, i,
	}
}

// BoxInertia returns the local inertia tensor of a solid box
func BoxInertia(mass float64, halfExtents mgl64.Vec3) mgl64.Mat3 {
	// Full dimensions
	x := halfExtents.X() * 2
	y := halfExtents.Y() * 2
	z := halfExtents.Z() * 2

	// I = (m/12) * (dimension1² + dimension2²)
	factor := mass / 12.0
	ix := factor * (y*y + z*z)
	iy := factor * (x*x + z*z)
	iz := factor * (x*x + y*y)

	return mgl64.Mat3{
		ix, 0, 0,
		0, iy, 0,
		0, 0, iz,
	}
}

// InverseDiagonal inverts a diagonal tensor entry by entry.
// A zero entry stays zero: the body does not rotate around that axis.
func InverseDiagonal(m mgl64.Mat3) mgl64.Mat3 {
	var inverse mgl64.Mat3
	for _, i := range [3]int{0, 4, 8} {
		if m[i] != 0 {
			inverse[i] = 1.0 / m[i]
		}
	}

	return inverse
}
