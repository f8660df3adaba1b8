package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// gimbalThreshold is the |sin(pitch)| above which yaw and roll become indistinguishable
const gimbalThreshold = 0.9999999

// Transform represents a position and rotation in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// EulerToQuat converts Euler angles in radians, applied in X then Y then Z order
// (R = Rx * Ry * Rz), to a unit quaternion
func EulerToQuat(euler mgl64.Vec3) mgl64.Quat {
	qx := mgl64.QuatRotate(euler.X(), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(euler.Y(), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(euler.Z(), mgl64.Vec3{0, 0, 1})

	return qx.Mul(qy).Mul(qz).Normalize()
}

// QuatToEuler is the inverse of EulerToQuat.
// The conversion is lossy near gimbal lock (pitch of ±π/2), where Z is reported as 0:
// never accumulate rotations through repeated round trips.
func QuatToEuler(q mgl64.Quat) mgl64.Vec3 {
	q = q.Normalize()
	w, x, y, z := q.W, q.V.X(), q.V.Y(), q.V.Z()

	r02 := 2 * (x*z + w*y)
	pitch := math.Asin(mgl64.Clamp(r02, -1, 1))

	if math.Abs(r02) > gimbalThreshold {
		r21 := 2 * (y*z + w*x)
		r11 := 1 - 2*(x*x+z*z)

		return mgl64.Vec3{math.Atan2(r21, r11), pitch, 0}
	}

	r12 := 2 * (y*z - w*x)
	r22 := 1 - 2*(x*x+y*y)
	r01 := 2 * (x*y - w*z)
	r00 := 1 - 2*(y*y+z*z)

	return mgl64.Vec3{math.Atan2(-r12, r22), pitch, math.Atan2(-r01, r00)}
}
