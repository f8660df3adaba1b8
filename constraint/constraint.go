package constraint

import (
	"math"

	"github.com/akmonengine/impulse/actor"
)

// Constraint is solved in two phases every step: velocities before integration,
// positions after
type Constraint interface {
	SolveVelocity()
	SolvePosition(slack, percent float64)
}

var _ Constraint = (*ContactConstraint)(nil)

// ComputeRestitution keeps the least bouncy of both surfaces
func ComputeRestitution(a, b float64) float64 {
	return math.Min(a, b)
}

// ComputeFriction is the geometric mean of both coefficients
func ComputeFriction(a, b float64) float64 {
	return math.Sqrt(a * b)
}

// inverseMass treats a nil body as an immovable partner
func inverseMass(rb *actor.RigidBody) float64 {
	if rb == nil {
		return 0
	}

	return rb.InverseMass()
}
