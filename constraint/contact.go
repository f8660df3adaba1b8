package constraint

import (
	"math"

	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/manifold"
	"github.com/go-gl/mathgl/mgl64"
)

// degenerateSqr is the squared length under which a tangent direction is ignored
const degenerateSqr = 1e-12

// ContactConstraint resolves one manifold between two bodies with sequential impulses.
// A nil BodyB stands for a static constraint: infinite mass, zero velocity.
type ContactConstraint struct {
	BodyA    *actor.RigidBody
	BodyB    *actor.RigidBody
	Manifold manifold.Manifold

	Restitution float64
	Friction    float64
}

// NewContactConstraint combines the materials of both bodies
func NewContactConstraint(a, b *actor.RigidBody, m manifold.Manifold) *ContactConstraint {
	return &ContactConstraint{
		BodyA:       a,
		BodyB:       b,
		Manifold:    m,
		Restitution: ComputeRestitution(a.Material.Restitution, b.Material.Restitution),
		Friction:    ComputeFriction(a.Material.Friction, b.Material.Friction),
	}
}

// SolveVelocity applies one pass of normal and friction impulses to the manifold.
// The manifold is solved as a single contact at the centroid of its points, and each impulse
// is divided by the number of points and applied at every one of them: the result does not
// depend on the order of the points.
func (c *ContactConstraint) SolveVelocity() {
	if !c.Manifold.Colliding || len(c.Manifold.Contacts) == 0 {
		return
	}

	invMassA := inverseMass(c.BodyA)
	invMassB := inverseMass(c.BodyB)
	if invMassA+invMassB == 0 {
		return
	}

	normal := c.Manifold.Normal
	point := c.centroid()

	relativeVelocity := c.relativeVelocity(point)
	normalVelocity := relativeVelocity.Dot(normal)

	// Separating
	if normalVelocity > 0 {
		return
	}

	// ========== NORMAL IMPULSE ==========
	denominator := c.effectiveMass(point, normal)
	if denominator < degenerateSqr {
		return
	}

	j := -(1 + c.Restitution) * normalVelocity / denominator
	c.applySharedImpulse(normal.Mul(j))

	// ========== FRICTION ==========
	tangent := relativeVelocity.Sub(normal.Mul(normalVelocity))
	if tangent.LenSqr() < degenerateSqr {
		return
	}
	tangent = tangent.Normalize()

	denominator = c.effectiveMass(point, tangent)
	if denominator < degenerateSqr {
		return
	}

	jt := -relativeVelocity.Dot(tangent) / denominator
	maxFriction := j * c.Friction
	jt = math.Max(-maxFriction, math.Min(jt, maxFriction))

	c.applySharedImpulse(tangent.Mul(jt))
}

// Penetration is the interpenetration distance of both bodies.
// Manifolds involving a sphere carry half of it in Depth.
func (c *ContactConstraint) Penetration() float64 {
	if isSphere(c.BodyA) || isSphere(c.BodyB) {
		return c.Manifold.Depth * 2
	}

	return c.Manifold.Depth
}

// SolvePosition moves both bodies apart along the normal by a fraction of the penetration
// exceeding slack, weighted by inverse mass
func (c *ContactConstraint) SolvePosition(slack, percent float64) {
	if !c.Manifold.Colliding {
		return
	}

	invMassA := inverseMass(c.BodyA)
	invMassB := inverseMass(c.BodyB)
	totalInvMass := invMassA + invMassB
	if totalInvMass == 0 {
		return
	}

	depth := math.Max(c.Penetration()-slack, 0)
	correction := c.Manifold.Normal.Mul(depth / totalInvMass * percent)

	if c.BodyA != nil && invMassA > 0 {
		c.BodyA.Transform.Position = c.BodyA.Transform.Position.Sub(correction.Mul(invMassA))
		c.BodyA.SyncCollisionVolumes()
	}
	if c.BodyB != nil && invMassB > 0 {
		c.BodyB.Transform.Position = c.BodyB.Transform.Position.Add(correction.Mul(invMassB))
		c.BodyB.SyncCollisionVolumes()
	}
}

// centroid is the mean of the contact points
func (c *ContactConstraint) centroid() mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, point := range c.Manifold.Contacts {
		sum = sum.Add(point)
	}

	return sum.Mul(1.0 / float64(len(c.Manifold.Contacts)))
}

// relativeVelocity of B with respect to A at a world point
func (c *ContactConstraint) relativeVelocity(point mgl64.Vec3) mgl64.Vec3 {
	var vA, vB mgl64.Vec3
	if c.BodyA != nil {
		vA = c.BodyA.VelocityAt(point)
	}
	if c.BodyB != nil {
		vB = c.BodyB.VelocityAt(point)
	}

	return vB.Sub(vA)
}

// effectiveMass is the impulse denominator along direction:
// 1/mA + 1/mB + direction · ((IA⁻¹ (rA × d)) × rA + (IB⁻¹ (rB × d)) × rB)
func (c *ContactConstraint) effectiveMass(point, direction mgl64.Vec3) float64 {
	total := inverseMass(c.BodyA) + inverseMass(c.BodyB)

	for _, body := range [2]*actor.RigidBody{c.BodyA, c.BodyB} {
		if body == nil {
			continue
		}
		r := point.Sub(body.Transform.Position)
		angular := body.InverseInertiaWorld().Mul3x1(r.Cross(direction)).Cross(r)
		total += direction.Dot(angular)
	}

	return total
}

// applySharedImpulse splits impulse evenly over the contact points
func (c *ContactConstraint) applySharedImpulse(impulse mgl64.Vec3) {
	share := impulse.Mul(1.0 / float64(len(c.Manifold.Contacts)))
	for _, point := range c.Manifold.Contacts {
		c.applyImpulse(point, share)
	}
}

// applyImpulse pushes B along impulse and A the opposite way
func (c *ContactConstraint) applyImpulse(point, impulse mgl64.Vec3) {
	if c.BodyA != nil {
		c.BodyA.AddLinearImpulse(impulse.Mul(-1))
		c.BodyA.AddRotationalImpulse(point, impulse.Mul(-1))
	}
	if c.BodyB != nil {
		c.BodyB.AddLinearImpulse(impulse)
		c.BodyB.AddRotationalImpulse(point, impulse)
	}
}

func isSphere(rb *actor.RigidBody) bool {
	return rb != nil && rb.Kind == actor.KindSphere
}
