package actor

import (
	"math"

	"github.com/akmonengine/impulse/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultDamping is the per-step velocity factor applied when a material leaves damping unset
const DefaultDamping = 0.98

type Material struct {
	Mass        float64 // 0 = immovable
	Restitution float64 // 0= no rebound, 1= perfect restitution
	Friction    float64

	// Per-step velocity factors, 1 disables damping, 0 selects DefaultDamping
	LinearDamping  float64
	AngularDamping float64
}

// DefaultMaterial is a unit mass body bouncing at half speed
func DefaultMaterial() Material {
	return Material{
		Mass:           1,
		Restitution:    0.5,
		Friction:       0.6,
		LinearDamping:  DefaultDamping,
		AngularDamping: DefaultDamping,
	}
}

// IsImmovable reports whether the material has infinite mass
func (material Material) IsImmovable() bool {
	return material.Mass == 0
}

func (material Material) withDefaults() Material {
	if material.LinearDamping <= 0 {
		material.LinearDamping = DefaultDamping
	}
	if material.AngularDamping <= 0 {
		material.AngularDamping = DefaultDamping
	}

	return material
}

// RigidBody represents a rigid body in the physics simulation
type RigidBody struct {
	Kind Kind

	// Spatial properties
	PreviousTransform Transform
	Transform         Transform

	// Linear motion
	Velocity mgl64.Vec3 // m/s
	Forces   mgl64.Vec3

	// Angular motion, volume bodies only
	AngularVelocity mgl64.Vec3 // rad/s
	Torques         mgl64.Vec3

	InertiaLocal        mgl64.Mat3
	InverseInertiaLocal mgl64.Mat3

	Material Material

	Radius      float64    // KindSphere
	HalfExtents mgl64.Vec3 // KindBox

	// Colliding is set when the body took part in a contact during the last step
	Colliding bool

	accumulatedForce  mgl64.Vec3
	accumulatedTorque mgl64.Vec3

	sphere geometry.Sphere
	obb    geometry.OBB
}

// NewParticle creates a point mass at position
func NewParticle(position mgl64.Vec3, material Material) *RigidBody {
	transform := NewTransform()
	transform.Position = position

	return newRigidBody(KindParticle, transform, material)
}

// NewSphere creates a sphere volume body
func NewSphere(transform Transform, radius float64, material Material) *RigidBody {
	rb := newRigidBody(KindSphere, transform, material)
	rb.Radius = radius
	rb.computeInertia()
	rb.SyncCollisionVolumes()

	return rb
}

// NewBox creates an oriented box volume body
func NewBox(transform Transform, halfExtents mgl64.Vec3, material Material) *RigidBody {
	rb := newRigidBody(KindBox, transform, material)
	rb.HalfExtents = halfExtents
	rb.computeInertia()
	rb.SyncCollisionVolumes()

	return rb
}

func newRigidBody(kind Kind, transform Transform, material Material) *RigidBody {
	if transform.Rotation.Len() == 0 {
		transform.Rotation = mgl64.QuatIdent()
	}

	return &RigidBody{
		Kind:              kind,
		PreviousTransform: transform,
		Transform:         transform,
		Material:          material.withDefaults(),
	}
}

func (rb *RigidBody) computeInertia() {
	switch rb.Kind {
	case KindSphere:
		rb.InertiaLocal = SphereInertia(rb.Material.Mass, rb.Radius)
	case KindBox:
		rb.InertiaLocal = BoxInertia(rb.Material.Mass, rb.HalfExtents)
	default:
		rb.InertiaLocal = mgl64.Mat3{}
	}
	rb.InverseInertiaLocal = InverseDiagonal(rb.InertiaLocal)
}

// SetMass changes the mass and recomputes the inertia tensor
func (rb *RigidBody) SetMass(mass float64) {
	rb.Material.Mass = mass
	rb.computeInertia()
}

// InverseMass is 0 for immovable bodies
func (rb *RigidBody) InverseMass() float64 {
	if rb.Material.Mass == 0 {
		return 0
	}

	return 1.0 / rb.Material.Mass
}

// InverseInertiaWorld returns R * I_local^(-1) * R^T
func (rb *RigidBody) InverseInertiaWorld() mgl64.Mat3 {
	if !rb.Kind.HasVolume() || rb.Material.IsImmovable() {
		return mgl64.Mat3{}
	}

	R := rb.Transform.Rotation.Mat4().Mat3()
	return R.Mul3(rb.InverseInertiaLocal).Mul3(R.Transpose())
}

// ApplyForces computes the forces of this step: gravity scaled by the mass, plus every
// force and torque added since the previous step
func (rb *RigidBody) ApplyForces(gravity mgl64.Vec3) {
	rb.Forces = gravity.Mul(rb.Material.Mass).Add(rb.accumulatedForce)
	rb.Torques = rb.accumulatedTorque
	rb.ClearForces()
}

// Update integrates the body over dt with symplectic Euler
func (rb *RigidBody) Update(dt float64) {
	if rb.Material.IsImmovable() {
		return
	}

	rb.PreviousTransform = rb.Transform

	// ========== LINEAR ==========
	acceleration := rb.Forces.Mul(rb.InverseMass())
	rb.Velocity = rb.Velocity.Add(acceleration.Mul(dt)).Mul(rb.Material.LinearDamping)
	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))

	// ========== ANGULAR ==========
	if rb.Kind.HasVolume() {
		angularAcceleration := rb.InverseInertiaWorld().Mul3x1(rb.Torques)
		rb.AngularVelocity = rb.AngularVelocity.Add(angularAcceleration.Mul(dt)).Mul(rb.Material.AngularDamping)

		// q += ½ ω q dt
		omegaQuat := mgl64.Quat{V: rb.AngularVelocity, W: 0}
		qDot := omegaQuat.Mul(rb.Transform.Rotation).Scale(0.5)
		rb.Transform.Rotation = rb.Transform.Rotation.Add(qDot.Scale(dt)).Normalize()
	}

	rb.SyncCollisionVolumes()
}

// AddForce accumulates a force (N) consumed by the next ApplyForces
func (rb *RigidBody) AddForce(force mgl64.Vec3) {
	if !rb.Material.IsImmovable() {
		rb.accumulatedForce = rb.accumulatedForce.Add(force)
	}
}

// AddTorque accumulates a torque (N⋅m) consumed by the next ApplyForces
func (rb *RigidBody) AddTorque(torque mgl64.Vec3) {
	if !rb.Material.IsImmovable() && rb.Kind.HasVolume() {
		rb.accumulatedTorque = rb.accumulatedTorque.Add(torque)
	}
}

func (rb *RigidBody) ClearForces() {
	rb.accumulatedForce = mgl64.Vec3{0, 0, 0}
	rb.accumulatedTorque = mgl64.Vec3{0, 0, 0}
}

// AddLinearImpulse changes the velocity by impulse / mass
func (rb *RigidBody) AddLinearImpulse(impulse mgl64.Vec3) {
	rb.Velocity = rb.Velocity.Add(impulse.Mul(rb.InverseMass()))
}

// AddRotationalImpulse changes the angular velocity by the torque of impulse applied at a world point
func (rb *RigidBody) AddRotationalImpulse(point, impulse mgl64.Vec3) {
	if !rb.Kind.HasVolume() || rb.Material.IsImmovable() {
		return
	}

	torque := point.Sub(rb.Transform.Position).Cross(impulse)
	rb.AngularVelocity = rb.AngularVelocity.Add(rb.InverseInertiaWorld().Mul3x1(torque))
}

// VelocityAt returns the velocity of the body at a world point
func (rb *RigidBody) VelocityAt(point mgl64.Vec3) mgl64.Vec3 {
	r := point.Sub(rb.Transform.Position)

	return rb.Velocity.Add(rb.AngularVelocity.Cross(r))
}

// SyncCollisionVolumes recomputes the collision volume from the body state
func (rb *RigidBody) SyncCollisionVolumes() {
	switch rb.Kind {
	case KindSphere:
		rb.sphere = geometry.Sphere{Position: rb.Transform.Position, Radius: rb.Radius}
	case KindBox:
		rb.obb = geometry.NewOBB(rb.Transform.Position, rb.HalfExtents, rb.Transform.Rotation)
	}
}

// Sphere returns the collision volume of a KindSphere body
func (rb *RigidBody) Sphere() geometry.Sphere {
	return rb.sphere
}

// OBB returns the collision volume of a KindBox body
func (rb *RigidBody) OBB() geometry.OBB {
	return rb.obb
}

// AABB bounds the collision volume, or the position of a particle
func (rb *RigidBody) AABB() geometry.AABB {
	switch rb.Kind {
	case KindSphere:
		return rb.sphere.AABB()
	case KindBox:
		return rb.obb.AABB()
	}

	return geometry.AABB{Min: rb.Transform.Position, Max: rb.Transform.Position}
}

// IsFinite reports whether the whole kinematic state is free of NaN and Inf
func (rb *RigidBody) IsFinite() bool {
	for _, v := range []mgl64.Vec3{rb.Transform.Position, rb.Velocity, rb.AngularVelocity, rb.Transform.Rotation.V} {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}

	return !math.IsNaN(rb.Transform.Rotation.W) && !math.IsInf(rb.Transform.Rotation.W, 0)
}
