package impulse

import (
	"math"

	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/constraint"
	"github.com/akmonengine/impulse/entity"
	"github.com/akmonengine/impulse/geometry"
	"github.com/google/uuid"
)

// solveStaticConstraints keeps every movable body out of the static boxes
func (w *World) solveStaticConstraints() {
	if len(w.constraints) == 0 {
		return
	}

	for i, body := range w.bodies {
		if body.Material.IsImmovable() {
			continue
		}

		if body.Kind == actor.KindParticle {
			w.constrainParticle(w.ids[i], body)
		} else {
			w.constrainVolume(w.ids[i], body)
		}
	}
}

// constrainParticle stops a particle on the first static box its last move went through,
// and reflects its velocity
func (w *World) constrainParticle(id uuid.UUID, body *actor.RigidBody) {
	for k, sc := range w.constraints {
		hit, ok := w.sweep(body, sc.OBB)
		if !ok {
			continue
		}

		body.Transform.Position = hit.Point.Add(hit.Normal.Mul(w.config.ConstraintNudge))
		body.PreviousTransform.Position = body.Transform.Position

		vn := hit.Normal.Mul(hit.Normal.Dot(body.Velocity))
		vt := body.Velocity.Sub(vn)
		body.Velocity = vt.Sub(vn.Mul(w.bounce(body, sc, vn.Len())))

		body.Colliding = true
		w.contacts = append(w.contacts, hit.Point)
		w.Events.recordCollision(id, w.constraintIDs[k], true)

		break
	}
}

// constrainVolume resolves the contact of a sphere or box against every static box
func (w *World) constrainVolume(id uuid.UUID, body *actor.RigidBody) {
	for k, sc := range w.constraints {
		// The center went through the box during this step: put it back on the surface first
		if hit, ok := w.sweep(body, sc.OBB); ok {
			body.Transform.Position = hit.Point.Add(hit.Normal.Mul(w.config.ConstraintNudge))
			body.SyncCollisionVolumes()
		}

		m, err := manifoldAgainstOBB(body, sc.OBB)
		if err != nil {
			w.logger.Warn("skipping static constraint", "body", id, "constraint", w.constraintIDs[k], "error", err)
			return
		}
		if !m.Colliding {
			continue
		}

		contact := &constraint.ContactConstraint{
			BodyA:       body,
			Manifold:    m,
			Restitution: constraint.ComputeRestitution(body.Material.Restitution, sc.Restitution),
			Friction:    constraint.ComputeFriction(body.Material.Friction, sc.Friction),
		}
		if body.Velocity.Dot(m.Normal) < w.config.RestingSpeed {
			contact.Restitution = 0
		}
		for i := 0; i < w.config.ImpulseIterations; i++ {
			contact.SolveVelocity()
		}

		push := math.Max(0, contact.Penetration()-w.config.PenetrationSlack) + w.config.ConstraintNudge
		body.Transform.Position = body.Transform.Position.Sub(m.Normal.Mul(push))
		body.SyncCollisionVolumes()

		body.Colliding = true
		w.contacts = append(w.contacts, m.Contacts...)
		w.Events.recordCollision(id, w.constraintIDs[k], true)
	}
}

// sweep casts the last move of the body center against a box
func (w *World) sweep(body *actor.RigidBody, o geometry.OBB) (geometry.RaycastResult, bool) {
	line := geometry.Line{Start: body.PreviousTransform.Position, End: body.Transform.Position}
	if !geometry.LineTestOBB(line, o) {
		return geometry.RaycastResult{}, false
	}

	direction := body.Velocity
	if direction.LenSqr() == 0 {
		direction = line.End.Sub(line.Start)
	}

	return geometry.RaycastOBB(geometry.NewRay(line.Start, direction), o)
}

// bounce is the restitution of a particle hitting a static box at normalSpeed
func (w *World) bounce(body *actor.RigidBody, sc *entity.StaticConstraint, normalSpeed float64) float64 {
	if normalSpeed < w.config.RestingSpeed {
		return 0
	}

	return constraint.ComputeRestitution(body.Material.Restitution, sc.Restitution)
}
