package impulse

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/constraint"
	"github.com/akmonengine/impulse/geometry"
	"github.com/akmonengine/impulse/manifold"
	"github.com/pkg/errors"
)

// FindManifold runs the narrow phase test matching the kinds of both bodies.
// The manifold normal points from a toward b.
func FindManifold(a, b *actor.RigidBody) (manifold.Manifold, error) {
	switch a.Kind {
	case actor.KindSphere:
		switch b.Kind {
		case actor.KindSphere:
			return manifold.SphereSphere(a.Sphere(), b.Sphere()), nil
		case actor.KindBox:
			return manifold.SphereOBB(a.Sphere(), b.OBB()), nil
		}
	case actor.KindBox:
		switch b.Kind {
		case actor.KindSphere:
			return manifold.OBBSphere(a.OBB(), b.Sphere()), nil
		case actor.KindBox:
			return manifold.OBBOBB(a.OBB(), b.OBB()), nil
		}
	}

	return manifold.Manifold{}, errors.Wrapf(ErrInvalidPairing, "%s against %s", a.Kind, b.Kind)
}

// manifoldAgainstOBB collides a volume body (A) with a static box (B)
func manifoldAgainstOBB(body *actor.RigidBody, o geometry.OBB) (manifold.Manifold, error) {
	switch body.Kind {
	case actor.KindSphere:
		return manifold.SphereOBB(body.Sphere(), o), nil
	case actor.KindBox:
		return manifold.OBBOBB(body.OBB(), o), nil
	}

	return manifold.Manifold{}, errors.Wrapf(ErrInvalidPairing, "%s against static box", body.Kind)
}

// detectCollisions tests every pair of bodies once, in body order.
// Particles never collide with each other nor with volume bodies.
func (w *World) detectCollisions() []constraint.Constraint {
	var collisions []constraint.Constraint

	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		if a.Kind == actor.KindParticle {
			continue
		}

		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if b.Kind == actor.KindParticle {
				continue
			}
			if a.Material.IsImmovable() && b.Material.IsImmovable() {
				continue
			}

			m, err := FindManifold(a, b)
			if err != nil {
				w.logger.Warn("skipping collision pair", "bodyA", w.ids[i], "bodyB", w.ids[j], "error", err)
				continue
			}
			if !m.Colliding {
				continue
			}

			a.Colliding = true
			b.Colliding = true
			w.contacts = append(w.contacts, m.Contacts...)
			w.Events.recordCollision(w.ids[i], w.ids[j], false)

			collisions = append(collisions, constraint.NewContactConstraint(a, b, m))
		}
	}

	return collisions
}
