package impulse

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/entity"
	"github.com/google/uuid"
)

// EntityStore is where the world reads its bodies and static constraints from, and writes
// the stepped positions back to. Iteration order must be stable between calls.
type EntityStore interface {
	ForEachBodyWithPosition(fn func(id uuid.UUID, body *actor.RigidBody, record *entity.PositionRecord))
	ForEachStaticConstraint(fn func(id uuid.UUID, c *entity.StaticConstraint))
}

var _ EntityStore = (*entity.Store)(nil)
