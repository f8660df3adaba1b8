// Package entity is an in-memory entity store holding rigid bodies, their position records
// and the static constraints of a scene. Entities are keyed by uuid and iterated in
// insertion order.
package entity

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/geometry"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// PositionRecord is the position component shared with the renderer.
// Orientation holds Euler angles in radians, applied X then Y then Z.
type PositionRecord struct {
	Position    mgl64.Vec3
	Orientation mgl64.Vec3
	Scale       float64
}

// StaticConstraint is an immovable box that bodies collide against
type StaticConstraint struct {
	OBB         geometry.OBB
	Restitution float64
	Friction    float64
}

// NewStaticConstraint creates a box collider with neutral coefficients,
// so the material of the colliding body decides alone
func NewStaticConstraint(position, halfSize, orientation mgl64.Vec3) *StaticConstraint {
	return &StaticConstraint{
		OBB:         geometry.NewOBB(position, halfSize, actor.EulerToQuat(orientation)),
		Restitution: 1,
		Friction:    1,
	}
}

type bodyEntry struct {
	id     uuid.UUID
	body   *actor.RigidBody
	record *PositionRecord
}

type constraintEntry struct {
	id         uuid.UUID
	constraint *StaticConstraint
}

// Store is not safe for concurrent use
type Store struct {
	bodies      []bodyEntry
	constraints []constraintEntry
}

func NewStore() *Store {
	return &Store{}
}

// AddBody registers a body and creates its position record from the body transform
func (s *Store) AddBody(body *actor.RigidBody) uuid.UUID {
	id := uuid.New()
	s.bodies = append(s.bodies, bodyEntry{
		id:   id,
		body: body,
		record: &PositionRecord{
			Position:    body.Transform.Position,
			Orientation: actor.QuatToEuler(body.Transform.Rotation),
			Scale:       1,
		},
	})

	return id
}

// AddConstraint registers a static constraint
func (s *Store) AddConstraint(c *StaticConstraint) uuid.UUID {
	id := uuid.New()
	s.constraints = append(s.constraints, constraintEntry{id: id, constraint: c})

	return id
}

// Remove deletes a body or a constraint, keeping the order of the others
func (s *Store) Remove(id uuid.UUID) bool {
	for i, entry := range s.bodies {
		if entry.id == id {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			return true
		}
	}

	for i, entry := range s.constraints {
		if entry.id == id {
			s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
			return true
		}
	}

	return false
}

// Body returns the rigid body of an entity
func (s *Store) Body(id uuid.UUID) (*actor.RigidBody, bool) {
	for _, entry := range s.bodies {
		if entry.id == id {
			return entry.body, true
		}
	}

	return nil, false
}

// Position returns a copy of the position record of a body entity
func (s *Store) Position(id uuid.UUID) (PositionRecord, bool) {
	for _, entry := range s.bodies {
		if entry.id == id {
			return *entry.record, true
		}
	}

	return PositionRecord{}, false
}

// SetPosition overwrites the position record of a body entity, the next step picks it up
func (s *Store) SetPosition(id uuid.UUID, record PositionRecord) bool {
	for _, entry := range s.bodies {
		if entry.id == id {
			*entry.record = record
			return true
		}
	}

	return false
}

func (s *Store) Len() int {
	return len(s.bodies) + len(s.constraints)
}

func (s *Store) ForEachBodyWithPosition(fn func(id uuid.UUID, body *actor.RigidBody, record *PositionRecord)) {
	for _, entry := range s.bodies {
		fn(entry.id, entry.body, entry.record)
	}
}

func (s *Store) ForEachStaticConstraint(fn func(id uuid.UUID, c *StaticConstraint)) {
	for _, entry := range s.constraints {
		fn(entry.id, entry.constraint)
	}
}
