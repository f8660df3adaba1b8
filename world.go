// Package impulse steps rigid bodies held by an entity store at a fixed rate: it detects
// the collisions between them, resolves contacts with sequential impulses and keeps the
// bodies out of the static constraints of the scene.
package impulse

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/config"
	"github.com/akmonengine/impulse/entity"
	"github.com/akmonengine/impulse/geometry"
	"github.com/akmonengine/impulse/logging"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// World is not safe for concurrent use
type World struct {
	store     EntityStore
	config    config.Config
	logger    logging.Logger
	scheduler *Scheduler

	Events Events

	// Gathered from the store at the beginning of every step
	bodies        []*actor.RigidBody
	ids           []uuid.UUID
	records       []*entity.PositionRecord
	constraints   []*entity.StaticConstraint
	constraintIDs []uuid.UUID

	// Orientation written to each record by the last step, to detect changes made by others
	writtenEuler map[uuid.UUID]mgl64.Vec3

	contacts []mgl64.Vec3
}

type Option func(*World)

func WithLogger(logger logging.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

func WithConfig(cfg config.Config) Option {
	return func(w *World) {
		w.config = cfg
	}
}

// NewWorld steps the entities of store with config.Default() unless told otherwise
func NewWorld(store EntityStore, opts ...Option) (*World, error) {
	if store == nil {
		return nil, errors.New("nil entity store")
	}

	w := &World{
		store:        store,
		config:       config.Default(),
		Events:       NewEvents(),
		writtenEuler: make(map[uuid.UUID]mgl64.Vec3),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logging.NewSlogAdapter(nil)
	}
	if err := w.config.Validate(); err != nil {
		return nil, err
	}
	w.scheduler = NewScheduler(w.config.FixedStep)

	return w, nil
}

func (w *World) Config() config.Config {
	return w.config
}

// Update runs as many fixed steps as frameDt and the time carried from previous frames allow.
// A failed step drops the carried time: the next frame starts from an empty accumulator.
func (w *World) Update(frameDt float64) (int, error) {
	steps, err := w.scheduler.Advance(frameDt, func(float64) error {
		return w.Step()
	})
	if err != nil {
		w.scheduler.Reset()
		w.logger.Error("physics step failed", "steps", steps, "error", err)
	}

	return steps, err
}

// Alpha is the interpolation factor between the last two steps
func (w *World) Alpha() float64 {
	return w.scheduler.Alpha()
}

// Step advances the simulation by one fixed step.
// The store is left untouched when a body ends up with a non-finite state.
func (w *World) Step() error {
	dt := w.config.FixedStep

	w.prepare()

	// Phase 1: broad and narrow phase
	collisions := w.detectCollisions()

	// Phase 2: forces
	for _, body := range w.bodies {
		body.ApplyForces(w.config.Gravity)
	}

	// Phase 3: velocity
	for i := 0; i < w.config.ImpulseIterations; i++ {
		for _, c := range collisions {
			c.SolveVelocity()
		}
	}

	// Phase 4: integration
	for _, body := range w.bodies {
		body.Update(dt)
	}

	// Phase 5: penetration
	for _, c := range collisions {
		c.SolvePosition(w.config.PenetrationSlack, w.config.LinearProjectionPercent)
	}

	// Phase 6: static constraints
	w.solveStaticConstraints()

	for i, body := range w.bodies {
		if !body.IsFinite() {
			w.Events.discard()
			return errors.Wrapf(ErrNonFinite, "body %s", w.ids[i])
		}
	}

	w.sync()
	w.Events.flush()

	w.logger.Debug("physics step", "bodies", len(w.bodies), "collisions", len(collisions), "contacts", len(w.contacts))

	return nil
}

// prepare copies the position records into the bodies and gathers the static constraints
func (w *World) prepare() {
	w.bodies = w.bodies[:0]
	w.ids = w.ids[:0]
	w.records = w.records[:0]
	w.constraints = w.constraints[:0]
	w.constraintIDs = w.constraintIDs[:0]
	w.contacts = w.contacts[:0]

	w.store.ForEachBodyWithPosition(func(id uuid.UUID, body *actor.RigidBody, record *entity.PositionRecord) {
		body.Transform.Position = record.Position

		// The quaternion is only rebuilt from Euler angles when someone else changed them
		if written, ok := w.writtenEuler[id]; !ok || written != record.Orientation {
			body.Transform.Rotation = actor.EulerToQuat(record.Orientation)
		}

		body.Colliding = false
		body.SyncCollisionVolumes()

		w.bodies = append(w.bodies, body)
		w.ids = append(w.ids, id)
		w.records = append(w.records, record)
	})

	w.store.ForEachStaticConstraint(func(id uuid.UUID, c *entity.StaticConstraint) {
		w.constraints = append(w.constraints, c)
		w.constraintIDs = append(w.constraintIDs, id)
	})
}

// sync writes positions and orientations back to the records
func (w *World) sync() {
	clear(w.writtenEuler)

	for i, body := range w.bodies {
		euler := actor.QuatToEuler(body.Transform.Rotation)

		w.records[i].Position = body.Transform.Position
		w.records[i].Orientation = euler
		w.writtenEuler[w.ids[i]] = euler
	}
}

// Bodies returns the bodies of the last step, in store order
func (w *World) Bodies() []*actor.RigidBody {
	return w.bodies
}

// Constraints returns the boxes of the static constraints of the last step
func (w *World) Constraints() []geometry.OBB {
	obbs := make([]geometry.OBB, 0, len(w.constraints))
	for _, c := range w.constraints {
		obbs = append(obbs, c.OBB)
	}

	return obbs
}

// Volume is the collision volume of a body, for debug drawing
type Volume struct {
	Entity uuid.UUID
	Kind   actor.Kind
	Sphere geometry.Sphere // KindSphere
	OBB    geometry.OBB    // KindBox
}

// Volumes returns the collision volumes of the bodies of the last step; particles have none
func (w *World) Volumes() []Volume {
	volumes := make([]Volume, 0, len(w.bodies))
	for i, body := range w.bodies {
		if !body.Kind.HasVolume() {
			continue
		}
		volumes = append(volumes, Volume{
			Entity: w.ids[i],
			Kind:   body.Kind,
			Sphere: body.Sphere(),
			OBB:    body.OBB(),
		})
	}

	return volumes
}

// Contacts returns every contact point found during the last step
func (w *World) Contacts() []mgl64.Vec3 {
	return w.contacts
}

// RaycastHit is the nearest entity hit by a ray
type RaycastHit struct {
	Entity uuid.UUID
	Static bool
	geometry.RaycastResult
}

// Raycast returns the nearest static constraint or body volume along the ray
func (w *World) Raycast(ray geometry.Ray) (RaycastHit, bool) {
	var nearest RaycastHit

	consider := func(id uuid.UUID, static bool, result geometry.RaycastResult, hit bool) {
		if hit && (!nearest.Hit || result.T < nearest.T) {
			nearest = RaycastHit{Entity: id, Static: static, RaycastResult: result}
		}
	}

	w.store.ForEachStaticConstraint(func(id uuid.UUID, c *entity.StaticConstraint) {
		result, hit := geometry.RaycastOBB(ray, c.OBB)
		consider(id, true, result, hit)
	})

	w.store.ForEachBodyWithPosition(func(id uuid.UUID, body *actor.RigidBody, _ *entity.PositionRecord) {
		switch body.Kind {
		case actor.KindSphere:
			result, hit := geometry.RaycastSphere(ray, body.Sphere())
			consider(id, false, result, hit)
		case actor.KindBox:
			result, hit := geometry.RaycastOBB(ray, body.OBB())
			consider(id, false, result, hit)
		}
	})

	return nearest, nearest.Hit
}
