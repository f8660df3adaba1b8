package impulse

import (
	"bytes"

	"github.com/google/uuid"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type pairKey struct {
	entityA uuid.UUID
	entityB uuid.UUID
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(entityA, entityB uuid.UUID) pairKey {
	if bytes.Compare(entityB[:], entityA[:]) < 0 {
		entityA, entityB = entityB, entityA
	}

	return pairKey{entityA: entityA, entityB: entityB}
}

type activePair struct {
	key    pairKey
	static bool
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Collision events. When Static is set, EntityA is the body and EntityB the static constraint.
type CollisionEnterEvent struct {
	EntityA uuid.UUID
	EntityB uuid.UUID
	Static  bool
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	EntityA uuid.UUID
	EntityB uuid.UUID
	Static  bool
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	EntityA uuid.UUID
	EntityB uuid.UUID
	Static  bool
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection, in discovery order
	previousPairs  []activePair
	currentPairs   []activePair
	previousActive map[pairKey]bool
	currentActive  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:      make(map[EventType][]EventListener),
		buffer:         make([]Event, 0, 64),
		previousActive: make(map[pairKey]bool),
		currentActive:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollision marks a pair as touching during the current step.
// Static pairs keep the body first.
func (e *Events) recordCollision(entityA, entityB uuid.UUID, static bool) {
	key := pairKey{entityA: entityA, entityB: entityB}
	if !static {
		key = makePairKey(entityA, entityB)
	}

	if e.currentActive[key] {
		return
	}
	e.currentActive[key] = true
	e.currentPairs = append(e.currentPairs, activePair{key: key, static: static})
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for _, pair := range e.currentPairs {
		if e.previousActive[pair.key] {
			e.buffer = append(e.buffer, CollisionStayEvent{
				EntityA: pair.key.entityA,
				EntityB: pair.key.entityB,
				Static:  pair.static,
			})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{
				EntityA: pair.key.entityA,
				EntityB: pair.key.entityB,
				Static:  pair.static,
			})
		}
	}

	for _, pair := range e.previousPairs {
		if !e.currentActive[pair.key] {
			e.buffer = append(e.buffer, CollisionExitEvent{
				EntityA: pair.key.entityA,
				EntityB: pair.key.entityB,
				Static:  pair.static,
			})
		}
	}

	// Swap for next step and clear current
	e.previousPairs, e.currentPairs = e.currentPairs, e.previousPairs[:0]
	e.previousActive, e.currentActive = e.currentActive, e.previousActive
	clear(e.currentActive)
}

// discard forgets the pairs recorded during a failed step
func (e *Events) discard() {
	e.currentPairs = e.currentPairs[:0]
	clear(e.currentActive)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processCollisionEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
