package sweep

import (
	"unsafe"

	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	CONTACT EventType = iota
	SUBSTEP_CAP
	OVERLAP_ENTER
	OVERLAP_STAY
	OVERLAP_EXIT
)

type pairKey struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB *actor.RigidBody) pairKey {
	ptrA := uintptr(unsafe.Pointer(bodyA))
	ptrB := uintptr(unsafe.Pointer(bodyB))

	if ptrB < ptrA {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ContactEvent is sent for every collision resolved during a step
type ContactEvent struct {
	VertexBody   *actor.RigidBody
	TriangleBody *actor.RigidBody
	// Time of impact as a fraction of the remaining step when it was found
	Time float64
	// Elapsed simulated time within the step
	Elapsed float64
	Point   mgl64.Vec3
	Normal  mgl64.Vec3
}

func (e ContactEvent) Type() EventType { return CONTACT }

// SubstepCapEvent is sent when a step hit its substep limit
// and committed the remaining motion without resolving it
type SubstepCapEvent struct {
	Substeps int
}

func (e SubstepCapEvent) Type() EventType { return SUBSTEP_CAP }

// Overlap events report bodies whose convex hulls interpenetrate after a step
type OverlapEnterEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e OverlapEnterEvent) Type() EventType { return OVERLAP_ENTER }

type OverlapStayEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e OverlapStayEvent) Type() EventType { return OVERLAP_STAY }

type OverlapExitEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e OverlapExitEvent) Type() EventType { return OVERLAP_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Overlap tracking for Enter/Stay/Exit detection
	previousOverlaps map[pairKey]bool
	currentOverlaps  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:        make(map[EventType][]EventListener),
		buffer:           make([]Event, 0, 64),
		previousOverlaps: make(map[pairKey]bool),
		currentOverlaps:  make(map[pairKey]bool),
	}
}

// init allocates the maps of a zero Events
func (e *Events) init() {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	if e.previousOverlaps == nil {
		e.previousOverlaps = make(map[pairKey]bool)
	}
	if e.currentOverlaps == nil {
		e.currentOverlaps = make(map[pairKey]bool)
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.init()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordStep buffers the contacts and the cap of a Run
func (e *Events) recordStep(bodies []*actor.RigidBody, result RunResult) {
	for _, c := range result.Contacts {
		e.buffer = append(e.buffer, ContactEvent{
			VertexBody:   bodies[c.VertexBody],
			TriangleBody: bodies[c.TriangleBody],
			Time:         c.Time,
			Elapsed:      c.Elapsed,
			Point:        c.Point,
			Normal:       c.Normal,
		})
	}

	if result.Capped {
		e.buffer = append(e.buffer, SubstepCapEvent{Substeps: result.Substeps})
	}
}

// recordOverlap is called for every pair found interpenetrating after a step
func (e *Events) recordOverlap(bodyA, bodyB *actor.RigidBody) {
	e.init()
	e.currentOverlaps[makePairKey(bodyA, bodyB)] = true
}

// processOverlapEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processOverlapEvents() {
	e.init()

	for pair := range e.currentOverlaps {
		if e.previousOverlaps[pair] {
			e.buffer = append(e.buffer, OverlapStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, OverlapEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for pair := range e.previousOverlaps {
		if !e.currentOverlaps[pair] {
			e.buffer = append(e.buffer, OverlapExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next frame and clear current
	e.previousOverlaps, e.currentOverlaps = e.currentOverlaps, e.previousOverlaps
	clear(e.currentOverlaps)
}

// forget drops the tracking state of a body leaving the world
func (e *Events) forget(body *actor.RigidBody) {
	for pair := range e.previousOverlaps {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousOverlaps, pair)
		}
	}
}

// reset drops every tracked pair, used when the body set is replaced
func (e *Events) reset() {
	clear(e.previousOverlaps)
	clear(e.currentOverlaps)
	e.buffer = e.buffer[:0]
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processOverlapEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
