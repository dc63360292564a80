package sweep

import (
	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/response"
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

type World struct {
	// List of all rigid bodies in the world
	Bodies []*actor.RigidBody
	// Gravity acceleration (m/s², or N/kg), applied to dynamic bodies after each step
	Gravity     mgl64.Vec3
	MaxSubsteps int
	SpatialGrid *SpatialGrid
	Workers     int
	// Policy updates the velocities of the two bodies of a contact
	Policy response.Policy
	// CheckOverlap runs a discrete GJK query after each step and sends overlap events
	CheckOverlap bool

	Events Events
}

// NewWorld returns a world with earth gravity, a spatial grid and the Reflect policy
func NewWorld() *World {
	return &World{
		Gravity:     mgl64.Vec3{0, -9.8, 0},
		MaxSubsteps: DefaultMaxSubsteps,
		SpatialGrid: NewSpatialGrid(2.0, 1024),
		Workers:     DEFAULT_WORKERS,
		Policy:      response.Reflect,
		Events:      NewEvents(),
	}
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(body *actor.RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a rigid body from the world
func (w *World) RemoveBody(body *actor.RigidBody) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forget(body)
}

// Reset replaces every body of the world, listeners are kept
func (w *World) Reset(bodies []*actor.RigidBody) {
	w.Bodies = append([]*actor.RigidBody(nil), bodies...)
	w.Events.reset()
}

// Step advances the world by dt.
// Collisions are resolved by Run; gravity is then added to the velocity of
// every dynamic body and takes effect on the next step.
func (w *World) Step(dt float64) RunResult {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	for _, body := range w.Bodies {
		if body.IsStatic() {
			body.Velocity, body.AngularVelocity = mgl64.Vec3{}, mgl64.Vec3{}
		}
	}

	policy := w.Policy
	if policy == nil {
		policy = response.Reflect
	}

	result := Run(w.Bodies, dt, RunOptions{
		Policy:      response.Static(policy),
		MaxSubsteps: w.MaxSubsteps,
		Workers:     w.Workers,
		SpatialGrid: w.SpatialGrid,
	})

	w.applyGravity(dt)

	w.Events.recordStep(w.Bodies, result)
	if w.CheckOverlap {
		for _, pair := range Overlaps(w.Bodies, w.Workers) {
			w.Events.recordOverlap(w.Bodies[pair.A], w.Bodies[pair.B])
		}
	}
	w.Events.flush()

	return result
}

func (w *World) applyGravity(dt float64) {
	task(w.Workers, w.Bodies, func(body *actor.RigidBody) {
		if body.IsStatic() {
			return
		}
		body.Velocity = body.Velocity.Add(w.Gravity.Mul(dt))
	})
}
