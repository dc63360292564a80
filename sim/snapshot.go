package sim

import (
	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// BodyState is the published state of one body
type BodyState struct {
	Id              any
	Transform       actor.Transform
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// Snapshot is an immutable copy of the world after a tick
type Snapshot struct {
	Tick   uint64
	Time   float64
	Paused bool
	Bodies []BodyState
}

// Control is sent by a user interface to the runner
type Control struct {
	Paused bool
	Reset  bool
}

func snapshot(tick uint64, time float64, paused bool, bodies []*actor.RigidBody) Snapshot {
	s := Snapshot{
		Tick:   tick,
		Time:   time,
		Paused: paused,
		Bodies: make([]BodyState, len(bodies)),
	}
	for i, body := range bodies {
		s.Bodies[i] = BodyState{
			Id:              body.Id,
			Transform:       body.Transform,
			Velocity:        body.Velocity,
			AngularVelocity: body.AngularVelocity,
		}
	}
	return s
}
