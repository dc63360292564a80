package sweep

import (
	"math"

	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}

func cubeMesh(half float64) *actor.Mesh {
	h := half
	return actor.MustMesh([]mgl64.Vec3{
		{-h, -h, -h},
		{-h, -h, h},
		{-h, h, -h},
		{-h, h, h},
		{h, -h, -h},
		{h, -h, h},
		{h, h, -h},
		{h, h, h},
	}, []actor.Triangle{
		{0, 2, 3}, {0, 3, 1},
		{0, 1, 5}, {0, 5, 4},
		{0, 4, 6}, {0, 6, 2},
		{7, 2, 6}, {7, 6, 4},
		{7, 4, 5}, {7, 5, 1},
		{7, 1, 3}, {7, 3, 2},
	})
}

func floorMesh(half float64) *actor.Mesh {
	h := half
	return actor.MustMesh([]mgl64.Vec3{
		{-h, 0, -h},
		{-h, 0, h},
		{h, 0, -h},
		{h, 0, h},
	}, []actor.Triangle{{0, 3, 2}, {0, 1, 3}})
}

// createCube creates a dynamic 2x2x2 cube centered on position
func createCube(id any, position mgl64.Vec3) *actor.RigidBody {
	body := actor.NewRigidBody(cubeMesh(1), actor.BodyTypeDynamic)
	body.Id = id
	body.Transform = body.Transform.Translate(position)
	return body
}

// createFloor creates a static 20x20 floor in the y=0 plane
func createFloor() *actor.RigidBody {
	body := actor.NewRigidBody(floorMesh(10), actor.BodyTypeStatic)
	body.Id = "floor"
	return body
}

// tiltedCubeScene is a cube rotated by 0.5 rad around X then Z, 10 m above the floor
func tiltedCubeScene() []*actor.RigidBody {
	cube := actor.NewRigidBody(cubeMesh(1), actor.BodyTypeDynamic)
	cube.Id = "cube"
	cube.Transform = cube.Transform.RotateX(0.5).RotateZ(0.5).Translate(mgl64.Vec3{0, 10, 0})
	return []*actor.RigidBody{cube, createFloor()}
}

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) hasEventType(eventType EventType) bool {
	for _, e := range ec.events {
		if e.Type() == eventType {
			return true
		}
	}
	return false
}
