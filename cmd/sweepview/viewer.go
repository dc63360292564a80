package main

import (
	"fmt"
	"math"

	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/sim"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	orbitSpeed = 1.5
	zoomSpeed  = 1.0
	minRadius  = 3.0
	maxRadius  = 80.0
)

// inputState is what the user asked for during one frame
type inputState struct {
	togglePause bool
	reset       bool
	orbit       float64
	pitch       float64
	zoom        float64
}

func readInput() inputState {
	var in inputState
	in.togglePause = rl.IsKeyPressed(rl.KeyP)
	in.reset = rl.IsKeyPressed(rl.KeyR)
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		in.orbit -= 1
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		in.orbit += 1
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		in.pitch += 1
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		in.pitch -= 1
	}
	in.zoom = -float64(rl.GetMouseWheelMove())
	return in
}

// Viewer draws the newest snapshot of a runner every frame
type Viewer struct {
	runner *sim.Runner
	// meshes[i] is the mesh of the i-th body of every snapshot
	meshes []*actor.Mesh

	camera   rl.Camera3D
	yaw      float64
	pitch    float64
	radius   float64
	snapshot sim.Snapshot
}

func NewViewer(runner *sim.Runner, bodies []*actor.RigidBody) *Viewer {
	v := &Viewer{
		runner: runner,
		meshes: make([]*actor.Mesh, len(bodies)),
		yaw:    math.Pi / 4,
		pitch:  0.5,
		radius: 25,
	}
	for i, body := range bodies {
		v.meshes[i] = body.Mesh
	}
	v.camera.Target = rl.NewVector3(0, 2, 0)
	v.camera.Up = rl.NewVector3(0, 1, 0)
	v.camera.Fovy = 45
	v.camera.Projection = rl.CameraPerspective
	return v
}

func (v *Viewer) Run() {
	rl.InitWindow(1280, 720, "sweep")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		v.update(readInput(), float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 24, 32, 255))
		v.draw()
		rl.EndDrawing()
	}
}

func (v *Viewer) update(in inputState, frameTime float64) {
	if in.togglePause {
		v.runner.Toggle()
	}
	if in.reset {
		v.runner.Reset()
	}

	v.yaw += in.orbit * orbitSpeed * frameTime
	v.pitch = mgl64.Clamp(v.pitch+in.pitch*orbitSpeed*frameTime, -1.4, 1.4)
	v.radius = mgl64.Clamp(v.radius+in.zoom*zoomSpeed, minRadius, maxRadius)

	v.camera.Position = rl.NewVector3(
		float32(v.radius*math.Cos(v.pitch)*math.Sin(v.yaw)),
		float32(v.radius*math.Sin(v.pitch))+v.camera.Target.Y,
		float32(v.radius*math.Cos(v.pitch)*math.Cos(v.yaw)),
	)

	if snapshot, _, ok := v.runner.Snapshots().Load(); ok {
		v.snapshot = snapshot
	}
}

func (v *Viewer) draw() {
	rl.BeginMode3D(v.camera)
	rl.DrawGrid(20, 1)
	for i, body := range v.snapshot.Bodies {
		if i >= len(v.meshes) {
			break
		}
		drawBody(v.meshes[i], body.Transform)
	}
	rl.EndMode3D()

	status := "running"
	if v.snapshot.Paused {
		status = "paused"
	}
	rl.DrawText(fmt.Sprintf("t=%.2fs tick=%d %s", v.snapshot.Time, v.snapshot.Tick, status), 10, 10, 20, rl.RayWhite)
	rl.DrawText("P pause  R reset  arrows orbit  wheel zoom", 10, 34, 16, rl.Gray)
}

func drawBody(mesh *actor.Mesh, transform actor.Transform) {
	world := make([]rl.Vector3, len(mesh.Vertices))
	for i, vertex := range mesh.Vertices {
		world[i] = toVector3(transform.Apply(vertex))
	}

	fill := rl.NewColor(90, 140, 200, 255)
	for _, tri := range mesh.Triangles {
		a, b, c := world[tri[0]], world[tri[1]], world[tri[2]]
		// winding is not guaranteed outward, draw both faces
		rl.DrawTriangle3D(a, b, c, fill)
		rl.DrawTriangle3D(a, c, b, fill)
	}
	for _, edge := range mesh.Edges {
		rl.DrawLine3D(world[edge[0]], world[edge[1]], rl.White)
	}
}

func toVector3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}
