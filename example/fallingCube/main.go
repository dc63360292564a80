package main

import (
	"fmt"

	"github.com/akmonengine/sweep"
	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/scene"
)

// ContactDebugger prints what the world reports during a step
type ContactDebugger interface {
	DebugContact(event sweep.ContactEvent)
	DebugCap(event sweep.SubstepCapEvent)
	DebugOverlap(event sweep.OverlapEnterEvent)
}

type SimpleDebugger struct{}

func (d *SimpleDebugger) DebugContact(event sweep.ContactEvent) {
	fmt.Printf("💥 Contact:\n")
	fmt.Printf("   Vertex body: %v, triangle body: %v\n", event.VertexBody.Id, event.TriangleBody.Id)
	fmt.Printf("   Time of impact: %.6f, elapsed: %.6fs\n", event.Time, event.Elapsed)
	fmt.Printf("   Point: %v\n", event.Point)
	fmt.Printf("   Normal: %v\n", event.Normal)
	fmt.Printf("   Velocity after response: %v\n", event.VertexBody.Velocity)
}

func (d *SimpleDebugger) DebugCap(event sweep.SubstepCapEvent) {
	fmt.Printf("⚠️  Substep cap reached after %d contacts\n", event.Substeps)
}

func (d *SimpleDebugger) DebugOverlap(event sweep.OverlapEnterEvent) {
	fmt.Printf("❌ Interpenetration between %v and %v\n", event.BodyA.Id, event.BodyB.Id)
}

// SetupScene creates the default scene: a tilted cube above a floor
func SetupScene(debugger ContactDebugger) (*sweep.World, *actor.RigidBody) {
	bodies, err := scene.Build(scene.Default())
	if err != nil {
		panic(err)
	}

	world := sweep.NewWorld()
	world.CheckOverlap = true
	world.Reset(bodies)

	world.Events.Subscribe(sweep.CONTACT, func(event sweep.Event) {
		debugger.DebugContact(event.(sweep.ContactEvent))
	})
	world.Events.Subscribe(sweep.SUBSTEP_CAP, func(event sweep.Event) {
		debugger.DebugCap(event.(sweep.SubstepCapEvent))
	})
	world.Events.Subscribe(sweep.OVERLAP_ENTER, func(event sweep.Event) {
		debugger.DebugOverlap(event.(sweep.OverlapEnterEvent))
	})

	return world, bodies[0]
}

func FallingCube() {
	fmt.Println("🧪 Falling cube: continuous collision against a static floor")
	fmt.Println("============================================================")

	world, cube := SetupScene(&SimpleDebugger{})

	fmt.Printf("Initial state:\n")
	fmt.Printf("  Cube: position %v, lowest point %.3f\n", cube.Position(), cube.LowestPoint())
	fmt.Printf("  Gravity: %v\n", world.Gravity)
	fmt.Println()

	const dt float64 = 1.0 / 60.0
	const maxSteps int = 300

	for step := 0; step < maxSteps; step++ {
		result := world.Step(dt)

		if result.Substeps > 0 || step%30 == 0 {
			fmt.Printf("--- STEP %d (substeps %d) ---\n", step+1, result.Substeps)
			fmt.Printf("  Position: %v\n", cube.Position())
			fmt.Printf("  Velocity: %v\n", cube.Velocity)
			fmt.Printf("  Lowest point: %.6f\n", cube.LowestPoint())
		}
	}

	fmt.Println("Done!")
}

func main() {
	FallingCube()
}
