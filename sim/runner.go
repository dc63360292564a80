// Package sim runs a world at a fixed tick rate on its own goroutine and
// publishes snapshots of it for renderers and network clients.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akmonengine/sweep"
	"github.com/akmonengine/sweep/config"
	"github.com/akmonengine/sweep/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Runner owns a world. Only the goroutine calling Run touches it once started.
type Runner struct {
	world *sweep.World
	def   scene.Definition
	dt    float64

	tick   uint64
	time   float64
	paused bool

	snapshots Latest[Snapshot]
	control   Latest[Control]

	// requested state, as seen by the controlling side
	mu             sync.Mutex
	requestedPause bool
}

// NewRunner builds the bodies of def into a world configured by cfg
func NewRunner(cfg config.Simulation, def scene.Definition) (*Runner, error) {
	bodies, err := scene.Build(def)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	world := sweep.NewWorld()
	world.Gravity = mgl64.Vec3(cfg.Gravity)
	world.Workers = cfg.Workers
	world.CheckOverlap = cfg.CheckOverlap
	if cfg.MaxSubsteps > 0 {
		world.MaxSubsteps = cfg.MaxSubsteps
	}
	world.Reset(bodies)

	r := &Runner{
		world: world,
		def:   def,
		dt:    cfg.Dt(),
	}
	r.publish()

	return r, nil
}

// World gives access to the world, for setup before Run (event listeners, policy)
func (r *Runner) World() *sweep.World {
	return r.world
}

// Snapshots is the cell holding the newest snapshot
func (r *Runner) Snapshots() *Latest[Snapshot] {
	return &r.snapshots
}

// tickInterval converts dt to a ticker period, never below a nanosecond
func tickInterval(dt float64) time.Duration {
	return max(time.Nanosecond, time.Duration(dt*float64(time.Second)))
}

// Run steps the world every dt until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(tickInterval(r.dt))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.advance()
		}
	}
}

// advance runs one tick: pending controls, then a step unless paused, then a snapshot
func (r *Runner) advance() {
	if control, ok := r.control.Take(); ok {
		r.apply(control)
	}

	if !r.paused {
		r.world.Step(r.dt)
		r.tick++
		r.time += r.dt
	}

	r.publish()
}

func (r *Runner) apply(control Control) {
	r.paused = control.Paused
	if !control.Reset {
		return
	}

	// the definition was built once already, it cannot fail now
	bodies, err := scene.Build(r.def)
	if err != nil {
		return
	}
	r.world.Reset(bodies)
	r.tick, r.time = 0, 0
}

func (r *Runner) publish() {
	r.snapshots.Store(snapshot(r.tick, r.time, r.paused, r.world.Bodies))
}

// send merges a request into the pending control, a reset is never lost
func (r *Runner) send(reset bool) {
	pending, _ := r.control.Take()
	r.control.Store(Control{
		Paused: r.requestedPause,
		Reset:  pending.Reset || reset,
	})
}

func (r *Runner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requestedPause = true
	r.send(false)
}

func (r *Runner) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requestedPause = false
	r.send(false)
}

// Toggle flips the pause state and returns the new one
func (r *Runner) Toggle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requestedPause = !r.requestedPause
	r.send(false)
	return r.requestedPause
}

// Reset rebuilds every body from the scene definition on the next tick
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send(true)
}
