package main

import (
	"fmt"
	"time"

	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/sim"
	"github.com/gdamore/tcell/v2"
)

// a terminal cell is about twice as high as wide
const cellAspect = 2.0

// View draws the X/Y projection of every body edge in a terminal
type View struct {
	screen        tcell.Screen
	width, height int

	runner   *sim.Runner
	meshes   []*actor.Mesh
	snapshot sim.Snapshot

	// world units per terminal column
	scale float64
}

func NewView(runner *sim.Runner, bodies []*actor.RigidBody) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &View{
		screen: screen,
		runner: runner,
		meshes: make([]*actor.Mesh, len(bodies)),
		scale:  0.25,
	}
	for i, body := range bodies {
		v.meshes[i] = body.Mesh
	}
	v.width, v.height = screen.Size()
	return v, nil
}

// inputState is what the user asked for with one key press
type inputState struct {
	quit        bool
	togglePause bool
	reset       bool
	zoom        float64
}

func readInput(ev tcell.Event) inputState {
	var in inputState
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			in.quit = true
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				in.quit = true
			case 'p', 'P':
				in.togglePause = true
			case 'r', 'R':
				in.reset = true
			case '+':
				in.zoom = -1
			case '-':
				in.zoom = 1
			}
		}
	}
	return in
}

// update applies the input, it returns false when the view should close
func (v *View) update(in inputState) bool {
	if in.quit {
		return false
	}
	if in.togglePause {
		v.runner.Toggle()
	}
	if in.reset {
		v.runner.Reset()
	}
	if in.zoom != 0 {
		v.scale = min(max(v.scale*(1+0.2*in.zoom), 0.02), 4)
	}
	return true
}

func (v *View) run() {
	ticker := time.NewTicker(33 * time.Millisecond) // ~30 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if _, ok := ev.(*tcell.EventResize); ok {
				v.width, v.height = v.screen.Size()
				v.screen.Sync()
			}
			if !v.update(readInput(ev)) {
				return
			}

		case <-ticker.C:
			if snapshot, fresh, ok := v.runner.Snapshots().Load(); ok && fresh {
				v.snapshot = snapshot
			}
			v.draw()
		}
	}
}

func (v *View) draw() {
	v.screen.Clear()

	styles := []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorAqua),
		tcell.StyleDefault.Foreground(tcell.ColorGreen),
		tcell.StyleDefault.Foreground(tcell.ColorYellow),
		tcell.StyleDefault.Foreground(tcell.ColorPurple),
	}

	for i, body := range v.snapshot.Bodies {
		if i >= len(v.meshes) {
			break
		}
		style := styles[i%len(styles)]
		mesh := v.meshes[i]
		for _, edge := range mesh.Edges {
			x0, y0 := project(body.Transform.Apply(mesh.Vertices[edge[0]]).Vec2(), v.width, v.height, v.scale)
			x1, y1 := project(body.Transform.Apply(mesh.Vertices[edge[1]]).Vec2(), v.width, v.height, v.scale)
			for _, p := range line(x0, y0, x1, y1) {
				if p[0] >= 0 && p[0] < v.width && p[1] >= 0 && p[1] < v.height {
					v.screen.SetContent(p[0], p[1], '·', nil, style)
				}
			}
		}
	}

	status := "running"
	if v.snapshot.Paused {
		status = "paused"
	}
	header := fmt.Sprintf(" t=%.2fs tick=%d %s | p pause  r reset  +/- zoom  q quit ", v.snapshot.Time, v.snapshot.Tick, status)
	for i, r := range header {
		if i >= v.width {
			break
		}
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}

	v.screen.Show()
}
