package stream

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/scene"
	"github.com/akmonengine/sweep/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"
)

type fakeSource struct {
	snapshots sim.Latest[sim.Snapshot]

	mu      sync.Mutex
	pauses  int
	resumes int
	resets  int
}

func (f *fakeSource) Snapshots() *sim.Latest[sim.Snapshot] { return &f.snapshots }

func (f *fakeSource) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
}

func (f *fakeSource) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes++
}

func (f *fakeSource) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeSource) counts() (int, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pauses, f.resumes, f.resets
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	return conn
}

func TestServerSendsMeshesThenSnapshots(t *testing.T) {
	source := &fakeSource{}
	s := NewServer("", 100, scene.Default(), source)

	httpServer := httptest.NewServer(s.Handler())
	defer httpServer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.broadcastLoop(ctx)

	conn := dial(t, httpServer)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var meshes MeshesMessage
	if err := conn.ReadJSON(&meshes); err != nil {
		t.Fatalf("reading meshes: %v", err)
	}
	if meshes.Type != "meshes" || len(meshes.Meshes) != 2 || len(meshes.Bodies) != 2 {
		t.Fatalf("meshes message = %+v", meshes)
	}
	if len(meshes.Meshes["cube"].Triangles) != 12 {
		t.Errorf("cube has %d triangles", len(meshes.Meshes["cube"].Triangles))
	}

	for i := 0; s.ClientCount() == 0 && i < 200; i++ {
		time.Sleep(5 * time.Millisecond)
	}

	transform := actor.NewTransform().Translate(mgl64.Vec3{0, 4, 0})
	source.snapshots.Store(sim.Snapshot{
		Tick: 7,
		Bodies: []sim.BodyState{
			{Id: "cube", Transform: transform, Velocity: mgl64.Vec3{0, -1, 0}},
		},
	})

	var snapshot SnapshotMessage
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if snapshot.Type != "snapshot" || snapshot.Tick != 7 {
		t.Errorf("snapshot = %+v", snapshot)
	}
	if snapshot.Bodies[0].Id != "cube" || snapshot.Bodies[0].Matrix[13] != 4 {
		t.Errorf("body = %+v", snapshot.Bodies[0])
	}
}

func TestServerControls(t *testing.T) {
	source := &fakeSource{}
	s := NewServer("", 100, scene.Default(), source)

	httpServer := httptest.NewServer(s.Handler())
	defer httpServer.Close()

	conn := dial(t, httpServer)
	defer conn.Close()

	var meshes MeshesMessage
	if err := conn.ReadJSON(&meshes); err != nil {
		t.Fatal(err)
	}

	for _, msg := range []string{`{"pause": true}`, `{"pause": false}`, `{"reset": true}`} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p, r, reset := source.counts(); p == 1 && r == 1 && reset == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	p, r, reset := source.counts()
	t.Errorf("pauses %d, resumes %d, resets %d; want 1 each", p, r, reset)
}

func TestServerRunStopsOnCancel(t *testing.T) {
	s := NewServer("127.0.0.1:0", 10, scene.Default(), &fakeSource{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
