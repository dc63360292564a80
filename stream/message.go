package stream

import (
	"fmt"

	"github.com/akmonengine/sweep/scene"
	"github.com/akmonengine/sweep/sim"
)

// MeshesMessage is sent once to every new client
type MeshesMessage struct {
	Type   string              `json:"type"`
	Meshes map[string]MeshData `json:"meshes"`
	Bodies []BodyDescription   `json:"bodies"`
}

type MeshData struct {
	Vertices  [][3]float64 `json:"vertices"`
	Triangles [][3]int     `json:"triangles"`
}

type BodyDescription struct {
	Id     string `json:"id"`
	Mesh   string `json:"mesh"`
	Static bool   `json:"static"`
}

// SnapshotMessage is broadcast at the server rate
type SnapshotMessage struct {
	Type   string     `json:"type"`
	Tick   uint64     `json:"tick"`
	Time   float64    `json:"time"`
	Paused bool       `json:"paused"`
	Bodies []BodyData `json:"bodies"`
}

type BodyData struct {
	Id string `json:"id"`
	// Matrix is the column-major model matrix
	Matrix          [16]float64 `json:"matrix"`
	Velocity        [3]float64  `json:"velocity"`
	AngularVelocity [3]float64  `json:"angularVelocity"`
}

// ControlMessage is read from clients: {"pause": true} or {"reset": true}
type ControlMessage struct {
	Pause *bool `json:"pause,omitempty"`
	Reset bool  `json:"reset,omitempty"`
}

func createMeshesMessage(def scene.Definition) MeshesMessage {
	msg := MeshesMessage{
		Type:   "meshes",
		Meshes: make(map[string]MeshData, len(def.Meshes)),
		Bodies: make([]BodyDescription, len(def.Bodies)),
	}
	for name, mesh := range def.Meshes {
		msg.Meshes[name] = MeshData{Vertices: mesh.Vertices, Triangles: mesh.Triangles}
	}
	for i, body := range def.Bodies {
		msg.Bodies[i] = BodyDescription{Id: body.Name, Mesh: body.Mesh, Static: body.Static}
	}
	return msg
}

func createSnapshotMessage(s sim.Snapshot) SnapshotMessage {
	msg := SnapshotMessage{
		Type:   "snapshot",
		Tick:   s.Tick,
		Time:   s.Time,
		Paused: s.Paused,
		Bodies: make([]BodyData, len(s.Bodies)),
	}
	for i, body := range s.Bodies {
		msg.Bodies[i] = BodyData{
			Id:              fmt.Sprint(body.Id),
			Matrix:          body.Transform.Matrix,
			Velocity:        body.Velocity,
			AngularVelocity: body.AngularVelocity,
		}
	}
	return msg
}
