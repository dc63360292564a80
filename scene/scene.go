// Package scene describes sets of bodies as static data and builds fresh
// rigid bodies from it. Definitions are YAML documents:
//
//	meshes:
//	  cube:
//	    vertices: [[-1, -1, -1], [-1, -1, 1], ...]
//	    triangles: [[0, 2, 3], [0, 3, 1], ...]
//	bodies:
//	  - name: cube
//	    mesh: cube
//	    position: [0, 10, 0]
//	    rotation: [0.5, 0, 0.5]
package scene

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var ErrUnknownMesh = errors.New("unknown mesh")

type Definition struct {
	Meshes map[string]MeshDef `yaml:"meshes"`
	Bodies []BodyDef          `yaml:"bodies"`
}

type MeshDef struct {
	Vertices  [][3]float64 `yaml:"vertices"`
	Triangles [][3]int     `yaml:"triangles"`
}

type BodyDef struct {
	Name   string `yaml:"name"`
	Mesh   string `yaml:"mesh"`
	Static bool   `yaml:"static,omitempty"`
	// Position is applied after the rotation
	Position [3]float64 `yaml:"position"`
	// Rotation holds Euler angles in radians, applied around X, then Y, then Z
	Rotation        [3]float64 `yaml:"rotation,omitempty"`
	Velocity        [3]float64 `yaml:"velocity,omitempty"`
	AngularVelocity [3]float64 `yaml:"angular_velocity,omitempty"`
}

func Parse(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("parsing scene: %w", err)
	}
	return def, nil
}

func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("reading scene %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return Definition{}, fmt.Errorf("scene %s: %w", path, err)
	}
	return def, nil
}

// Build creates one body per BodyDef, in order. Bodies using the same mesh name
// share a single *actor.Mesh. The body Id is its name.
func Build(def Definition) ([]*actor.RigidBody, error) {
	meshes := make(map[string]*actor.Mesh, len(def.Meshes))

	// sorted names give reproducible errors
	names := make([]string, 0, len(def.Meshes))
	for name := range def.Meshes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mesh, err := def.Meshes[name].build()
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", name, err)
		}
		meshes[name] = mesh
	}

	bodies := make([]*actor.RigidBody, 0, len(def.Bodies))
	for i, b := range def.Bodies {
		mesh, ok := meshes[b.Mesh]
		if !ok {
			return nil, fmt.Errorf("body %d (%s) uses mesh %q: %w", i, b.Name, b.Mesh, ErrUnknownMesh)
		}
		bodies = append(bodies, b.build(mesh))
	}

	return bodies, nil
}

func (m MeshDef) build() (*actor.Mesh, error) {
	vertices := make([]mgl64.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = mgl64.Vec3(v)
	}

	triangles := make([]actor.Triangle, len(m.Triangles))
	for i, tri := range m.Triangles {
		for j, index := range tri {
			if index < 0 || index > math.MaxUint16 {
				return nil, fmt.Errorf("triangle %d has index %d: %w", i, index, actor.ErrIndexOutOfRange)
			}
			triangles[i][j] = uint16(index)
		}
	}

	return actor.NewMesh(vertices, triangles)
}

func (b BodyDef) build(mesh *actor.Mesh) *actor.RigidBody {
	bodyType := actor.BodyTypeDynamic
	if b.Static {
		bodyType = actor.BodyTypeStatic
	}

	body := actor.NewRigidBody(mesh, bodyType)
	body.Id = b.Name
	body.Transform = body.Transform.
		RotateX(b.Rotation[0]).
		RotateY(b.Rotation[1]).
		RotateZ(b.Rotation[2]).
		Translate(mgl64.Vec3(b.Position))

	if !b.Static {
		body.Velocity = mgl64.Vec3(b.Velocity)
		body.AngularVelocity = mgl64.Vec3(b.AngularVelocity)
	}

	return body
}

// LoadOrDefault loads the scene at path, or returns Default when path is empty
func LoadOrDefault(path string) (Definition, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
