package actor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrIndexOutOfRange is returned when a triangle references a vertex the mesh does not have
var ErrIndexOutOfRange = errors.New("triangle index out of range")

// Triangle holds three vertex indices
type Triangle [3]uint16

// Edge is an undirected edge, stored with Edge[0] < Edge[1]
type Edge [2]uint16

// Mesh is an immutable polyhedron in object-local space.
// A single Mesh can be shared by any number of bodies.
type Mesh struct {
	Vertices  []mgl64.Vec3
	Triangles []Triangle
	Edges     []Edge
}

// NewMesh copies the vertices and triangles, validates every index
// and derives the deduplicated undirected edge set
func NewMesh(vertices []mgl64.Vec3, triangles []Triangle) (*Mesh, error) {
	for i, tri := range triangles {
		for _, index := range tri {
			if int(index) >= len(vertices) {
				return nil, fmt.Errorf("triangle %d references vertex %d of %d: %w", i, index, len(vertices), ErrIndexOutOfRange)
			}
		}
	}

	m := &Mesh{
		Vertices:  append([]mgl64.Vec3(nil), vertices...),
		Triangles: append([]Triangle(nil), triangles...),
	}
	m.Edges = buildEdges(m.Triangles)

	return m, nil
}

// MustMesh is NewMesh for static scene data, it panics on invalid topology
func MustMesh(vertices []mgl64.Vec3, triangles []Triangle) *Mesh {
	m, err := NewMesh(vertices, triangles)
	if err != nil {
		panic(err)
	}
	return m
}

// TriangleEdges returns the three edges of a triangle, sorted.
// The result is the same for any cyclic or mirrored relabeling of the indices.
func TriangleEdges(tri Triangle) [3]Edge {
	a, b, c := sort3(tri[0], tri[1], tri[2])
	return [3]Edge{{a, b}, {a, c}, {b, c}}
}

func buildEdges(triangles []Triangle) []Edge {
	seen := make(map[Edge]struct{}, len(triangles)*3/2)
	edges := make([]Edge, 0, len(triangles)*3/2)

	for _, tri := range triangles {
		for _, e := range TriangleEdges(tri) {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})

	return edges
}

func sort3(a, b, c uint16) (uint16, uint16, uint16) {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return a, b, c
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// TriangleVertices returns the local-space corners of triangle i
func (m *Mesh) TriangleVertices(i int) (mgl64.Vec3, mgl64.Vec3, mgl64.Vec3) {
	tri := m.Triangles[i]
	return m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
}

// LocalNormal returns the unnormalized (b-a)x(c-a) normal of triangle i in local space
func (m *Mesh) LocalNormal(i int) mgl64.Vec3 {
	a, b, c := m.TriangleVertices(i)
	return b.Sub(a).Cross(c.Sub(a))
}

// Support returns the vertex farthest along direction, in local space
func (m *Mesh) Support(direction mgl64.Vec3) mgl64.Vec3 {
	best := m.Vertices[0]
	bestDot := best.Dot(direction)
	for _, v := range m.Vertices[1:] {
		if d := v.Dot(direction); d > bestDot {
			best, bestDot = v, d
		}
	}
	return best
}

func (m *Mesh) Vertex(i int) mgl64.Vec3 {
	return m.Vertices[i]
}

func (m *Mesh) Triangle(i int) Triangle {
	return m.Triangles[i]
}
