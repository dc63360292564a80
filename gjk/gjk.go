// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm as a discrete
// overlap query between two rigid bodies.
//
// GJK detects whether two convex shapes overlap by testing if their Minkowski difference
// contains the origin. The simplex grows one support point at a time and is reduced to
// the feature closest to the origin after each addition.
//
// The shape of a body is the convex hull of its mesh vertices: a concave mesh is
// reported as overlapping as soon as its hull does. The simulation never needs this
// query to move bodies; it is a check that continuous detection kept them apart.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"sync"

	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// maxIterations bounds the refinement loop
const maxIterations = 32

const (
	pointEpsilon  = 1e-8
	normalEpsilon = 1e-10
)

// Simplex holds 1 to 4 points of the Minkowski difference.
// Points[Count-1] is always the most recent support point.
type Simplex struct {
	Points [4]mgl64.Vec3
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

func (s *Simplex) push(p mgl64.Vec3) {
	s.Points[s.Count] = p
	s.Count++
}

// set replaces the simplex, oldest point first
func (s *Simplex) set(points ...mgl64.Vec3) {
	s.Count = copy(s.Points[:], points)
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

// MinkowskiSupport returns the point of A - B farthest along direction:
// support(A, direction) - support(B, -direction)
func MinkowskiSupport(a, b *actor.RigidBody, direction mgl64.Vec3) mgl64.Vec3 {
	return a.SupportWorld(direction).Sub(b.SupportWorld(direction.Mul(-1)))
}

// Intersect reports whether the convex hulls of a and b overlap
func Intersect(a, b *actor.RigidBody) bool {
	simplex := SimplexPool.Get().(*Simplex)
	defer SimplexPool.Put(simplex)
	simplex.Reset()

	return GJK(a, b, simplex)
}

// GJK reports whether the convex hulls of a and b overlap, touching included.
// The search starts along the direction from a to b; the simplex is modified in place.
func GJK(a, b *actor.RigidBody, simplex *Simplex) bool {
	if a.Mesh.VertexCount() == 0 || b.Mesh.VertexCount() == 0 {
		return false
	}

	direction := b.Position().Sub(a.Position())
	if direction.LenSqr() < pointEpsilon {
		direction = mgl64.Vec3{1, 0, 0}
	}

	simplex.set(MinkowskiSupport(a, b, direction))
	direction = simplex.Points[0].Mul(-1)
	if direction.LenSqr() < 1e-16 {
		return true
	}

	for i := 0; i < maxIterations; i++ {
		p := MinkowskiSupport(a, b, direction)

		// the support did not pass the origin: it cannot be enclosed
		if p.Dot(direction) <= 0 {
			return false
		}

		simplex.push(p)
		if simplex.reduce(&direction) {
			return true
		}
	}

	return false
}

// reduce keeps the feature of the simplex closest to the origin and points
// direction at the origin from it. It returns true once the origin is enclosed.
func (s *Simplex) reduce(direction *mgl64.Vec3) bool {
	switch s.Count {
	case 2:
		return s.line(direction)
	case 3:
		return s.triangle(direction)
	case 4:
		return s.tetrahedron(direction)
	}
	return false
}

// line reduces a segment: a is the newest point, b the previous one
func (s *Simplex) line(direction *mgl64.Vec3) bool {
	a, b := s.Points[1], s.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.LenSqr() < pointEpsilon {
		if ao.LenSqr() < pointEpsilon {
			return true
		}
		s.set(a)
		*direction = ao
		return false
	}

	if ab.Dot(ao) <= 0 {
		s.set(a)
		*direction = ao
		return false
	}

	perp := ab.Cross(ao).Cross(ab)
	// origin on the segment
	if perp.LenSqr() < pointEpsilon {
		return true
	}

	*direction = perp
	return false
}

// triangle reduces a triangle to an edge, or keeps it and searches above or below it
func (s *Simplex) triangle(direction *mgl64.Vec3) bool {
	a, b, c := s.Points[2], s.Points[1], s.Points[0]
	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	normal := ab.Cross(ac)
	// collinear points, drop the oldest
	if normal.LenSqr() < normalEpsilon {
		s.set(b, a)
		return s.line(direction)
	}

	if ab.Cross(normal).Dot(ao) > 0 {
		s.set(b, a)
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}

	if normal.Cross(ac).Dot(ao) > 0 {
		s.set(c, a)
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if normal.Dot(ao) > 0 {
		*direction = normal
	} else {
		// flip the winding so that the normal faces the origin
		s.set(a, c, b)
		*direction = normal.Mul(-1)
	}

	return false
}

// outward orients the normal of a face away from the opposite vertex
func outward(normal, toOpposite mgl64.Vec3) mgl64.Vec3 {
	if normal.Dot(toOpposite) > 0 {
		return normal.Mul(-1)
	}
	return normal
}

// tetrahedron encloses the origin, or falls back to the face the origin is outside of
func (s *Simplex) tetrahedron(direction *mgl64.Vec3) bool {
	a, b, c, d := s.Points[3], s.Points[2], s.Points[1], s.Points[0]
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	abc := outward(ab.Cross(ac), ad)
	acd := outward(ac.Cross(ad), ab)
	adb := outward(ad.Cross(ab), ac)

	if abc.LenSqr() < normalEpsilon || acd.LenSqr() < normalEpsilon || adb.LenSqr() < normalEpsilon {
		s.set(c, b, a)
		return s.triangle(direction)
	}

	switch {
	case abc.Dot(ao) > 0:
		s.set(c, b, a)
	case acd.Dot(ao) > 0:
		s.set(d, c, a)
	case adb.Dot(ao) > 0:
		s.set(b, d, a)
	default:
		return true
	}

	return s.triangle(direction)
}
