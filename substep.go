package sweep

import (
	"math"

	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/ccd"
	"github.com/akmonengine/sweep/response"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultMaxSubsteps bounds the collisions resolved in a single Run
	DefaultMaxSubsteps = 64

	// contactMargin is the fraction of the step kept between a body and the contact.
	// Advancing by max(t-contactMargin, t/2) never reaches the contact itself.
	contactMargin = 0.001
)

// Collision identifies the earliest vertex-triangle contact of a substep
type Collision struct {
	// Time of impact, as a fraction of the remaining step
	Time float64
	// VertexBody owns the vertex, TriangleBody owns the triangle
	VertexBody   int
	TriangleBody int
	Vertex       int
	Triangle     int
}

// before orders collisions by time, then by indices so that the result is deterministic
func (c Collision) before(other Collision) bool {
	if c.Time != other.Time {
		return c.Time < other.Time
	}
	if c.VertexBody != other.VertexBody {
		return c.VertexBody < other.VertexBody
	}
	if c.TriangleBody != other.TriangleBody {
		return c.TriangleBody < other.TriangleBody
	}
	if c.Vertex != other.Vertex {
		return c.Vertex < other.Vertex
	}
	return c.Triangle < other.Triangle
}

// Contact is a resolved collision
type Contact struct {
	Collision
	// Elapsed is the simulated time since the start of the Run
	Elapsed float64
	Point   mgl64.Vec3
	Normal  mgl64.Vec3
}

// RunOptions configures Run, zero values select the defaults
type RunOptions struct {
	Policy      response.Policy
	MaxSubsteps int
	Workers     int
	// SpatialGrid is the broad phase; nil tests every pair of swept boxes
	SpatialGrid *SpatialGrid
}

func (o RunOptions) withDefaults() RunOptions {
	if o.Policy == nil {
		o.Policy = response.Reflect
	}
	if o.MaxSubsteps <= 0 {
		o.MaxSubsteps = DefaultMaxSubsteps
	}
	o.Workers = max(DEFAULT_WORKERS, o.Workers)
	return o
}

// RunResult reports what happened during a Run
type RunResult struct {
	// Substeps is the number of collisions resolved
	Substeps int
	Contacts []Contact
	// Capped is set when MaxSubsteps was reached and the remaining motion was committed unresolved
	Capped bool
}

// bodySweep is the candidate motion of one body over the remaining time
type bodySweep struct {
	body     *actor.RigidBody
	end      actor.Transform
	vertices []ccd.Swept
	aabb     actor.AABB
}

func (s *bodySweep) prepare(remaining float64) {
	s.end = s.body.FutureTransform(remaining)
	s.vertices = s.body.SweptVertices(s.end, s.vertices)
	s.aabb = actor.SweptAABB(s.vertices)
}

// pairSearch holds the narrow phase result of one broad phase pair
type pairSearch struct {
	a, b  int
	best  Collision
	found bool
}

// Run advances bodies by dt without letting any vertex cross a triangle of another body.
//
// Each iteration sweeps every body over the remaining time and looks for the earliest
// vertex-triangle contact among all ordered pairs of bodies. When there is one, every
// body is advanced to just before it, the response policy updates the velocities of
// both bodies and the loop starts again with the time left. Otherwise the swept
// end poses are committed and Run returns.
func Run(bodies []*actor.RigidBody, dt float64, opts RunOptions) RunResult {
	opts = opts.withDefaults()

	var result RunResult
	if dt <= 0 || len(bodies) == 0 {
		return result
	}

	sweeps := make([]*bodySweep, len(bodies))
	for i, body := range bodies {
		sweeps[i] = &bodySweep{body: body}
	}

	remaining := dt
	for {
		task(opts.Workers, sweeps, func(s *bodySweep) {
			s.prepare(remaining)
		})

		if result.Substeps >= opts.MaxSubsteps {
			commit(sweeps)
			result.Capped = true
			return result
		}

		collision, found := earliestCollision(sweeps, opts)
		if !found {
			commit(sweeps)
			return result
		}

		tStep := remaining * math.Max(collision.Time-contactMargin, collision.Time*0.5)
		for _, body := range bodies {
			body.Transform = body.FutureTransform(tStep)
		}
		remaining -= tStep

		contact := resolve(bodies, collision, opts.Policy)
		contact.Elapsed = dt - remaining
		result.Contacts = append(result.Contacts, contact)
		result.Substeps++
	}
}

func commit(sweeps []*bodySweep) {
	for _, s := range sweeps {
		s.body.Transform = s.end
	}
}

// earliestCollision runs the narrow phase on every candidate pair, in both orders
func earliestCollision(sweeps []*bodySweep, opts RunOptions) (Collision, bool) {
	searches := candidatePairs(sweeps, opts.SpatialGrid)

	task(opts.Workers, searches, func(search *pairSearch) {
		search.best.Time = 1.0
		searchOrdered(sweeps, search.a, search.b, search)
		searchOrdered(sweeps, search.b, search.a, search)
	})

	var best Collision
	found := false
	for _, search := range searches {
		if !search.found {
			continue
		}
		if !found || search.best.before(best) {
			best = search.best
			found = true
		}
	}

	return best, found
}

// candidatePairs is the broad phase: pairs of swept boxes that overlap, static pairs excluded
func candidatePairs(sweeps []*bodySweep, grid *SpatialGrid) []*pairSearch {
	aabbs := make([]actor.AABB, len(sweeps))
	static := make([]bool, len(sweeps))
	for i, s := range sweeps {
		aabbs[i] = s.aabb
		static[i] = s.body.IsStatic()
	}

	var searches []*pairSearch
	if grid != nil {
		for _, pair := range grid.FindPairs(aabbs, static) {
			searches = append(searches, &pairSearch{a: pair.A, b: pair.B})
		}
		return searches
	}

	for a := range sweeps {
		for b := a + 1; b < len(sweeps); b++ {
			if static[a] && static[b] {
				continue
			}
			if !aabbs[a].Overlaps(aabbs[b]) {
				continue
			}
			searches = append(searches, &pairSearch{a: a, b: b})
		}
	}
	return searches
}

// searchOrdered tests every vertex of body i against every triangle of body j
func searchOrdered(sweeps []*bodySweep, i, j int, search *pairSearch) {
	vertices := sweeps[i].vertices
	triangleOwner := sweeps[j]

	for k, vertex := range vertices {
		for l, tri := range triangleOwner.body.Mesh.Triangles {
			a := triangleOwner.vertices[tri[0]]
			b := triangleOwner.vertices[tri[1]]
			c := triangleOwner.vertices[tri[2]]

			hit, ok := ccd.VertexTriangle(vertex, a, b, c, search.best.Time)
			if !ok {
				continue
			}

			candidate := Collision{
				Time:         hit.Time,
				VertexBody:   i,
				TriangleBody: j,
				Vertex:       k,
				Triangle:     l,
			}
			if !search.found || candidate.before(search.best) {
				search.best = candidate
				search.found = true
			}
		}
	}
}

// resolve computes the contact frame from the advanced poses and applies the policy
func resolve(bodies []*actor.RigidBody, collision Collision, policy response.Policy) Contact {
	vertexOwner := bodies[collision.VertexBody]
	triangleOwner := bodies[collision.TriangleBody]

	contact := Contact{
		Collision: collision,
		Point:     vertexOwner.WorldVertex(collision.Vertex),
		Normal:    triangleOwner.WorldNormal(collision.Triangle),
	}

	a, b := policy.Resolve(bodyState(vertexOwner), bodyState(triangleOwner), response.Contact{
		Point:  contact.Point,
		Normal: contact.Normal,
	})

	vertexOwner.Velocity, vertexOwner.AngularVelocity = a.Velocity, a.AngularVelocity
	triangleOwner.Velocity, triangleOwner.AngularVelocity = b.Velocity, b.AngularVelocity

	return contact
}

func bodyState(body *actor.RigidBody) response.BodyState {
	return response.BodyState{
		Center:          body.Position(),
		Velocity:        body.Velocity,
		AngularVelocity: body.AngularVelocity,
		Static:          body.IsStatic(),
	}
}
