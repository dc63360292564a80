package ccd

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateRatio bounds |det| relative to the projected edge lengths
// below which a 2D projection is considered flat
const degenerateRatio = 1e-9

// Inside reports whether weights (r, s) describe a point of the triangle
func Inside(r, s float64) bool {
	return r >= 0 && s >= 0 && r+s <= 1
}

// Weights expresses p, assumed coplanar with g and h, as larger·r + smaller·s,
// where larger is whichever of g and h has the biggest pairwise coordinate product.
//
// The 2x2 system is taken on the two dominant axes of the larger edge. If that
// projection is flat, the axis along which the triangle normal is dominant is
// dropped instead. ok is false only for a degenerate triangle.
func Weights(p, g, h mgl64.Vec3) (r, s float64, ok bool) {
	larger, smaller := g, h
	if pairProduct(h) >= pairProduct(g) {
		larger, smaller = h, g
	}

	u, v := dominantAxes(larger)
	if r, s, ok = solve2(larger, smaller, p, u, v); ok {
		return r, s, true
	}

	u, v = projectionAxes(g.Cross(h))
	return solve2(larger, smaller, p, u, v)
}

// pairProduct is the largest magnitude among x·y, x·z and y·z
func pairProduct(v mgl64.Vec3) float64 {
	return math.Max(math.Abs(v[0]*v[1]), math.Max(math.Abs(v[0]*v[2]), math.Abs(v[1]*v[2])))
}

// dominantAxes returns the two axes on which |v| is the largest, lowest index first on ties
func dominantAxes(v mgl64.Vec3) (int, int) {
	x, y, z := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])
	switch {
	case z > x && z > y:
		// z dominates, keep the bigger of x and y
		if y > x {
			return 1, 2
		}
		return 0, 2
	case y > x:
		// y is in, keep the bigger of x and z
		if z > x {
			return 1, 2
		}
		return 0, 1
	default:
		// x is in
		if z > y {
			return 0, 2
		}
		return 0, 1
	}
}

// projectionAxes drops the axis along which the normal n is dominant
func projectionAxes(n mgl64.Vec3) (int, int) {
	x, y, z := math.Abs(n[0]), math.Abs(n[1]), math.Abs(n[2])
	switch {
	case x >= y && x >= z:
		return 1, 2
	case y >= z:
		return 0, 2
	default:
		return 0, 1
	}
}

// solve2 solves larger·r + smaller·s = p restricted to axes u and v (Cramer's rule)
func solve2(larger, smaller, p mgl64.Vec3, u, v int) (float64, float64, bool) {
	la, lb := larger[u], larger[v]
	sa, sb := smaller[u], smaller[v]

	det := la*sb - lb*sa
	scale := math.Max(math.Abs(la), math.Abs(lb)) * math.Max(math.Abs(sa), math.Abs(sb))
	if scale == 0 || math.Abs(det) <= degenerateRatio*scale {
		return 0, 0, false
	}

	r := (p[u]*sb - p[v]*sa) / det
	s := (la*p[v] - lb*p[u]) / det
	return r, s, true
}
