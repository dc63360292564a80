// Package ccd implements the swept vertex-vs-triangle test used for continuous
// collision detection.
//
// Every point involved is swept linearly between its position at the start of
// the step and its position at the candidate end of the step. For rotating
// bodies this approximates the real trajectory: only the sampled positions are
// exact, the path between them is a straight line.
//
// The point p crosses the plane of triangle (a, b, c) when the scalar triple
// product (g×h)·p vanishes, with g = b-a, h = c-a and p taken relative to a.
// Each term is linear in t, so the product is a cubic in t, solved in closed form
// by package solver. A crossing only counts when the point lies inside the
// triangle at that instant.
package ccd

import (
	"github.com/akmonengine/sweep/solver"
	"github.com/go-gl/mathgl/mgl64"
)

// Swept is a point moving linearly from Start (t=0) to End (t=1)
type Swept struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
}

// At interpolates the position at t
func (s Swept) At(t float64) mgl64.Vec3 {
	return s.Start.Add(s.End.Sub(s.Start).Mul(t))
}

// Hit describes the first instant a swept point touches a swept triangle
type Hit struct {
	// Time of impact, as a fraction of the sweep
	Time float64
	// World position of the point at Time
	Point mgl64.Vec3
	// Weights of the point along the two triangle edges
	R, S float64
}

// Coefficients of a·t³ + b·t² + c·t + d
type Coefficients struct {
	A, B, C, D float64
}

// PlaneCoefficients expands (g0+dg·t)×(h0+dh·t)·(p0+dp·t) into a cubic in t
func PlaneCoefficients(p0, g0, h0, dp, dg, dh mgl64.Vec3) Coefficients {
	dgdh := dg.Cross(dh)
	mixed := dg.Cross(h0).Add(g0.Cross(dh))
	g0h0 := g0.Cross(h0)

	return Coefficients{
		A: dgdh.Dot(dp),
		B: dgdh.Dot(p0) + mixed.Dot(dp),
		C: mixed.Dot(p0) + g0h0.Dot(dp),
		D: g0h0.Dot(p0),
	}
}

// VertexTriangle finds the earliest time in [0, tBound] at which the swept point p
// lies inside the swept triangle (a, b, c)
func VertexTriangle(p, a, b, c Swept, tBound float64) (Hit, bool) {
	// relative to a, at the start and their changes over the sweep
	p0 := p.Start.Sub(a.Start)
	g0 := b.Start.Sub(a.Start)
	h0 := c.Start.Sub(a.Start)
	dp := p.End.Sub(a.End).Sub(p0)
	dg := b.End.Sub(a.End).Sub(g0)
	dh := c.End.Sub(a.End).Sub(h0)

	coefficients := PlaneCoefficients(p0, g0, h0, dp, dg, dh)

	// every root is classified, not only the smallest: a crossing outside the
	// triangle does not hide a later one inside it
	for _, t := range solver.Roots(coefficients.A, coefficients.B, coefficients.C, coefficients.D, tBound) {
		pt := p0.Add(dp.Mul(t))
		g := g0.Add(dg.Mul(t))
		h := h0.Add(dh.Mul(t))

		r, s, ok := Weights(pt, g, h)
		if !ok || !Inside(r, s) {
			continue
		}

		return Hit{Time: t, Point: p.At(t), R: r, S: s}, true
	}

	return Hit{}, false
}
