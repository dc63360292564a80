// Package solver finds the real roots of polynomials of degree three or less
// inside a bounded time interval.
//
// It is used by the swept tests: the time at which a moving point crosses the
// plane of a moving triangle is a root of a cubic in t. Leading coefficients
// that vanish are expected (a static triangle turns the cubic into a linear
// equation) and demote the equation to the next lower degree.
//
// Roots are only reported inside [0, tBound]. They are rejected, never clamped.
package solver

import (
	"math"
	"sort"
)

// Epsilon is the magnitude below which a coefficient is treated as zero
const Epsilon = 1e-7

// SmallestRoot returns the smallest real root of a·t³ + b·t² + c·t + d = 0 in [0, tBound]
func SmallestRoot(a, b, c, d, tBound float64) (float64, bool) {
	var buf [3]float64
	roots := appendRoots(buf[:0], a, b, c, d, tBound)
	if len(roots) == 0 {
		return 0, false
	}
	return roots[0], true
}

// Roots returns every real root in [0, tBound], in ascending order
func Roots(a, b, c, d, tBound float64) []float64 {
	return appendRoots(nil, a, b, c, d, tBound)
}

func appendRoots(dst []float64, a, b, c, d, tBound float64) []float64 {
	switch {
	case math.Abs(a) > Epsilon:
		dst = cubic(dst, b/a, c/a, d/a, tBound)
	case math.Abs(b) > Epsilon:
		dst = quadratic(dst, c/b, d/b, tBound)
	default:
		// c == 0 gives ±Inf or NaN, which keep rejects
		dst = keep(dst, -d/c, tBound)
	}

	if len(dst) > 1 {
		sort.Float64s(dst)
	}
	return dst
}

// cubic solves t³ + b·t² + c·t + d = 0 (Cardano)
func cubic(dst []float64, b, c, d, tBound float64) []float64 {
	q := (3.0*c - b*b) / 9.0
	r := b*(9.0*c-2.0*b*b)/54.0 - 0.5*d

	discriminant := q*q*q + r*r
	if discriminant >= 0 {
		sqrtd := math.Sqrt(discriminant)
		t := -b/3.0 + math.Cbrt(r+sqrtd) + math.Cbrt(r-sqrtd)
		return keep(dst, t, tBound)
	}

	// three distinct real roots, q < 0 here
	cosTheta := r / math.Sqrt(-q*q*q)
	theta := math.Acos(math.Max(-1, math.Min(1, cosTheta)))
	r13 := 2.0 * math.Sqrt(-q)

	dst = keep(dst, -b/3.0+r13*math.Cos(theta/3.0), tBound)
	dst = keep(dst, -b/3.0+r13*math.Cos((theta+2.0*math.Pi)/3.0), tBound)
	dst = keep(dst, -b/3.0+r13*math.Cos((theta+4.0*math.Pi)/3.0), tBound)
	return dst
}

// quadratic solves t² + b·t + c = 0
func quadratic(dst []float64, b, c, tBound float64) []float64 {
	discriminant := b*b - 4.0*c
	if discriminant < 0 {
		return dst
	}

	sqrtd := math.Sqrt(discriminant)
	dst = keep(dst, (-b-sqrtd)*0.5, tBound)
	dst = keep(dst, (-b+sqrtd)*0.5, tBound)
	return dst
}

// keep appends t when it lies in [0, tBound]; NaN and ±Inf never do
func keep(dst []float64, t, tBound float64) []float64 {
	if t >= 0 && t <= tBound {
		dst = append(dst, t)
	}
	return dst
}
