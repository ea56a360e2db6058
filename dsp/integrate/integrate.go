// Package integrate provides composite trapezoidal integration of
// continuous functions with a resolution derived from the interval width.
package integrate

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultPerUnit = 10
	defaultFloor   = 1000
)

// Func is a continuous function of the domain coordinate.
type Func func(x float64) float64

// Resolution sets how many subintervals an interval is split into.
type Resolution struct {
	// PerUnit is the number of subintervals per unit of domain distance.
	PerUnit float64
	// Floor is the minimum subinterval count, so narrow and degenerate
	// intervals are still resolved finely.
	Floor int
}

// DefaultResolution returns 10 subintervals per unit and at least 1000.
func DefaultResolution() Resolution {
	return Resolution{PerUnit: defaultPerUnit, Floor: defaultFloor}
}

// Subdivisions returns the subinterval count for [a, b]: |b-a|*PerUnit,
// raised to Floor when smaller. A non-positive Floor means 1000.
func (r Resolution) Subdivisions(a, b float64) int {
	floor := r.Floor
	if floor <= 0 {
		floor = defaultFloor
	}

	return max(int(math.Abs(b-a)*r.PerUnit), floor)
}

// Integrate approximates the integral of f over [a, b] with the
// subdivision count chosen by r. b may be less than a, in which case the
// result is the negated integral over [b, a].
func Integrate(f Func, a, b float64, r Resolution) float64 {
	return Trapezoid(f, a, b, r.Subdivisions(a, b))
}

// Trapezoid applies the composite trapezoidal rule with n subintervals:
//
//	h/2 * (f(x0) + 2 f(x1) + ... + 2 f(x_{n-1}) + f(xn)),  h = (b-a)/n
//
// Both endpoints are sampled with half weight, so constant and linear
// functions integrate exactly. n < 1 is treated as 1.
func Trapezoid(f Func, a, b float64, n int) float64 {
	if n < 1 {
		n = 1
	}

	if a == b {
		return 0
	}

	ys := Sample(f, a, b, n)
	ys[0] *= 0.5
	ys[n] *= 0.5

	h := (b - a) / float64(n)

	return h * vecmath.Sum(ys)
}

// Sample evaluates f at the n+1 evenly spaced points a, a+h, ..., b.
func Sample(f Func, a, b float64, n int) []float64 {
	ys := make([]float64, n+1)
	h := (b - a) / float64(n)

	for i := range n {
		ys[i] = f(a + float64(i)*h)
	}
	ys[n] = f(b)

	return ys
}
