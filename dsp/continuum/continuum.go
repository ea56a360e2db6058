// Package continuum fits the baseline flux around a line feature.
//
// The continuum is modelled as a single least-squares polynomial through the
// samples that lie outside the line. The domain is mapped onto [-1, 1]
// before the Vandermonde system is built so that wavelength-sized
// coordinates do not wreck its conditioning at higher degrees.
package continuum

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-ew/profile"
)

// Errors returned by continuum fitting.
var (
	ErrUnderdeterminedFit = errors.New("continuum: too few samples for polynomial degree")
	ErrInvalidDegree      = errors.New("continuum: degree must be non-negative")
	ErrIllConditioned     = errors.New("continuum: ill-conditioned fit")
)

// Polynomial is a fitted continuum model. Coeffs are ascending powers of
// the normalised coordinate u = (x - Shift) / Scale.
type Polynomial struct {
	Coeffs []float64
	Shift  float64
	Scale  float64
}

// Degree returns the polynomial degree.
func (p *Polynomial) Degree() int { return len(p.Coeffs) - 1 }

// At evaluates the polynomial at x using Horner's scheme.
func (p *Polynomial) At(x float64) float64 {
	u := (x - p.Shift) / p.Scale

	var y float64
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		y = y*u + p.Coeffs[i]
	}

	return y
}

// Eval evaluates the polynomial at every x, writing into dst when it has
// the right length.
func (p *Polynomial) Eval(dst, xs []float64) []float64 {
	if len(dst) != len(xs) {
		dst = make([]float64, len(xs))
	}

	for i, x := range xs {
		dst[i] = p.At(x)
	}

	return dst
}

// Fit returns the least-squares polynomial of the given degree through
// (xs, ys). At least degree+1 samples are required.
func Fit(xs, ys []float64, degree int) (*Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDegree, degree)
	}

	if len(xs) != len(ys) {
		return nil, fmt.Errorf("continuum: %w: %d vs %d", profile.ErrLengthMismatch, len(xs), len(ys))
	}

	n := len(xs)
	cols := degree + 1
	if n < cols {
		return nil, fmt.Errorf("%w: %d samples, degree %d needs %d", ErrUnderdeterminedFit, n, degree, cols)
	}

	lo, hi := floats.Min(xs), floats.Max(xs)
	p := &Polynomial{Shift: 0.5 * (lo + hi), Scale: 0.5 * (hi - lo)}
	if p.Scale == 0 {
		p.Scale = 1
	}

	a := mat.NewDense(n, cols, nil)
	for i, x := range xs {
		u := (x - p.Shift) / p.Scale
		v := 1.0
		for j := range cols {
			a.Set(i, j, v)
			v *= u
		}
	}

	b := mat.NewVecDense(n, append([]float64(nil), ys...))

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: degree %d over %d samples (condition %g)", ErrIllConditioned, degree, n, float64(cond))
		}

		return nil, fmt.Errorf("continuum: solve: %w", err)
	}

	p.Coeffs = make([]float64, cols)
	for j := range cols {
		p.Coeffs[j] = c.AtVec(j)
	}

	return p, nil
}

// Outside collects the continuum samples of t: rows with index < lower or
// index >= upper.
func Outside(t profile.Table, lower, upper int) (xs, ys []float64) {
	n := t.Len()
	lower = max(0, min(lower, n))
	upper = max(lower, min(upper, n))

	xs = make([]float64, 0, lower+n-upper)
	ys = make([]float64, 0, lower+n-upper)

	xs = append(xs, t.X[:lower]...)
	xs = append(xs, t.X[upper:]...)
	ys = append(ys, t.Y[:lower]...)
	ys = append(ys, t.Y[upper:]...)

	return xs, ys
}

// FitOutside fits the continuum through the samples of t that lie outside
// the line delimited by the boundary indices [lower, upper).
func FitOutside(t profile.Table, lower, upper, degree int) (*Polynomial, error) {
	xs, ys := Outside(t, lower, upper)

	p, err := Fit(xs, ys, degree)
	if err != nil {
		return nil, fmt.Errorf("continuum outside rows [%d, %d): %w", lower, upper, err)
	}

	return p, nil
}
