package interp

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	gointerp "gonum.org/v1/gonum/interp"

	"github.com/cwbudde/algo-ew/profile"
)

// ErrInsufficientData is returned when a table cannot support a cubic
// interpolant: fewer than four rows or a domain that is not strictly
// increasing.
var ErrInsufficientData = profile.ErrInsufficientData

// ErrUnknownMethod is returned by [ParseMethod] for unrecognised names.
var ErrUnknownMethod = errors.New("interp: unknown method")

// Method selects the interpolant fitted through the samples.
type Method int

const (
	NotAKnot Method = iota
	Natural
	Akima
	FritschButland
	CatmullRom
)

var methodNames = map[Method]string{
	NotAKnot:       "not-a-knot",
	Natural:        "natural",
	Akima:          "akima",
	FritschButland: "fritsch-butland",
	CatmullRom:     "catmull-rom",
}

// String returns the method name accepted by [ParseMethod].
func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a name such as "akima" to its Method. The empty string
// and "cubic" select [NotAKnot].
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "cubic" {
		return NotAKnot, nil
	}

	for m, name := range methodNames {
		if name == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Curve is a continuous profile interpolated through a sample table.
type Curve struct {
	pred   gointerp.Predictor
	lo, hi float64
	method Method
}

// New fits the interpolant selected by m through every sample of t.
// The table needs at least four rows and a strictly increasing domain.
func New(t profile.Table, m Method) (*Curve, error) {
	if err := t.CheckIncreasing(profile.MinRows); err != nil {
		return nil, fmt.Errorf("interp: %w", err)
	}

	var fp gointerp.FittablePredictor

	switch m {
	case NotAKnot:
		fp = &gointerp.NotAKnotCubic{}
	case Natural:
		fp = &gointerp.NaturalCubic{}
	case Akima:
		fp = &gointerp.AkimaSpline{}
	case FritschButland:
		fp = &gointerp.FritschButland{}
	case CatmullRom:
		fp = &catmullRom{}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
	}

	if err := fp.Fit(t.X, t.Y); err != nil {
		return nil, fmt.Errorf("interp: fit %v: %w", m, err)
	}

	lo, hi := t.Span()

	return &Curve{pred: fp, lo: lo, hi: hi, method: m}, nil
}

// At evaluates the curve at x. x must lie within [Curve.Domain].
func (c *Curve) At(x float64) float64 {
	return c.pred.Predict(x)
}

// Domain returns the sampled domain the curve is defined on.
func (c *Curve) Domain() (lo, hi float64) { return c.lo, c.hi }

// Method returns the interpolant the curve was built with.
func (c *Curve) Method() Method { return c.method }

// catmullRom is a cubic Hermite interpolant whose node tangents are
// central differences over the neighbouring samples (one-sided at the ends).
type catmullRom struct {
	xs, ys, ds []float64
}

func (c *catmullRom) Fit(xs, ys []float64) error {
	n := len(xs)
	if n != len(ys) {
		return profile.ErrLengthMismatch
	}

	if n < 2 {
		return profile.ErrInsufficientData
	}

	c.xs = append([]float64(nil), xs...)
	c.ys = append([]float64(nil), ys...)
	c.ds = make([]float64, n)

	c.ds[0] = (ys[1] - ys[0]) / (xs[1] - xs[0])
	c.ds[n-1] = (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2])

	for i := 1; i < n-1; i++ {
		c.ds[i] = (ys[i+1] - ys[i-1]) / (xs[i+1] - xs[i-1])
	}

	return nil
}

func (c *catmullRom) Predict(x float64) float64 {
	n := len(c.xs)
	if x <= c.xs[0] {
		return c.ys[0]
	}

	if x >= c.xs[n-1] {
		return c.ys[n-1]
	}

	// Index of the interval [xs[i], xs[i+1]) containing x.
	i := sort.SearchFloat64s(c.xs, x)
	if c.xs[i] != x {
		i--
	}

	if i >= n-1 {
		i = n - 2
	}

	h := c.xs[i+1] - c.xs[i]
	t := (x - c.xs[i]) / h

	return hermite(t, c.ys[i], c.ys[i+1], h*c.ds[i], h*c.ds[i+1])
}

// hermite evaluates the cubic Hermite basis on [0,1] with end values p0, p1
// and end slopes m0, m1 already scaled to the unit interval.
func hermite(t, p0, p1, m0, m1 float64) float64 {
	t2 := t * t
	t3 := t2 * t

	return (2*t3-3*t2+1)*p0 + (t3-2*t2+t)*m0 + (-2*t3+3*t2)*p1 + (t3-t2)*m1
}
