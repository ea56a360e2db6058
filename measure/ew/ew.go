package ew

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-ew/dsp/continuum"
	"github.com/cwbudde/algo-ew/dsp/edge"
	"github.com/cwbudde/algo-ew/dsp/integrate"
	"github.com/cwbudde/algo-ew/dsp/interp"
	"github.com/cwbudde/algo-ew/profile"
)

// Errors returned by the width calculation.
var (
	ErrConfiguration = errors.New("ew: invalid configuration")
	ErrZeroContinuum = errors.New("ew: mean continuum is zero")
)

const defaultDegree = 2

// Config holds every parameter of one measurement.
type Config struct {
	DomainColumn    int // table column holding wavelength or velocity
	FluxColumn      int // table column holding flux
	ContinuumDegree int

	// ConvertVelocity treats the domain as velocity and converts it to
	// wavelength around ReferenceWavelength before measuring.
	ConvertVelocity     bool
	ReferenceWavelength float64
	// SpeedOfLight in the velocity unit of the table; zero means m/s.
	SpeedOfLight float64

	Interpolation interp.Method
	Edge          edge.Config
	Resolution    integrate.Resolution
}

// DefaultConfig returns columns 0 and 1, a quadratic continuum, not-a-knot
// interpolation and the default edge and resolution policies.
func DefaultConfig() Config {
	return Config{
		DomainColumn:    0,
		FluxColumn:      1,
		ContinuumDegree: defaultDegree,
		SpeedOfLight:    profile.SpeedOfLight,
		Interpolation:   interp.NotAKnot,
		Edge:            edge.DefaultConfig(),
		Resolution:      integrate.DefaultResolution(),
	}
}

// Validate checks the parameters that no pipeline stage checks itself.
func (cfg Config) Validate() error {
	if cfg.DomainColumn < 0 || cfg.FluxColumn < 0 {
		return fmt.Errorf("%w: negative column index", ErrConfiguration)
	}

	if cfg.ContinuumDegree < 0 {
		return fmt.Errorf("%w: continuum degree %d < 0", ErrConfiguration, cfg.ContinuumDegree)
	}

	if cfg.ConvertVelocity {
		if !(cfg.ReferenceWavelength > 0) {
			return fmt.Errorf("%w: velocity conversion needs a positive reference wavelength", ErrConfiguration)
		}

		if cfg.SpeedOfLight < 0 {
			return fmt.Errorf("%w: speed of light %v < 0", ErrConfiguration, cfg.SpeedOfLight)
		}
	}

	if cfg.Resolution.PerUnit < 0 {
		return fmt.Errorf("%w: subdivisions per unit %v < 0", ErrConfiguration, cfg.Resolution.PerUnit)
	}

	if err := cfg.Edge.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return nil
}

// Result is one equivalent width measurement with its intermediates.
type Result struct {
	Width         float64 // equivalent width, domain units
	LineArea      float64 // ProfileArea - ContinuumArea
	ProfileArea   float64 // integral of the interpolated profile
	ContinuumArea float64 // integral of the continuum model
	MeanContinuum float64 // continuum averaged over every sample

	Bounds edge.Bounds
	LowerX float64 // domain value at Bounds.Lower
	UpperX float64 // domain value at Bounds.Upper

	// Table is the table actually measured, after any conversion.
	Table     profile.Table
	Profile   *interp.Curve
	Continuum *continuum.Polynomial
}

// Measure computes the equivalent width of the line in t.
func Measure(t profile.Table, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	if cfg.ConvertVelocity {
		c := cfg.SpeedOfLight
		if c == 0 {
			c = profile.SpeedOfLight
		}

		t = profile.ToWavelength(t, cfg.ReferenceWavelength, c)
	}

	curve, err := interp.New(t, cfg.Interpolation)
	if err != nil {
		return Result{}, fmt.Errorf("ew: %w", err)
	}

	bounds, err := edge.Detect(t.Y, cfg.Edge)
	if err != nil {
		return Result{}, fmt.Errorf("ew: %w", err)
	}

	poly, err := continuum.FitOutside(t, bounds.Lower, bounds.Upper, cfg.ContinuumDegree)
	if err != nil {
		return Result{}, fmt.Errorf("ew: %w", err)
	}

	res := Result{
		Bounds:    bounds,
		LowerX:    t.X[bounds.Lower],
		UpperX:    t.X[bounds.Upper],
		Table:     t,
		Profile:   curve,
		Continuum: poly,
	}

	res.ProfileArea = integrate.Integrate(curve.At, res.LowerX, res.UpperX, cfg.Resolution)
	res.ContinuumArea = integrate.Integrate(poly.At, res.LowerX, res.UpperX, cfg.Resolution)
	res.LineArea = res.ProfileArea - res.ContinuumArea
	res.MeanContinuum = stat.Mean(poly.Eval(nil, t.X), nil)

	if res.MeanContinuum == 0 {
		return Result{}, ErrZeroContinuum
	}

	res.Width = res.LineArea / res.MeanContinuum

	return res, nil
}

// MeasureMatrix selects the configured columns of m and measures them.
func MeasureMatrix(m profile.Matrix, cfg Config) (Result, error) {
	t, err := m.Columns(cfg.DomainColumn, cfg.FluxColumn)
	if err != nil {
		return Result{}, fmt.Errorf("ew: %w", err)
	}

	return Measure(t, cfg)
}

// MeasureSource loads a table from src and measures it.
func MeasureSource(src profile.Source, cfg Config) (Result, error) {
	m, err := src.Matrix()
	if err != nil {
		return Result{}, fmt.Errorf("ew: %w", err)
	}

	return MeasureMatrix(m, cfg)
}
