package ew

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ew/dsp/continuum"
	"github.com/cwbudde/algo-ew/dsp/edge"
	"github.com/cwbudde/algo-ew/dsp/interp"
	"github.com/cwbudde/algo-ew/internal/testutil"
	"github.com/cwbudde/algo-ew/profile"
)

var emissionPlateau = profile.PlateauSpec{
	Start: -5000, Step: 1, Rows: 10000,
	LineLow: -2000, LineHigh: 2000,
	Baseline: 2, Peak: 12,
}

func TestMeasureEmissionPlateau(t *testing.T) {
	tab := profile.Plateau(emissionPlateau)

	res, err := Measure(tab, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if res.Bounds.Lower != 3000 || res.Bounds.Upper != 7000 {
		t.Fatalf("bounds = (%d, %d), want (3000, 7000)", res.Bounds.Lower, res.Bounds.Upper)
	}

	if res.LowerX != -2000 || res.UpperX != 2000 {
		t.Fatalf("line span = [%v, %v], want [-2000, 2000]", res.LowerX, res.UpperX)
	}

	testutil.RequireRelative(t, "MeanContinuum", res.MeanContinuum, 2, 0.01)
	testutil.RequireRelative(t, "LineArea", res.LineArea, 40000, 0.01)
	testutil.RequireRelative(t, "Width", res.Width, emissionPlateau.EquivalentWidth(), 0.01)

	if res.Width <= 0 {
		t.Fatalf("emission width = %v, want positive", res.Width)
	}

	testutil.RequireNearlyEqual(t, "LineArea", res.LineArea, res.ProfileArea-res.ContinuumArea, 1e-9)
}

func TestMeasureAbsorptionGaussian(t *testing.T) {
	spec := profile.GaussianSpec{
		Start: -500, Step: 1, Rows: 1000,
		Center: 0, Sigma: 20, Amplitude: -0.5, Baseline: 1,
	}

	cfg := DefaultConfig()
	cfg.ContinuumDegree = 0

	res, err := Measure(profile.Gaussian(spec), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if !res.Bounds.Found() {
		t.Fatalf("bounds not found: %+v", res.Bounds)
	}

	if res.Width >= 0 {
		t.Fatalf("absorption width = %v, want negative", res.Width)
	}

	// The scan stops where the wings sink into the threshold, so a few
	// percent of the Gaussian area lies outside the measured span.
	testutil.RequireRelative(t, "Width", res.Width, spec.EquivalentWidth(), 0.06)
	testutil.RequireRelative(t, "MeanContinuum", res.MeanContinuum, 1, 0.01)
}

func TestMeasureNarrowLineDefaultResolution(t *testing.T) {
	// The whole line spans well under one domain unit, as for an Angstrom
	// table or a velocity table converted to wavelength.
	spec := profile.GaussianSpec{
		Start: -0.5, Step: 0.001, Rows: 1000,
		Center: 0, Sigma: 0.04, Amplitude: -0.5, Baseline: 1,
	}

	cfg := DefaultConfig()
	cfg.ContinuumDegree = 0

	res, err := Measure(profile.Gaussian(spec), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if !res.Bounds.Found() {
		t.Fatalf("bounds not found: %+v", res.Bounds)
	}

	if span := res.UpperX - res.LowerX; span >= 1 {
		t.Fatalf("line span = %v, want sub-unit", span)
	}

	testutil.RequireRelative(t, "Width", res.Width, spec.EquivalentWidth(), 0.06)
}

func TestMeasureFlatProfileIsZero(t *testing.T) {
	tab := profile.Plateau(profile.PlateauSpec{
		Start: 0, Step: 0.5, Rows: 400,
		Baseline: 2, Peak: 2, LineLow: 50, LineHigh: 150,
	})

	cfg := DefaultConfig()
	cfg.ContinuumDegree = 0

	res, err := Measure(tab, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if res.Bounds.Found() {
		t.Fatalf("flat profile reported bounds: %+v", res.Bounds)
	}

	testutil.RequireNearlyEqual(t, "Width", res.Width, 0, 1e-9)
	testutil.RequireNearlyEqual(t, "MeanContinuum", res.MeanContinuum, 2, 1e-12)
}

func TestMeasureVelocityTable(t *testing.T) {
	const (
		ref = 1000.0
		c   = 299792.458 // km/s
	)

	cfg := DefaultConfig()
	cfg.ConvertVelocity = true
	cfg.ReferenceWavelength = ref
	cfg.SpeedOfLight = c

	res, err := Measure(profile.Plateau(emissionPlateau), cfg)
	if err != nil {
		t.Fatal(err)
	}

	span := ref * 4000 / c
	testutil.RequireRelative(t, "line span", res.UpperX-res.LowerX, span, 1e-9)
	testutil.RequireRelative(t, "Width", res.Width, 10*span/2, 0.01)

	if res.Table.X[0] >= res.Table.X[1] {
		t.Fatal("converted table is not ascending")
	}
}

func TestMeasureInterpolationMethods(t *testing.T) {
	spec := profile.GaussianSpec{
		Start: -200, Step: 0.5, Rows: 800,
		Sigma: 8, Amplitude: 3, Baseline: 1.5,
	}
	tab := profile.Gaussian(spec)

	var widths []float64
	for _, m := range []interp.Method{interp.NotAKnot, interp.Natural, interp.Akima, interp.FritschButland, interp.CatmullRom} {
		cfg := DefaultConfig()
		cfg.Interpolation = m

		res, err := Measure(tab, cfg)
		if err != nil {
			t.Fatalf("%v: %v", m, err)
		}

		if res.Profile.Method() != m {
			t.Fatalf("curve method = %v, want %v", res.Profile.Method(), m)
		}

		widths = append(widths, res.Width)
	}

	// A smooth, well-sampled line gives the same answer whichever cubic is used.
	for _, w := range widths[1:] {
		testutil.RequireRelative(t, "width spread", w, widths[0], 1e-3)
	}
}

func TestMeasureErrors(t *testing.T) {
	tests := []struct {
		name   string
		tab    profile.Table
		mutate func(*Config)
		want   error
	}{
		{
			name: "three rows",
			tab:  profile.Table{X: []float64{0, 1, 2}, Y: []float64{1, 2, 1}},
			want: interp.ErrInsufficientData,
		},
		{
			name: "unsorted domain",
			tab:  profile.Table{X: []float64{0, 2, 1, 3, 4}, Y: []float64{1, 1, 1, 1, 1}},
			want: profile.ErrInsufficientData,
		},
		{
			name:   "velocity without reference",
			tab:    profile.Plateau(emissionPlateau),
			mutate: func(c *Config) { c.ConvertVelocity = true },
			want:   ErrConfiguration,
		},
		{
			name:   "negative degree",
			tab:    profile.Plateau(emissionPlateau),
			mutate: func(c *Config) { c.ContinuumDegree = -1 },
			want:   ErrConfiguration,
		},
		{
			name:   "bad threshold",
			tab:    profile.Plateau(emissionPlateau),
			mutate: func(c *Config) { c.Edge.Threshold = 0 },
			want:   edge.ErrInvalidConfig,
		},
		{
			name: "flat profile with quadratic continuum",
			tab:  profile.Table{X: testutil.Ramp(0, 1, 100), Y: testutil.DC(1, 100)},
			want: continuum.ErrUnderdeterminedFit,
		},
		{
			name:   "bounds required",
			tab:    profile.Table{X: testutil.Ramp(0, 1, 100), Y: testutil.DC(1, 100)},
			mutate: func(c *Config) { c.Edge.Require = true },
			want:   edge.ErrBoundsNotFound,
		},
		{
			name:   "zero continuum",
			tab:    profile.Table{X: testutil.Ramp(0, 1, 100), Y: testutil.DC(0, 100)},
			mutate: func(c *Config) { c.ContinuumDegree = 0 },
			want:   ErrZeroContinuum,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tc.mutate != nil {
				tc.mutate(&cfg)
			}

			_, err := Measure(tc.tab, cfg)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMeasureDoesNotMutateTable(t *testing.T) {
	tab := profile.Plateau(emissionPlateau)
	x0, y0 := tab.X[3000], tab.Y[3000]

	cfg := DefaultConfig()
	cfg.ConvertVelocity = true
	cfg.ReferenceWavelength = 6562.8

	if _, err := Measure(tab, cfg); err != nil {
		t.Fatal(err)
	}

	if tab.X[3000] != x0 || tab.Y[3000] != y0 {
		t.Fatal("Measure mutated the input table")
	}
}

func TestMeasureMatrixColumns(t *testing.T) {
	tab := profile.Plateau(emissionPlateau)

	// Flux in column 0, an unused column 1, domain in column 2.
	m := profile.Matrix{Cols: 3}
	for i := range tab.X {
		m.Rows = append(m.Rows, []float64{tab.Y[i], -1, tab.X[i]})
	}

	cfg := DefaultConfig()
	cfg.DomainColumn = 2
	cfg.FluxColumn = 0

	res, err := MeasureSource(profile.Static(m), cfg)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireRelative(t, "Width", res.Width, 20000, 0.01)

	cfg.FluxColumn = 3
	if _, err := MeasureMatrix(m, cfg); !errors.Is(err, profile.ErrFileFormat) {
		t.Fatalf("err = %v, want ErrFileFormat", err)
	}
}

type recordingRenderer struct {
	calls int
	last  Overlay
}

func (r *recordingRenderer) Render(o Overlay) error {
	r.calls++
	r.last = o
	return nil
}

func TestRenderOverlay(t *testing.T) {
	tab := profile.Plateau(profile.PlateauSpec{
		Start: -50, Step: 1, Rows: 100,
		LineLow: -4, LineHigh: 5,
		Baseline: 2, Peak: 12,
	})

	cfg := DefaultConfig()
	cfg.ContinuumDegree = 1

	res, err := Measure(tab, cfg)
	if err != nil {
		t.Fatal(err)
	}

	width := res.Width

	var r recordingRenderer
	if err := Render(&r, res); err != nil {
		t.Fatal(err)
	}

	if r.calls != 1 {
		t.Fatalf("Render called %d times, want 1", r.calls)
	}

	o := r.last
	if len(o.Grid) != 1000 || len(o.Interpolated) != 1000 || len(o.Continuum) != 1000 {
		t.Fatalf("overlay lengths = %d/%d/%d, want 1000", len(o.Grid), len(o.Interpolated), len(o.Continuum))
	}

	if o.Grid[0] != -50 || o.Grid[len(o.Grid)-1] != 49 {
		t.Fatalf("grid span = [%v, %v], want [-50, 49]", o.Grid[0], o.Grid[len(o.Grid)-1])
	}

	if math.Abs(o.Interpolated[0]-2) > 1e-9 {
		t.Fatalf("interpolated start = %v, want 2", o.Interpolated[0])
	}

	if res.Width != width || o.Result.Width != width {
		t.Fatal("rendering changed the measured width")
	}

	if err := Render(nil, res); err != nil {
		t.Fatalf("nil renderer: %v", err)
	}
}
