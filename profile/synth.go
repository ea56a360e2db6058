package profile

import "math"

// PlateauSpec describes a box-shaped synthetic line: flux Peak for domain
// values in [LineLow, LineHigh], Baseline elsewhere.
type PlateauSpec struct {
	Start    float64 // first domain value
	Step     float64 // domain increment per row
	Rows     int
	LineLow  float64
	LineHigh float64
	Baseline float64
	Peak     float64
}

// Plateau generates the table described by s.
func Plateau(s PlateauSpec) Table {
	t := Table{
		X: make([]float64, s.Rows),
		Y: make([]float64, s.Rows),
	}

	for i := range s.Rows {
		x := s.Start + float64(i)*s.Step
		t.X[i] = x

		if x >= s.LineLow && x <= s.LineHigh {
			t.Y[i] = s.Peak
		} else {
			t.Y[i] = s.Baseline
		}
	}

	return t
}

// EquivalentWidth returns the analytic equivalent width of the plateau,
// positive for emission (Peak above Baseline).
func (s PlateauSpec) EquivalentWidth() float64 {
	return (s.Peak - s.Baseline) * (s.LineHigh - s.LineLow) / s.Baseline
}

// GaussianSpec describes a Gaussian line on a flat continuum. Amplitude is
// negative for absorption.
type GaussianSpec struct {
	Start     float64
	Step      float64
	Rows      int
	Center    float64
	Sigma     float64
	Amplitude float64
	Baseline  float64
}

// Gaussian generates the table described by s.
func Gaussian(s GaussianSpec) Table {
	t := Table{
		X: make([]float64, s.Rows),
		Y: make([]float64, s.Rows),
	}

	inv := 1 / (2 * s.Sigma * s.Sigma)
	for i := range s.Rows {
		x := s.Start + float64(i)*s.Step
		d := x - s.Center
		t.X[i] = x
		t.Y[i] = s.Baseline + s.Amplitude*math.Exp(-d*d*inv)
	}

	return t
}

// EquivalentWidth returns the analytic equivalent width of the full
// Gaussian: Amplitude * Sigma * sqrt(2*pi) / Baseline.
func (s GaussianSpec) EquivalentWidth() float64 {
	return s.Amplitude * s.Sigma * math.Sqrt(2*math.Pi) / s.Baseline
}
