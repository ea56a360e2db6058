// Package ew measures the equivalent width of a spectral line.
//
// The equivalent width is the width of a rectangle at the continuum level
// whose area equals the area between the line profile and the continuum.
// [Measure] runs the full pipeline over one sample table:
//
//  1. optional velocity to wavelength conversion of the domain
//  2. cubic interpolation of the profile ([interp.New])
//  3. line boundary detection with a running average ([edge.Detect])
//  4. polynomial continuum fit outside the line ([continuum.FitOutside])
//  5. trapezoidal integration of profile and continuum between the
//     boundary coordinates ([integrate.Integrate])
//  6. width = (profile area - continuum area) / mean continuum
//
// Emission lines give a positive width, absorption lines a negative one.
//
// # Usage
//
//	cfg := ew.DefaultConfig()
//	cfg.ContinuumDegree = 2
//	res, err := ew.Measure(table, cfg)
//	fmt.Printf("W = %.4f (area %.4f, continuum %.4f)\n",
//		res.Width, res.LineArea, res.MeanContinuum)
//
// Measurements share no state, so independent tables may be measured
// concurrently.
package ew
