// Package profile holds the tabulated line profile that every measurement
// starts from: an ordered sequence of (domain, flux) samples.
//
// The domain is a wavelength or a velocity; the flux is the measured
// intensity at that coordinate. Tables are read from whitespace-delimited
// text (one row per sample, any number of numeric columns), reduced to the
// two columns of interest, and are never mutated afterwards.
//
// # Usage
//
//	m, err := profile.Load("halpha.dat")
//	if err != nil { ... }
//	t, err := m.Columns(0, 1)
//
// Synthetic tables for tests and calibration are produced by [Plateau] and
// [Gaussian] and written back out with [Write].
package profile
