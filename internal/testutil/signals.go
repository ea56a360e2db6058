package testutil

import "math/rand"

// DeterministicNoise generates uniform noise in [-amplitude, amplitude)
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued sequence.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp generates start, start+step, ... of the given length.
func Ramp(start, step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Poly evaluates the polynomial with ascending coefficients at every x.
func Poly(xs []float64, coeffs ...float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		var y float64
		for j := len(coeffs) - 1; j >= 0; j-- {
			y = y*x + coeffs[j]
		}
		out[i] = y
	}
	return out
}
