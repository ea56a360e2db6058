package profile

// SpeedOfLight is c in metres per second.
const SpeedOfLight = 299792458.0

// VelocityToWavelength maps a line-of-sight velocity to a wavelength around
// the reference wavelength: lambda = ref * (c - v) / c. Velocity and c must
// share units.
func VelocityToWavelength(v, ref, c float64) float64 {
	return ref * (c - v) / c
}

// ToWavelength converts the domain of a velocity table to wavelength. The
// mapping is decreasing in velocity, so an ascending velocity table comes
// back reversed to keep the wavelength domain ascending.
func ToWavelength(t Table, ref, c float64) Table {
	out := Table{
		X: make([]float64, len(t.X)),
		Y: make([]float64, len(t.Y)),
	}

	for i, v := range t.X {
		out.X[i] = VelocityToWavelength(v, ref, c)
	}
	copy(out.Y, t.Y)

	return out.Increasing()
}
