// Package config loads measurement settings for the command line tools from
// a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-ew/dsp/edge"
	"github.com/cwbudde/algo-ew/dsp/integrate"
	"github.com/cwbudde/algo-ew/dsp/interp"
	"github.com/cwbudde/algo-ew/measure/ew"
)

// File mirrors the YAML configuration file. Keys left out of the file keep
// their [Default] values.
type File struct {
	DomainColumn        int     `yaml:"domain_column"`
	FluxColumn          int     `yaml:"flux_column"`
	ContinuumDegree     int     `yaml:"continuum_degree"`
	ConvertVelocity     bool    `yaml:"convert_velocity"`
	ReferenceWavelength float64 `yaml:"reference_wavelength"`
	SpeedOfLight        float64 `yaml:"speed_of_light"` // in the table's velocity unit
	Interpolation       string  `yaml:"interpolation"`  // not-a-knot, natural, akima, fritsch-butland, catmull-rom
	WindowFraction      float64 `yaml:"window_fraction"`
	MinWindow           int     `yaml:"min_window"`
	Threshold           float64 `yaml:"threshold"`
	RequireBounds       bool    `yaml:"require_bounds"`
	SubdivisionsPerUnit float64 `yaml:"subdivisions_per_unit"`
	MinSubdivisions     int     `yaml:"min_subdivisions"`
	Plot                string  `yaml:"plot"`    // overlay output path, empty disables plotting
	Workers             int     `yaml:"workers"` // concurrent measurements, 0 means one per CPU
}

// Default returns the settings of [ew.DefaultConfig] in file form.
func Default() File {
	d := ew.DefaultConfig()

	return File{
		DomainColumn:        d.DomainColumn,
		FluxColumn:          d.FluxColumn,
		ContinuumDegree:     d.ContinuumDegree,
		SpeedOfLight:        d.SpeedOfLight,
		Interpolation:       d.Interpolation.String(),
		WindowFraction:      d.Edge.WindowFraction,
		MinWindow:           d.Edge.MinWindow,
		Threshold:           d.Edge.Threshold,
		SubdivisionsPerUnit: d.Resolution.PerUnit,
		MinSubdivisions:     d.Resolution.Floor,
	}
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (File, error) {
	f := Default()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return f, nil
}

// Load reads and parses a configuration file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read config file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Measurement converts the file settings into an [ew.Config] and validates
// it.
func (f File) Measurement() (ew.Config, error) {
	method, err := interp.ParseMethod(f.Interpolation)
	if err != nil {
		return ew.Config{}, fmt.Errorf("%w: %w", ew.ErrConfiguration, err)
	}

	cfg := ew.Config{
		DomainColumn:        f.DomainColumn,
		FluxColumn:          f.FluxColumn,
		ContinuumDegree:     f.ContinuumDegree,
		ConvertVelocity:     f.ConvertVelocity,
		ReferenceWavelength: f.ReferenceWavelength,
		SpeedOfLight:        f.SpeedOfLight,
		Interpolation:       method,
		Edge: edge.Config{
			WindowFraction: f.WindowFraction,
			MinWindow:      f.MinWindow,
			Threshold:      f.Threshold,
			Require:        f.RequireBounds,
		},
		Resolution: integrate.Resolution{
			PerUnit: f.SubdivisionsPerUnit,
			Floor:   f.MinSubdivisions,
		},
	}

	if err := cfg.Validate(); err != nil {
		return ew.Config{}, err
	}

	return cfg, nil
}
