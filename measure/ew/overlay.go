package ew

import (
	"fmt"

	"github.com/cwbudde/algo-ew/profile"
)

// overlayOversample is how many curve points are drawn per table row.
const overlayOversample = 10

// Overlay is everything a renderer needs to draw a measurement: the raw
// samples, the interpolated profile and the continuum on a dense grid.
type Overlay struct {
	Data         profile.Table
	Grid         []float64
	Interpolated []float64
	Continuum    []float64
	Result       Result
}

// Renderer draws an overlay for visual inspection. Rendering never feeds
// back into the measured values.
type Renderer interface {
	Render(o Overlay) error
}

// NewOverlay samples the profile and continuum of res on a grid with ten
// points per table row spanning the full sampled domain.
func NewOverlay(res Result) Overlay {
	t := res.Table
	o := Overlay{Data: t, Result: res}

	if res.Profile == nil || res.Continuum == nil || t.Len() < 2 {
		return o
	}

	lo, hi := res.Profile.Domain()
	n := overlayOversample * t.Len()
	step := (hi - lo) / float64(n-1)

	o.Grid = make([]float64, n)
	o.Interpolated = make([]float64, n)
	for i := range n {
		x := lo + float64(i)*step
		if i == n-1 {
			x = hi
		}

		o.Grid[i] = x
		o.Interpolated[i] = res.Profile.At(x)
	}

	o.Continuum = res.Continuum.Eval(nil, o.Grid)

	return o
}

// Render builds the overlay for res and hands it to r.
func Render(r Renderer, res Result) error {
	if r == nil {
		return nil
	}

	if err := r.Render(NewOverlay(res)); err != nil {
		return fmt.Errorf("ew: render: %w", err)
	}

	return nil
}
