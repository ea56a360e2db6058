// Package plotsink renders measurement overlays to image files with
// gonum/plot. The output format follows the file extension (.png, .svg,
// .pdf, ...).
package plotsink

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cwbudde/algo-ew/measure/ew"
)

// ErrNoPath is returned when a Sink has no output path.
var ErrNoPath = errors.New("plotsink: output path is empty")

const (
	defaultWidth  = 8 * vg.Inch
	defaultHeight = 5 * vg.Inch
)

var (
	dataColor      = color.RGBA{B: 255, A: 255}
	profileColor   = color.RGBA{A: 255}
	continuumColor = color.RGBA{R: 255, A: 255}
)

// Sink writes one overlay plot per Render call to Path.
type Sink struct {
	Path   string
	Title  string
	Width  vg.Length
	Height vg.Length
}

// Render draws the samples as crosses, the interpolated profile in black
// and the continuum fit in red, then saves the plot.
func (s Sink) Render(o ew.Overlay) error {
	if s.Path == "" {
		return ErrNoPath
	}

	p, err := Build(o, s.Title)
	if err != nil {
		return err
	}

	w, h := s.Width, s.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}

	if err := p.Save(w, h, s.Path); err != nil {
		return fmt.Errorf("plotsink: save %s: %w", s.Path, err)
	}

	return nil
}

// Build assembles the overlay plot without writing it.
func Build(o ew.Overlay, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "domain"
	p.Y.Label.Text = "flux"

	data := make(plotter.XYs, o.Data.Len())
	for i := range data {
		data[i].X = o.Data.X[i]
		data[i].Y = o.Data.Y[i]
	}

	pts, err := plotter.NewScatter(data)
	if err != nil {
		return nil, fmt.Errorf("plotsink: samples: %w", err)
	}
	pts.GlyphStyle.Shape = draw.CrossGlyph{}
	pts.GlyphStyle.Color = dataColor
	p.Add(pts)
	p.Legend.Add("Data", pts)

	if len(o.Grid) > 0 {
		prof, err := line(o.Grid, o.Interpolated, profileColor)
		if err != nil {
			return nil, fmt.Errorf("plotsink: profile: %w", err)
		}
		p.Add(prof)
		p.Legend.Add("Cubic fit", prof)

		cont, err := line(o.Grid, o.Continuum, continuumColor)
		if err != nil {
			return nil, fmt.Errorf("plotsink: continuum: %w", err)
		}
		p.Add(cont)
		p.Legend.Add("Continuum fit", cont)
	}

	return p, nil
}

func line(xs, ys []float64, c color.Color) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(xs))
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(1)

	return l, nil
}
