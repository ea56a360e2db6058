// Package edge locates the extent of a single line feature in a tabulated
// profile.
//
// [Detect] scans the flux from both ends inward with an incremental running
// average. The out-of-line baseline keeps the average steady; the first step
// at which the average moves by at least the threshold marks the line edge.
package edge

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-ew/profile"
)

// Errors returned by boundary detection.
var (
	ErrInsufficientData = profile.ErrInsufficientData
	ErrInvalidConfig    = errors.New("edge: invalid configuration")
	ErrBoundsNotFound   = errors.New("edge: line boundaries not found")
)

const (
	defaultWindowFraction = 0.05
	defaultMinWindow      = 3
	defaultThreshold      = 0.001
)

// Config controls the running-average scan.
type Config struct {
	// WindowFraction is the smoothing window as a fraction of the row count.
	WindowFraction float64
	// MinWindow floors the window length for short tables.
	MinWindow int
	// Threshold is the change in running average, in flux units, that
	// marks an edge.
	Threshold float64
	// Require turns a scan that finds no edge into ErrBoundsNotFound
	// instead of falling back to the table ends.
	Require bool
}

// DefaultConfig returns a 5% window floored at 3 rows and a 0.001 threshold.
func DefaultConfig() Config {
	return Config{
		WindowFraction: defaultWindowFraction,
		MinWindow:      defaultMinWindow,
		Threshold:      defaultThreshold,
	}
}

// Validate reports whether cfg can drive a scan.
func (cfg Config) Validate() error {
	if !(cfg.WindowFraction > 0 && cfg.WindowFraction < 1) {
		return fmt.Errorf("%w: window fraction %v not in (0, 1)", ErrInvalidConfig, cfg.WindowFraction)
	}

	if cfg.MinWindow < 1 {
		return fmt.Errorf("%w: min window %d < 1", ErrInvalidConfig, cfg.MinWindow)
	}

	if !(cfg.Threshold > 0) {
		return fmt.Errorf("%w: threshold %v must be positive", ErrInvalidConfig, cfg.Threshold)
	}

	return nil
}

// Bounds is the detected Boundary Pair: 0 <= Lower < Upper <= rows-1.
type Bounds struct {
	Lower      int
	Upper      int
	LowerFound bool // false when Lower fell back to 0
	UpperFound bool // false when Upper fell back to rows-1
	Window     int  // smoothing window used, in rows
}

// Found reports whether both edges were detected.
func (b Bounds) Found() bool { return b.LowerFound && b.UpperFound }

// WindowLength returns int(fraction*rows), floored at minWindow.
func WindowLength(rows int, fraction float64, minWindow int) int {
	w := int(fraction * float64(rows))
	if w < minWindow {
		w = minWindow
	}

	return w
}

// Detect finds the line boundaries in the flux samples y.
//
// The forward scan seeds the average with y[0:w] and slides right over
// indices w..rows/2-1; the backward scan seeds with the last w samples and
// slides left over rows-1-w..rows/2+1. In each direction the first index
// whose entering sample moves the average by at least cfg.Threshold wins.
// A direction without a crossing falls back to the table end.
func Detect(y []float64, cfg Config) (Bounds, error) {
	if err := cfg.Validate(); err != nil {
		return Bounds{}, err
	}

	rows := len(y)
	w := WindowLength(rows, cfg.WindowFraction, cfg.MinWindow)

	if rows < 2 || rows < w {
		return Bounds{}, fmt.Errorf("edge: %w: %d rows, window needs %d", ErrInsufficientData, rows, w)
	}

	b := Bounds{Lower: 0, Upper: rows - 1, Window: w}
	mid := rows / 2
	wf := float64(w)

	var run float64
	for i := range w {
		run += y[i]
	}
	run /= wf

	for i := w; i < mid; i++ {
		prev := run
		run += (y[i] - y[i-w]) / wf

		if math.Abs(run-prev) >= cfg.Threshold {
			b.Lower = i
			b.LowerFound = true

			break
		}
	}

	run = 0
	for i := rows - w; i < rows; i++ {
		run += y[i]
	}
	run /= wf

	for i := rows - 1 - w; i > mid; i-- {
		prev := run
		run += (y[i] - y[i+w]) / wf

		if math.Abs(run-prev) >= cfg.Threshold {
			b.Upper = i
			b.UpperFound = true

			break
		}
	}

	if cfg.Require && !b.Found() {
		return b, fmt.Errorf("%w: lower found=%t, upper found=%t", ErrBoundsNotFound, b.LowerFound, b.UpperFound)
	}

	return b, nil
}
