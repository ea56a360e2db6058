package profile

import (
	"errors"
	"fmt"
)

// Errors returned by table construction and validation.
var (
	ErrInsufficientData = errors.New("profile: insufficient data")
	ErrLengthMismatch   = errors.New("profile: domain and flux lengths differ")
)

// MinRows is the smallest table a cubic interpolant can be built over.
const MinRows = 4

// Table is a Sample Table: X holds the domain coordinate, Y the flux.
// Both slices have the same length. A Table is treated as immutable once
// built; functions that transform it return a new Table.
type Table struct {
	X []float64
	Y []float64
}

// New builds a Table from parallel domain and flux slices. The slices are
// copied so later changes by the caller do not leak into the table.
func New(x, y []float64) (Table, error) {
	if len(x) != len(y) {
		return Table{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}

	t := Table{
		X: make([]float64, len(x)),
		Y: make([]float64, len(y)),
	}
	copy(t.X, x)
	copy(t.Y, y)

	return t, nil
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.X) }

// Span returns the first and last domain values.
func (t Table) Span() (lo, hi float64) {
	if len(t.X) == 0 {
		return 0, 0
	}

	return t.X[0], t.X[len(t.X)-1]
}

// CheckIncreasing returns an error wrapping [ErrInsufficientData] when the
// table has fewer than minRows rows or when its domain is not strictly
// increasing.
func (t Table) CheckIncreasing(minRows int) error {
	if len(t.X) != len(t.Y) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(t.X), len(t.Y))
	}

	if len(t.X) < minRows {
		return fmt.Errorf("%w: %d rows, need at least %d", ErrInsufficientData, len(t.X), minRows)
	}

	for i := 1; i < len(t.X); i++ {
		if !(t.X[i] > t.X[i-1]) {
			return fmt.Errorf("%w: domain not strictly increasing at row %d (%g after %g)",
				ErrInsufficientData, i, t.X[i], t.X[i-1])
		}
	}

	return nil
}

// Decreasing reports whether the domain is strictly decreasing.
func (t Table) Decreasing() bool {
	if len(t.X) < 2 {
		return false
	}

	for i := 1; i < len(t.X); i++ {
		if !(t.X[i] < t.X[i-1]) {
			return false
		}
	}

	return true
}

// Reversed returns a copy of t with the row order reversed.
func (t Table) Reversed() Table {
	n := len(t.X)
	out := Table{
		X: make([]float64, n),
		Y: make([]float64, n),
	}

	for i := range n {
		out.X[i] = t.X[n-1-i]
		out.Y[i] = t.Y[n-1-i]
	}

	return out
}

// Increasing returns t oriented with an ascending domain. A strictly
// decreasing table is reversed; any other table is returned as is and left
// for [Table.CheckIncreasing] to judge.
func (t Table) Increasing() Table {
	if t.Decreasing() {
		return t.Reversed()
	}

	return t
}
