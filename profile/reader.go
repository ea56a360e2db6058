package profile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrFileFormat is the sentinel every table parsing failure unwraps to.
var ErrFileFormat = errors.New("profile: malformed table")

// FormatError describes a malformed row in a numeric table.
type FormatError struct {
	Line   int // 1-based line number, 0 when not tied to a line
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("profile: malformed table at line %d: %s", e.Line, e.Reason)
	}

	return "profile: malformed table: " + e.Reason
}

// Unwrap lets errors.Is match [ErrFileFormat].
func (e *FormatError) Unwrap() error { return ErrFileFormat }

// Matrix is a rectangular numeric table as read from disk, row major.
type Matrix struct {
	Rows [][]float64
	Cols int
}

// Len returns the number of rows.
func (m Matrix) Len() int { return len(m.Rows) }

// Columns extracts the domain and flux columns into a [Table].
func (m Matrix) Columns(domain, flux int) (Table, error) {
	if domain < 0 || domain >= m.Cols {
		return Table{}, &FormatError{Reason: fmt.Sprintf("domain column %d out of range [0, %d)", domain, m.Cols)}
	}

	if flux < 0 || flux >= m.Cols {
		return Table{}, &FormatError{Reason: fmt.Sprintf("flux column %d out of range [0, %d)", flux, m.Cols)}
	}

	t := Table{
		X: make([]float64, len(m.Rows)),
		Y: make([]float64, len(m.Rows)),
	}

	need := max(domain, flux) + 1
	for i, row := range m.Rows {
		if len(row) < need {
			return Table{}, &FormatError{Reason: fmt.Sprintf("row %d has %d columns, need %d", i, len(row), need)}
		}

		t.X[i] = row[domain]
		t.Y[i] = row[flux]
	}

	return t, nil
}

// Read parses a whitespace-delimited numeric table. Blank lines and lines
// starting with '#' are skipped. Every data row must have the same number
// of columns and every token must parse as a float.
func Read(r io.Reader) (Matrix, error) {
	var m Matrix

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	line := 0
	for sc.Scan() {
		line++

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if m.Cols == 0 {
			m.Cols = len(fields)
		} else if len(fields) != m.Cols {
			return Matrix{}, &FormatError{
				Line:   line,
				Reason: fmt.Sprintf("got %d columns, want %d", len(fields), m.Cols),
			}
		}

		row := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Matrix{}, &FormatError{
					Line:   line,
					Reason: fmt.Sprintf("column %d: %q is not numeric", j, f),
				}
			}

			row[j] = v
		}

		m.Rows = append(m.Rows, row)
	}

	if err := sc.Err(); err != nil {
		return Matrix{}, fmt.Errorf("profile: read table: %w", err)
	}

	if len(m.Rows) == 0 {
		return Matrix{}, &FormatError{Reason: "no data rows"}
	}

	return m, nil
}

// Load reads a numeric table from the named file.
func Load(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matrix{}, fmt.Errorf("profile: open table: %w", err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return Matrix{}, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Source supplies a numeric table to a measurement.
type Source interface {
	Matrix() (Matrix, error)
}

// File is a [Source] backed by a table file on disk.
type File string

// Matrix loads the file.
func (f File) Matrix() (Matrix, error) { return Load(string(f)) }

// Static is a [Source] that returns an in-memory matrix.
type Static Matrix

// Matrix returns the wrapped matrix.
func (s Static) Matrix() (Matrix, error) { return Matrix(s), nil }
