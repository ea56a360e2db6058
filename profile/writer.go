package profile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Write emits t as a two-column whitespace-delimited table in scientific
// notation, one row per sample. The output round-trips through [Read].
func Write(w io.Writer, t Table) error {
	if len(t.X) != len(t.Y) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(t.X), len(t.Y))
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	for i := range t.X {
		buf = buf[:0]
		buf = strconv.AppendFloat(buf, t.X[i], 'e', 18, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, t.Y[i], 'e', 18, 64)
		buf = append(buf, '\n')

		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("profile: write table: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("profile: write table: %w", err)
	}

	return nil
}

// Save writes t to the named file, creating or truncating it.
func Save(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("profile: create table: %w", err)
	}

	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
