package edge

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-ew/internal/testutil"
	"github.com/cwbudde/algo-ew/profile"
)

func TestWindowLength(t *testing.T) {
	tests := []struct {
		rows int
		want int
	}{
		{rows: 4, want: 3},
		{rows: 19, want: 3},
		{rows: 100, want: 5},
		{rows: 10000, want: 500},
	}

	for _, tc := range tests {
		if got := WindowLength(tc.rows, defaultWindowFraction, defaultMinWindow); got != tc.want {
			t.Errorf("WindowLength(%d) = %d, want %d", tc.rows, got, tc.want)
		}
	}
}

func TestDetectPlateauEdges(t *testing.T) {
	tests := []struct {
		name     string
		halfW    float64
		baseline float64
		peak     float64
	}{
		{name: "emission", halfW: 2000, baseline: 2, peak: 12},
		{name: "absorption", halfW: 1500, baseline: 1, peak: 0.4},
		{name: "narrow", halfW: 300, baseline: 5, peak: 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tab := profile.Plateau(profile.PlateauSpec{
				Start: -5000, Step: 1, Rows: 10000,
				LineLow: -tc.halfW, LineHigh: tc.halfW,
				Baseline: tc.baseline, Peak: tc.peak,
			})

			b, err := Detect(tab.Y, DefaultConfig())
			if err != nil {
				t.Fatal(err)
			}

			if !b.Found() {
				t.Fatalf("bounds not found: %+v", b)
			}

			if lo := tab.X[b.Lower]; lo < -tc.halfW-1 || lo > -tc.halfW+1 {
				t.Errorf("lower edge at x=%v, want %v ±1", lo, -tc.halfW)
			}

			if hi := tab.X[b.Upper]; hi < tc.halfW-1 || hi > tc.halfW+1 {
				t.Errorf("upper edge at x=%v, want %v ±1", hi, tc.halfW)
			}

			if b.Window != 500 {
				t.Errorf("Window = %d, want 500", b.Window)
			}
		})
	}
}

func TestDetectExactIndices(t *testing.T) {
	tab := profile.Plateau(profile.PlateauSpec{
		Start: -5000, Step: 1, Rows: 10000,
		LineLow: -2000, LineHigh: 2000,
		Baseline: 2, Peak: 12,
	})

	b, err := Detect(tab.Y, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if b.Lower != 3000 || b.Upper != 7000 {
		t.Fatalf("bounds = (%d, %d), want (3000, 7000)", b.Lower, b.Upper)
	}
}

func TestDetectIgnoresSmallNoise(t *testing.T) {
	const rows = 2000

	y := testutil.DeterministicNoise(7, 0.01, rows)
	for i := range y {
		y[i] += 3
	}

	b, err := Detect(y, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if b.LowerFound || b.UpperFound {
		t.Fatalf("noise triggered an edge: %+v", b)
	}

	if b.Lower != 0 || b.Upper != rows-1 {
		t.Fatalf("fallback bounds = (%d, %d), want (0, %d)", b.Lower, b.Upper, rows-1)
	}
}

func TestDetectFlatFallsBackOrFails(t *testing.T) {
	y := testutil.DC(2, 400)

	b, err := Detect(y, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if b.Found() || b.Lower != 0 || b.Upper != 399 {
		t.Fatalf("bounds = %+v, want full-table fallback", b)
	}

	cfg := DefaultConfig()
	cfg.Require = true

	if _, err := Detect(y, cfg); !errors.Is(err, ErrBoundsNotFound) {
		t.Fatalf("err = %v, want ErrBoundsNotFound", err)
	}
}

func TestDetectShortTableUsesMinWindow(t *testing.T) {
	y := []float64{1, 1, 1, 1, 5, 5, 5, 5, 5, 1, 1, 1, 1, 1}

	b, err := Detect(y, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if b.Window != 3 {
		t.Fatalf("Window = %d, want 3", b.Window)
	}

	if b.Lower != 4 || b.Upper != 8 {
		t.Fatalf("bounds = (%d, %d), want (4, 8)", b.Lower, b.Upper)
	}

	if b.Lower >= b.Upper {
		t.Fatalf("lower %d not below upper %d", b.Lower, b.Upper)
	}
}

func TestDetectErrors(t *testing.T) {
	if _, err := Detect([]float64{1, 2}, DefaultConfig()); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}

	bad := []Config{
		{WindowFraction: 0, MinWindow: 3, Threshold: 0.001},
		{WindowFraction: 0.05, MinWindow: 0, Threshold: 0.001},
		{WindowFraction: 0.05, MinWindow: 3, Threshold: 0},
	}

	for i, cfg := range bad {
		if _, err := Detect(testutil.DC(1, 100), cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("config %d: err = %v, want ErrInvalidConfig", i, err)
		}
	}
}
