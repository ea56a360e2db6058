// Command ewidth measures the equivalent width of a spectral line in one or
// more tabulated profiles.
//
// Usage:
//
//	ewidth [flags] file ...
//
// Each file is a whitespace-delimited numeric table. The domain (wavelength
// or velocity) and flux columns are chosen with -x and -y. Files are measured
// concurrently and reported in input order.
//
// Examples:
//
//	ewidth line.dat
//	ewidth -order 6 -velocity -lambda 128.18 halpha_035_12818.dat
//	ewidth -config ew.yaml -plot overlay.png spectra/*.dat
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/algo-ew/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// override copies one flag-bound field from src into dst.
type override func(dst *config.File, src config.File)

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ewidth", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fl := config.Default()
	overrides := map[string]override{}

	bindInt := func(name string, get func(*config.File) *int, usage string) {
		p := get(&fl)
		fs.IntVar(p, name, *p, usage)
		overrides[name] = func(dst *config.File, src config.File) { *get(dst) = *get(&src) }
	}
	bindFloat := func(name string, get func(*config.File) *float64, usage string) {
		p := get(&fl)
		fs.Float64Var(p, name, *p, usage)
		overrides[name] = func(dst *config.File, src config.File) { *get(dst) = *get(&src) }
	}
	bindBool := func(name string, get func(*config.File) *bool, usage string) {
		p := get(&fl)
		fs.BoolVar(p, name, *p, usage)
		overrides[name] = func(dst *config.File, src config.File) { *get(dst) = *get(&src) }
	}
	bindString := func(name string, get func(*config.File) *string, usage string) {
		p := get(&fl)
		fs.StringVar(p, name, *p, usage)
		overrides[name] = func(dst *config.File, src config.File) { *get(dst) = *get(&src) }
	}

	bindInt("x", func(f *config.File) *int { return &f.DomainColumn }, "domain (wavelength or velocity) column")
	bindInt("y", func(f *config.File) *int { return &f.FluxColumn }, "flux column")
	bindInt("order", func(f *config.File) *int { return &f.ContinuumDegree }, "continuum polynomial degree")
	bindBool("velocity", func(f *config.File) *bool { return &f.ConvertVelocity }, "treat the domain column as velocity and convert to wavelength")
	bindFloat("lambda", func(f *config.File) *float64 { return &f.ReferenceWavelength }, "reference wavelength for -velocity")
	bindFloat("c", func(f *config.File) *float64 { return &f.SpeedOfLight }, "speed of light in the velocity unit of the table")
	bindString("interp", func(f *config.File) *string { return &f.Interpolation }, "interpolation: not-a-knot, natural, akima, fritsch-butland, catmull-rom")
	bindFloat("window", func(f *config.File) *float64 { return &f.WindowFraction }, "running-average window as a fraction of the row count")
	bindInt("min-window", func(f *config.File) *int { return &f.MinWindow }, "minimum running-average window in rows")
	bindFloat("threshold", func(f *config.File) *float64 { return &f.Threshold }, "running-average change that marks a line edge")
	bindBool("strict", func(f *config.File) *bool { return &f.RequireBounds }, "fail when a line edge is not found instead of using the table ends")
	bindFloat("per-unit", func(f *config.File) *float64 { return &f.SubdivisionsPerUnit }, "integration subintervals per domain unit")
	bindInt("min-subdivisions", func(f *config.File) *int { return &f.MinSubdivisions }, "subintervals used for sub-unit intervals")
	bindString("plot", func(f *config.File) *string { return &f.Plot }, "write an overlay plot to this path (.png, .svg, .pdf)")
	bindInt("workers", func(f *config.File) *int { return &f.Workers }, "concurrent measurements (0 = one per CPU)")

	cfgPath := fs.String("config", "", "YAML configuration file; flags override its values")
	verbose := fs.Bool("v", false, "log per-file diagnostics")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ewidth [flags] file ...\n\n")
		fmt.Fprintf(stderr, "Measures the equivalent width of the line in each table.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  ewidth line.dat\n")
		fmt.Fprintf(stderr, "  ewidth -order 6 -velocity -lambda 128.18 halpha.dat\n")
		fmt.Fprintf(stderr, "  ewidth -config ew.yaml -plot overlay.png spectra/*.dat\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := log.New(stderr, "ewidth: ", 0)

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	file := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logger.Printf("error: %v", err)
			return 1
		}
		file = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		if o, ok := overrides[f.Name]; ok {
			o(&file, fl)
		}
	})

	cfg, err := file.Measurement()
	if err != nil {
		logger.Printf("error: %v", err)
		return 1
	}

	b := batch{
		cfg:     cfg,
		plot:    file.Plot,
		workers: file.Workers,
		logger:  logger,
		verbose: *verbose,
	}

	outcomes := b.measureAll(fs.Args())

	if err := printResults(stdout, outcomes); err != nil {
		logger.Printf("error: failed to write results: %v", err)
		return 1
	}

	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			logger.Printf("%s: %v", o.path, o.err)
			failed++
		}
	}

	if failed > 0 {
		return 1
	}

	return 0
}
