package main

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-ew/internal/plotsink"
	"github.com/cwbudde/algo-ew/measure/ew"
	"github.com/cwbudde/algo-ew/profile"
)

// batch measures a list of files with a shared configuration.
type batch struct {
	cfg     ew.Config
	plot    string
	workers int
	logger  *log.Logger
	verbose bool
}

// outcome is the result for one input file.
type outcome struct {
	path string
	rows int
	cols int
	res  ew.Result
	err  error
}

// measureAll measures every path concurrently. Results keep input order and
// one failing file does not stop the others.
func (b batch) measureAll(paths []string) []outcome {
	out := make([]outcome, len(paths))

	workers := b.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			out[i] = b.measureOne(path, len(paths) > 1)
			return nil
		})
	}

	_ = g.Wait()

	return out
}

func (b batch) measureOne(path string, many bool) outcome {
	o := outcome{path: path}

	m, err := profile.File(path).Matrix()
	if err != nil {
		o.err = err
		return o
	}

	o.rows, o.cols = m.Len(), m.Cols
	if b.verbose {
		b.logger.Printf("%s: input table %s x %d", path, humanize.Comma(int64(o.rows)), o.cols)
	}

	res, err := ew.MeasureMatrix(m, b.cfg)
	if err != nil {
		o.err = err
		return o
	}
	o.res = res

	if !res.Bounds.LowerFound {
		b.logger.Printf("%s: warning: no lower line edge found, using first row", path)
	}
	if !res.Bounds.UpperFound {
		b.logger.Printf("%s: warning: no upper line edge found, using last row", path)
	}

	if b.verbose {
		b.logger.Printf("%s: line rows %d..%d (window %d), profile area %g, continuum area %g, mean continuum %g",
			path, res.Bounds.Lower, res.Bounds.Upper, res.Bounds.Window,
			res.ProfileArea, res.ContinuumArea, res.MeanContinuum)
	}

	if b.plot != "" {
		sink := plotsink.Sink{
			Path:  plotPath(b.plot, path, many),
			Title: fmt.Sprintf("%s  W = %.4g", filepath.Base(path), res.Width),
		}
		if err := ew.Render(sink, res); err != nil {
			// The measurement stands even if the picture fails.
			b.logger.Printf("%s: warning: %v", path, err)
		} else if b.verbose {
			b.logger.Printf("%s: wrote %s", path, sink.Path)
		}
	}

	return o
}

// plotPath derives the plot file for input when several inputs share one
// -plot template: out.png becomes out-<input stem>.png.
func plotPath(template, input string, many bool) string {
	if !many {
		return template
	}

	ext := filepath.Ext(template)
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	return strings.TrimSuffix(template, ext) + "-" + stem + ext
}

func printResults(w io.Writer, outcomes []outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "File\tRows\tLine span\tLine area\tContinuum\tWidth\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t----\t---------\t---------\t---------\t-----\n"); err != nil {
		return err
	}

	for _, o := range outcomes {
		if o.err != nil {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\terror\n", o.path, humanize.Comma(int64(o.rows))); err != nil {
				return err
			}
			continue
		}

		r := o.res
		if _, err := fmt.Fprintf(tw, "%s\t%s\t[%.6g, %.6g]\t%.6g\t%.6g\t%.6g\n",
			o.path,
			humanize.Comma(int64(o.rows)),
			r.LowerX, r.UpperX,
			r.LineArea,
			r.MeanContinuum,
			r.Width,
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}
