// Public domain.

package main

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/soniakeys/exit"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/soniakeys/starindex/internal/artifact"
	"github.com/soniakeys/starindex/internal/star"
)

const versionString = "sistat version 0.1"

func main() {
	defer exit.Handler()

	if err := newCommand().Execute(); err != nil {
		exit.Log(err)
	}
}

func newCommand() *cobra.Command {
	var hist bool
	cmd := &cobra.Command{
		Use:           "sistat <file>",
		Short:         "Check a star index file and print statistics",
		Version:       versionString,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := artifact.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := a.Grid.Verify(a.Index, a.Records); err != nil {
				return fmt.Errorf("%s: bad index: %w", args[0], err)
			}
			s := compute(a)
			s.print(cmd.OutOrStdout(), a)
			if hist {
				s.printHist(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&hist, "hist", false, "print a histogram of magnitudes")
	return cmd
}

type stats struct {
	stars            int
	magMean, magStd  float64
	brightest        star.Record
	occupied         int
	perCell, cellStd float64 // over occupied cells
	densest          int     // cell number
	densestN         int

	histLo int       // magnitude of histogram bin 0
	hist   []float64 // stars per whole magnitude
}

func compute(a *artifact.Artifact) (s stats) {
	s.stars = len(a.Records)
	if s.stars > 0 {
		mags := make([]float64, s.stars)
		s.brightest = a.Records[0]
		for i, r := range a.Records {
			mags[i] = r.Magnitude()
			if r.Mag < s.brightest.Mag {
				s.brightest = r
			}
		}
		s.magMean, s.magStd = stat.MeanStdDev(mags, nil)

		slices.Sort(mags)
		s.histLo = int(math.Floor(mags[0]))
		hi := int(math.Floor(mags[len(mags)-1])) + 1
		dividers := make([]float64, hi-s.histLo+1)
		floats.Span(dividers, float64(s.histLo), float64(hi))
		s.hist = stat.Histogram(nil, dividers, mags, nil)
	}

	counts := make([]float64, 0, len(a.Index.Count))
	for _, n := range a.Index.Count {
		if n > 0 {
			counts = append(counts, float64(n))
		}
	}
	s.occupied = len(counts)
	if s.occupied > 0 {
		s.perCell, s.cellStd = stat.MeanStdDev(counts, nil)
	}
	for c, n := range a.Index.Count {
		if int(n) > s.densestN {
			s.densest, s.densestN = c, int(n)
		}
	}
	return
}

func fmtPos(ra, dec float64) string {
	return fmt.Sprintf("%.1d %.0d",
		sexa.FmtRA(unit.RAFromDeg(ra)), sexa.FmtAngle(unit.AngleFromDeg(dec)))
}

func (s stats) print(w io.Writer, a *artifact.Artifact) {
	m := a.Meta
	fmt.Fprintf(w, "%s J%.2f, frame %s, id %s\n", m.Catalog, m.Epoch, m.Frame, m.ID)
	fmt.Fprintf(w, "FOV %g deg, faint limit %g, %d stars per shape\n",
		m.FOV, m.Faint, m.MinStars)
	fmt.Fprintf(w, "Stars:           %d\n", s.stars)
	if s.stars > 0 {
		fmt.Fprintf(w, "Magnitude:       %.2f +/- %.2f\n", s.magMean, s.magStd)
		b := s.brightest
		fmt.Fprintf(w, "Brightest:       %.2f at %s\n", b.Magnitude(), fmtPos(b.RADeg(), b.DecDeg()))
	}
	g := a.Grid
	fmt.Fprintf(w, "Grid:            %g deg, %d x %d = %d cells\n",
		g.Step(), g.ZD, g.ZR, g.Cells())
	fmt.Fprintf(w, "Occupied cells:  %d (%.1f%%)\n",
		s.occupied, 100*float64(s.occupied)/float64(g.Cells()))
	if s.occupied > 0 {
		fmt.Fprintf(w, "Stars per cell:  %.1f +/- %.1f\n", s.perCell, s.cellStd)
		ra, dec := g.Center(s.densest)
		fmt.Fprintf(w, "Densest cell:    %d, %d stars, center %s\n",
			s.densest, s.densestN, fmtPos(ra, dec))
	}
}

func (s stats) printHist(w io.Writer) {
	for i, n := range s.hist {
		fmt.Fprintf(w, "%3d %8.0f\n", s.histLo+i, n)
	}
}
