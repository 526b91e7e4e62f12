// Public domain.

// Package grid bins catalog stars on a uniform declination/right ascension
// grid and builds the CSR (head, count) index over the binned catalog.
//
// A cell is Step wide in both coordinates.  Band numbers come from truncating
// integer division of the fixed-point coordinate by the fixed-point step, so
// a star lying exactly on a boundary belongs to the higher band.  The same
// Cell function serves sorting and indexing, so the two can not disagree.
package grid

import (
	"fmt"
	"math"

	"github.com/soniakeys/starindex/internal/star"
)

// DefaultStep is the cell width in degrees.
const DefaultStep = 2.5

// MinStep is the narrowest cell accepted, in degrees.  It bounds the index
// at 1800 x 3600 cells.
const MinStep = .1

// Grid is the partition of the sky used for one build.
type Grid struct {
	StepMas uint32 // cell width, milli-arcseconds
	ZD, ZR  int    // number of declination and right ascension bands
}

// New returns a grid of cells step degrees wide.
func New(step float64) (Grid, error) {
	if !(step >= MinStep && step <= 180) {
		return Grid{}, fmt.Errorf("grid step %g degrees out of range [%g, 180]", step, MinStep)
	}
	m := uint32(math.Round(step * star.MasPerDeg))
	return Grid{
		StepMas: m,
		ZD:      int((star.HalfCircle + m - 1) / m),
		ZR:      int((star.FullCircle + m - 1) / m),
	}, nil
}

// Step returns the cell width in degrees.
func (g Grid) Step() float64 { return float64(g.StepMas) / star.MasPerDeg }

// Cells is the number of cells, ZD*ZR.
func (g Grid) Cells() int { return g.ZD * g.ZR }

// Bands returns the declination and right ascension band numbers of r.
func (g Grid) Bands(r star.Record) (dec, ra int) {
	return int(r.SPD / g.StepMas), int(r.RA / g.StepMas)
}

// Cell returns the cell id of r, dec*ZR + ra.
//
// A record outside the sky bounds is a programming error and panics.
func (g Grid) Cell(r star.Record) int {
	d, a := g.Bands(r)
	if d >= g.ZD || a >= g.ZR {
		panic(fmt.Sprintf("grid: record %+v outside %dx%d grid", r, g.ZD, g.ZR))
	}
	return d*g.ZR + a
}

// Center returns the center of a cell as RA and Dec in degrees.
func (g Grid) Center(cell int) (ra, dec float64) {
	d, a := cell/g.ZR, cell%g.ZR
	s := g.Step()
	ra = (float64(a) + .5) * s
	dec = (float64(d)+.5)*s - 90
	return math.Min(ra, 360), math.Min(dec, 90)
}
