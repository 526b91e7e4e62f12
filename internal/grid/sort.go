// Public domain.

package grid

import (
	"cmp"
	"slices"

	"github.com/soniakeys/starindex/internal/star"
)

// Compare orders records by declination band, then right ascension band.
//
// Within a cell the order falls back on the record fields, so that the
// order is total and builds from identical input are byte identical.
func (g Grid) Compare(a, b star.Record) int {
	ad, ar := g.Bands(a)
	bd, br := g.Bands(b)
	if c := cmp.Compare(ad, bd); c != 0 {
		return c
	}
	if c := cmp.Compare(ar, br); c != 0 {
		return c
	}
	if c := cmp.Compare(a.RA, b.RA); c != 0 {
		return c
	}
	if c := cmp.Compare(a.SPD, b.SPD); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Mag, b.Mag); c != 0 {
		return c
	}
	if c := cmp.Compare(a.PmRA, b.PmRA); c != 0 {
		return c
	}
	return cmp.Compare(a.PmDec, b.PmDec)
}

// Sort orders recs in place by cell and returns them.
func (g Grid) Sort(recs []star.Record) []star.Record {
	slices.SortFunc(recs, g.Compare)
	return recs
}
