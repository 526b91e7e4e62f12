// Public domain.

// Package tycho2test builds synthetic catalog lines for tests.
package tycho2test

import (
	"fmt"
	"strings"

	"github.com/soniakeys/starindex/internal/tycho2"
)

// Star holds the printed fields of one synthetic line.  Blank strings leave
// the corresponding columns blank.
type Star struct {
	RA, Dec     string
	PmRA, PmDec string
	BT, VT      string
}

// Deg formats degrees the way the catalog prints them.
func Deg(d float64) string { return fmt.Sprintf("%12.8f", d) }

// Mag formats a magnitude the way the catalog prints it.
func Mag(m float64) string { return fmt.Sprintf("%6.3f", m) }

// PM formats a proper motion in mas/yr the way the catalog prints it.
func PM(pm float64) string { return fmt.Sprintf("%7.1f", pm) }

// Line lays s out in layout l.  For the observed primary layout the position
// flag is set.
func Line(l *tycho2.Layout, s Star) string {
	n := 207
	if l == tycho2.Supplement {
		n = 122
	}
	b := []byte(strings.Repeat(" ", n))
	copy(b, "0001 00008 1| |")
	if l == tycho2.PrimaryObserved {
		b[13] = 'X'
	}
	put := func(f tycho2.Field, v string) {
		if len(v) > f.Width {
			panic(fmt.Sprintf("%q wider than %d", v, f.Width))
		}
		copy(b[f.Off+f.Width-len(v):], v)
	}
	put(l.RA, s.RA)
	put(l.Dec, s.Dec)
	put(l.PmRA, s.PmRA)
	put(l.PmDec, s.PmDec)
	put(l.BT, s.BT)
	put(l.VT, s.VT)
	return string(b)
}
