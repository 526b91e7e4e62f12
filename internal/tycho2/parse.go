// Public domain.

// Package tycho2 reads the fixed-width text records of the Tycho-2 catalog
// (tyc2.dat.nn) and its supplement (suppl_1.dat, suppl_2.dat).
package tycho2

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/soniakeys/starindex/internal/star"
)

var (
	// ErrNoPhotometry rejects a line with neither BT nor VT.
	ErrNoPhotometry = errors.New("no usable photometry")
	// ErrShortLine rejects a line too short for its layout.
	ErrShortLine = errors.New("line too short for layout")
)

// ParseError reports an unusable field of a single line.
type ParseError struct {
	Field string
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("tycho2: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("tycho2: invalid %s (%s): %v", e.Field, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseLine parses one catalog line of variant v.
//
// Lines carry a trailing newline or not, it makes no difference.  Proper
// motion fields left blank mean zero motion.  Magnitude is derived from the
// Tycho bands, V = VT - 0.09(BT-VT), or taken from whichever band is present.
// A line with neither band is rejected with ErrNoPhotometry.
func ParseLine(line string, v Variant) (r star.Record, err error) {
	l := LayoutOf(line, v)
	if len(line) < l.MinLen() {
		return r, &ParseError{Field: l.Name, Err: ErrShortLine}
	}

	ra, ok, err := parseField(line, l.RA, "RA")
	switch {
	case err != nil:
		return r, err
	case !ok || ra < 0 || ra > 360:
		return r, &ParseError{"RA", field(line, l.RA), errRange}
	}
	dec, ok, err := parseField(line, l.Dec, "Dec")
	switch {
	case err != nil:
		return r, err
	case !ok || dec < -90 || dec > 90:
		return r, &ParseError{"Dec", field(line, l.Dec), errRange}
	}
	pmRA, _, err := parseField(line, l.PmRA, "pmRA")
	if err != nil {
		return r, err
	}
	pmDec, _, err := parseField(line, l.PmDec, "pmDec")
	if err != nil {
		return r, err
	}
	mag, err := magnitude(line, l)
	if err != nil {
		return r, err
	}

	r.RA = star.RAMas(ra)
	r.SPD = star.SPDMas(dec)
	r.PmRA = star.MasPerYear(pmRA)
	r.PmDec = star.MasPerYear(pmDec)
	r.Mag = star.MilliMag(mag)
	return r, nil
}

var errRange = errors.New("out of range")

func field(line string, f Field) string {
	return strings.TrimSpace(line[f.Off:f.end()])
}

// parseField returns ok false for a blank field.
func parseField(line string, f Field, name string) (x float64, ok bool, err error) {
	s := field(line, f)
	if s == "" {
		return 0, false, nil
	}
	x, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, &ParseError{name, s, err}
	}
	return x, true, nil
}

// VMag reduces Tycho BT and VT to an approximate Johnson V.
func VMag(bt, vt float64) float64 {
	return vt - .09*(bt-vt)
}

func magnitude(line string, l *Layout) (float64, error) {
	bt, hasBT, err := parseField(line, l.BT, "BT")
	if err != nil {
		return 0, err
	}
	vt, hasVT, err := parseField(line, l.VT, "VT")
	if err != nil {
		return 0, err
	}
	var m float64
	switch {
	case hasBT && hasVT:
		m = VMag(bt, vt)
	case hasVT:
		m = vt
	case hasBT:
		m = bt
	default:
		return 0, ErrNoPhotometry
	}
	if m <= -star.MaxMag || m >= star.MaxMag {
		return 0, &ParseError{"magnitude", strconv.FormatFloat(m, 'f', -1, 64), errRange}
	}
	return m, nil
}
