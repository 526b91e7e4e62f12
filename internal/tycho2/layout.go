// Public domain.

package tycho2

// Field locates a fixed-width column: a zero-based byte offset and a width.
type Field struct {
	Off, Width int
}

func (f Field) end() int { return f.Off + f.Width }

// Layout is the column schema of one record layout.
type Layout struct {
	Name        string
	RA, Dec     Field // degrees
	PmRA, PmDec Field // mas/yr
	BT, VT      Field // Tycho photometric bands
	minLen      int
}

func newLayout(name string, ra, dec, pmRA, pmDec, bt, vt Field) *Layout {
	l := &Layout{Name: name, RA: ra, Dec: dec, PmRA: pmRA, PmDec: pmDec,
		BT: bt, VT: vt}
	for _, f := range []Field{ra, dec, pmRA, pmDec, bt, vt} {
		if e := f.end(); e > l.minLen {
			l.minLen = e
		}
	}
	return l
}

// MinLen is the shortest line that holds every field of the layout.
func (l *Layout) MinLen() int { return l.minLen }

// markerOff holds the primary catalog's position flag.  A blank there means
// the mean J2000 position columns are filled; anything else means only the
// observed position columns are.
const markerOff = 13

// Record layouts of tyc2.dat and suppl_1.dat.
var (
	PrimaryMean = newLayout("tyc2 mean",
		Field{15, 12}, Field{28, 12},
		Field{41, 7}, Field{49, 7},
		Field{110, 6}, Field{123, 6})
	PrimaryObserved = newLayout("tyc2 observed",
		Field{152, 12}, Field{165, 12},
		Field{41, 7}, Field{49, 7},
		Field{110, 6}, Field{123, 6})
	Supplement = newLayout("suppl",
		Field{15, 12}, Field{28, 12},
		Field{41, 7}, Field{49, 7},
		Field{83, 6}, Field{96, 6})
)

// Variant identifies which catalog a line comes from.
type Variant int

const (
	Primary Variant = iota
	Suppl
)

func (v Variant) String() string {
	if v == Suppl {
		return "supplement"
	}
	return "primary"
}

// LayoutOf selects the layout for a line of variant v.
func LayoutOf(line string, v Variant) *Layout {
	if v == Suppl {
		return Supplement
	}
	if len(line) > markerOff && line[markerOff] != ' ' {
		return PrimaryObserved
	}
	return PrimaryMean
}
