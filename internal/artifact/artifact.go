// Public domain.

// Package artifact serializes a binned catalog and its CSR index.
//
// An artifact has three sections in fixed order: metadata with comment text
// describing units and conventions, the CSR index as two parallel uint32
// arrays of ZD*ZR entries, and the records as three parallel arrays,
// RA (uint32 mas), SPD (uint32 mas) and magnitude (int16 mmag).
//
// Two styles are written.  Binary is a compact little-endian layout that
// ReadFile decodes.  FITS stores the same sections as a primary header and
// two binary table extensions for use with general astronomy tooling.
package artifact

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/soniakeys/starindex/internal/grid"
	"github.com/soniakeys/starindex/internal/star"
)

// Style selects the output encoding.
type Style int

const (
	Binary Style = 1
	FITS   Style = 2
)

func (s Style) String() string {
	switch s {
	case Binary:
		return "binary"
	case FITS:
		return "fits"
	}
	return "style(" + strconv.Itoa(int(s)) + ")"
}

// ParseStyle accepts a style name or its number.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "binary", "bin", "1":
		return Binary, nil
	case "fits", "2":
		return FITS, nil
	}
	return 0, fmt.Errorf("unknown output style %q, want binary (1) or fits (2)", s)
}

// Ext is the conventional file extension of the style.
func (s Style) Ext() string {
	if s == FITS {
		return ".fits"
	}
	return ".idx"
}

// Metadata describes how an artifact was built.
type Metadata struct {
	Catalog  string    // source catalog name
	Epoch    float64   // epoch of all positions, Julian years
	Frame    string    // frame transform applied to supplement positions
	FOV      float64   // field of view diameter the index serves, degrees
	Faint    float64   // faintest magnitude admitted
	MinStars int       // least stars per shape, excluding center and orientation
	ID       uuid.UUID // derived from content, see New
}

// Artifact is everything written to one output file.
type Artifact struct {
	Meta    Metadata
	Grid    grid.Grid
	Index   grid.Index
	Records []star.Record // in grid order
}

// idSpace scopes catalog ids.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/soniakeys/starindex"))

// New assembles an artifact and stamps it with an id computed from the grid,
// the index and the records.  Identical builds get identical ids.
func New(meta Metadata, g grid.Grid, x grid.Index, sorted []star.Record) *Artifact {
	a := &Artifact{Meta: meta, Grid: g, Index: x, Records: sorted}
	h := sha256.New()
	// hash.Hash writes never fail
	binary.Write(h, binary.LittleEndian, [3]uint32{g.StepMas, uint32(g.ZD), uint32(g.ZR)})
	writeIndex(h, x)
	writeRecords(h, sorted)
	a.Meta.ID = uuid.NewSHA1(idSpace, h.Sum(nil))
	return a
}

// Comments returns the self-describing text stored with the artifact.
func (a *Artifact) Comments() []string {
	return []string{
		fmt.Sprintf("%s star catalog binned for star pattern matching", a.Meta.Catalog),
		fmt.Sprintf("positions at epoch J%.2f", a.Meta.Epoch),
		"RA: right ascension, milli-arcsec, unsigned 32-bit",
		"SPD: south polar distance, Dec + 90 deg, NOT declination,",
		"  milli-arcsec, unsigned 32-bit",
		"MAG: V magnitude, milli-mag, signed 16-bit",
		"HEAD, COUNT: CSR index, unsigned 32-bit, one entry per grid cell,",
		"  cell = int(SPD/step)*ZR + int(RA/step)",
		fmt.Sprintf("grid step: %g deg, ZD = %d, ZR = %d", a.Grid.Step(), a.Grid.ZD, a.Grid.ZR),
	}
}
