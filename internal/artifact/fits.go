// Public domain.

package artifact

import (
	"io"

	"github.com/astrogo/fitsio"
)

// FITS has no unsigned 32-bit column type.  Unsigned values are stored the
// standard way, as signed 32-bit with TZERO = 2^31.
const uzero = 1 << 31

func offset32(u uint32) int32 { return int32(int64(u) - uzero) }

type indexRow struct {
	Head  int32 `fits:"HEAD"`
	Count int32 `fits:"COUNT"`
}

type starRow struct {
	RA  int32 `fits:"RA"`
	SPD int32 `fits:"SPD"`
	Mag int16 `fits:"MAG"`
}

// encodeFITS writes a primary HDU holding metadata and comment cards, then
// binary tables INDEX (HEAD, COUNT) and STARS (RA, SPD, MAG).
func encodeFITS(w io.Writer, a *Artifact) error {
	f, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	cards := []fitsio.Card{
		{Name: "CATALOG", Value: a.Meta.Catalog, Comment: "source catalog"},
		{Name: "CATID", Value: a.Meta.ID.String(), Comment: "content derived id"},
		{Name: "EPOCH", Value: a.Meta.Epoch, Comment: "epoch of positions, Julian years"},
		{Name: "FRAME", Value: a.Meta.Frame, Comment: "supplement frame transform"},
		{Name: "FOV", Value: a.Meta.FOV, Comment: "field of view diameter, deg"},
		{Name: "FAINT", Value: a.Meta.Faint, Comment: "faintest magnitude"},
		{Name: "MINSTARS", Value: a.Meta.MinStars, Comment: "least stars per shape"},
		{Name: "STEP", Value: a.Grid.Step(), Comment: "grid cell width, deg"},
		{Name: "ZD", Value: a.Grid.ZD, Comment: "declination bands"},
		{Name: "ZR", Value: a.Grid.ZR, Comment: "right ascension bands"},
		{Name: "NSTARS", Value: len(a.Records), Comment: "rows in STARS"},
	}
	for _, c := range a.Comments() {
		cards = append(cards, fitsio.Card{Name: "COMMENT", Comment: c})
	}
	phdu, err := fitsio.NewPrimaryHDU(fitsio.NewHeader(cards, fitsio.IMAGE_HDU, 8, []int{}))
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Write(phdu); err != nil {
		f.Close()
		return err
	}
	if err := writeIndexTable(f, a); err != nil {
		f.Close()
		return err
	}
	if err := writeStarTable(f, a); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func u32Column(name, unit string) fitsio.Column {
	return fitsio.Column{Name: name, Format: "1J", Unit: unit, Bscale: 1, Bzero: uzero}
}

func writeIndexTable(f *fitsio.File, a *Artifact) error {
	tbl, err := fitsio.NewTable("INDEX", []fitsio.Column{
		u32Column("HEAD", ""),
		u32Column("COUNT", ""),
	}, fitsio.BINARY_TBL)
	if err != nil {
		return err
	}
	defer tbl.Close()
	for c := range a.Index.Head {
		row := indexRow{offset32(a.Index.Head[c]), offset32(a.Index.Count[c])}
		if err := tbl.Write(&row); err != nil {
			return err
		}
	}
	return f.Write(tbl)
}

func writeStarTable(f *fitsio.File, a *Artifact) error {
	tbl, err := fitsio.NewTable("STARS", []fitsio.Column{
		u32Column("RA", "mas"),
		u32Column("SPD", "mas"),
		{Name: "MAG", Format: "1I", Unit: "mmag", Bscale: 1},
	}, fitsio.BINARY_TBL)
	if err != nil {
		return err
	}
	defer tbl.Close()
	for _, r := range a.Records {
		row := starRow{offset32(r.RA), offset32(r.SPD), r.Mag}
		if err := tbl.Write(&row); err != nil {
			return err
		}
	}
	return f.Write(tbl)
}
