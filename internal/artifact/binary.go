// Public domain.

package artifact

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/soniakeys/starindex/internal/grid"
	"github.com/soniakeys/starindex/internal/star"
)

// Magic opens every binary style artifact.
const Magic = "STARIDX\n"

// Version of the binary layout.
const Version = 1

var le = binary.LittleEndian

// header is the fixed-size part of the metadata section.
type header struct {
	Version  uint32
	StepMas  uint32
	ZD, ZR   uint32
	NRecords uint32
	MinStars uint32
	Epoch    float64
	FOV      float64
	Faint    float64
	ID       [16]byte
}

// encodeBinary writes the binary style.
//
//	magic    [8]byte
//	header   see type header
//	catalog  uint32 length, bytes
//	frame    uint32 length, bytes
//	comments uint32 length, bytes (lines joined by \n)
//	head     [ZD*ZR]uint32
//	count    [ZD*ZR]uint32
//	ra       [n]uint32
//	spd      [n]uint32
//	mag      [n]int16
func encodeBinary(w io.Writer, a *Artifact) error {
	if uint64(len(a.Records)) > math.MaxUint32 {
		return fmt.Errorf("%d records overflow uint32", len(a.Records))
	}
	hd := header{
		Version:  Version,
		StepMas:  a.Grid.StepMas,
		ZD:       uint32(a.Grid.ZD),
		ZR:       uint32(a.Grid.ZR),
		NRecords: uint32(len(a.Records)),
		MinStars: uint32(a.Meta.MinStars),
		Epoch:    a.Meta.Epoch,
		FOV:      a.Meta.FOV,
		Faint:    a.Meta.Faint,
		ID:       a.Meta.ID,
	}
	if _, err := io.WriteString(w, Magic); err != nil {
		return err
	}
	if err := binary.Write(w, le, &hd); err != nil {
		return err
	}
	for _, s := range []string{a.Meta.Catalog, a.Meta.Frame,
		strings.Join(a.Comments(), "\n")} {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	if err := writeIndex(w, a.Index); err != nil {
		return err
	}
	return writeRecords(w, a.Records)
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, le, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeIndex(w io.Writer, x grid.Index) error {
	if err := binary.Write(w, le, x.Head); err != nil {
		return err
	}
	return binary.Write(w, le, x.Count)
}

// records are written a block at a time to keep the buffer small.
const block = 4096

func writeRecords(w io.Writer, recs []star.Record) error {
	buf := make([]byte, 4*block)
	col := func(size int, put func(b []byte, r star.Record)) error {
		for lo := 0; lo < len(recs); lo += block {
			part := recs[lo:min(lo+block, len(recs))]
			b := buf[:size*len(part)]
			for i, r := range part {
				put(b[i*size:], r)
			}
			if _, err := w.Write(b); err != nil {
				return err
			}
		}
		return nil
	}
	if err := col(4, func(b []byte, r star.Record) { le.PutUint32(b, r.RA) }); err != nil {
		return err
	}
	if err := col(4, func(b []byte, r star.Record) { le.PutUint32(b, r.SPD) }); err != nil {
		return err
	}
	return col(2, func(b []byte, r star.Record) { le.PutUint16(b, uint16(r.Mag)) })
}

// ErrFormat reports input that is not a binary style artifact.
var ErrFormat = errors.New("not a binary star index")

// Decode reads a binary style artifact.  Proper motions are not stored, so
// decoded records have zero motion.
func Decode(r io.Reader) (*Artifact, error) {
	var m [len(Magic)]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if string(m[:]) != Magic {
		return nil, ErrFormat
	}
	var hd header
	if err := binary.Read(r, le, &hd); err != nil {
		return nil, err
	}
	if hd.Version != Version {
		return nil, fmt.Errorf("%w: version %d", ErrFormat, hd.Version)
	}
	g := grid.Grid{StepMas: hd.StepMas, ZD: int(hd.ZD), ZR: int(hd.ZR)}
	if want, err := grid.New(g.Step()); err != nil || want != g {
		return nil, fmt.Errorf("%w: inconsistent grid %+v", ErrFormat, g)
	}
	a := &Artifact{
		Meta: Metadata{
			Epoch:    hd.Epoch,
			FOV:      hd.FOV,
			Faint:    hd.Faint,
			MinStars: int(hd.MinStars),
			ID:       hd.ID,
		},
		Grid: g,
	}
	var err error
	if a.Meta.Catalog, err = readString(r); err != nil {
		return nil, err
	}
	if a.Meta.Frame, err = readString(r); err != nil {
		return nil, err
	}
	if _, err = readString(r); err != nil { // comments, regenerated on demand
		return nil, err
	}
	a.Index = grid.Index{
		Head:  make([]uint32, g.Cells()),
		Count: make([]uint32, g.Cells()),
	}
	if err := binary.Read(r, le, a.Index.Head); err != nil {
		return nil, err
	}
	if err := binary.Read(r, le, a.Index.Count); err != nil {
		return nil, err
	}
	if n := a.Index.Len(); n != int(hd.NRecords) {
		return nil, fmt.Errorf("%w: index covers %d records, header says %d",
			ErrFormat, n, hd.NRecords)
	}
	a.Records = make([]star.Record, hd.NRecords)
	if err := readColumn(r, a.Records, 4, func(rec *star.Record, b []byte) {
		rec.RA = le.Uint32(b)
	}); err != nil {
		return nil, err
	}
	if err := readColumn(r, a.Records, 4, func(rec *star.Record, b []byte) {
		rec.SPD = le.Uint32(b)
	}); err != nil {
		return nil, err
	}
	if err := readColumn(r, a.Records, 2, func(rec *star.Record, b []byte) {
		rec.Mag = int16(le.Uint16(b))
	}); err != nil {
		return nil, err
	}
	for i, rec := range a.Records {
		if rec.RA >= star.FullCircle || rec.SPD >= star.HalfCircle {
			return nil, fmt.Errorf("%w: record %d position out of range", ErrFormat, i)
		}
	}
	return a, nil
}

// maxString bounds the text fields accepted by Decode.
const maxString = 1 << 20

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, le, &n); err != nil {
		return "", err
	}
	if n > maxString {
		return "", fmt.Errorf("%w: string length %d", ErrFormat, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func readColumn(r io.Reader, recs []star.Record, size int, get func(*star.Record, []byte)) error {
	buf := make([]byte, size*block)
	for lo := 0; lo < len(recs); lo += block {
		part := recs[lo:min(lo+block, len(recs))]
		b := buf[:size*len(part)]
		if _, err := io.ReadFull(r, b); err != nil {
			return err
		}
		for i := range part {
			get(&part[i], b[i*size:])
		}
	}
	return nil
}

// ReadFile reads a binary style artifact from a file.
func ReadFile(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := Decode(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
