// Public domain.

package grid

import (
	"fmt"
	"runtime"

	"github.com/soniakeys/starindex/internal/star"
)

// Index is a CSR index over a cell-sorted record array.  Records of cell c
// occupy [Head[c], Head[c]+Count[c]).
type Index struct {
	Head, Count []uint32
}

// chunk is the least number of records counted by one goroutine.
const chunk = 1 << 16

// Build indexes sorted, which must be in the order produced by Sort.
//
// Large inputs are counted in parallel, each part into its own count array,
// and the partial counts summed before the prefix sum.
func (g Grid) Build(sorted []star.Record) Index {
	x := Index{Head: make([]uint32, g.Cells())}
	nPart := min(runtime.GOMAXPROCS(0), (len(sorted)+chunk-1)/chunk)
	if nPart <= 1 {
		x.Count = g.count(sorted)
	} else {
		cCh := make(chan []uint32)
		size := (len(sorted) + nPart - 1) / nPart
		n := 0
		for lo := 0; lo < len(sorted); lo += size {
			part := sorted[lo:min(lo+size, len(sorted))]
			go func() { cCh <- g.count(part) }()
			n++
		}
		x.Count = <-cCh
		for i := 1; i < n; i++ {
			for c, n := range <-cCh {
				x.Count[c] += n
			}
		}
	}
	var h uint32
	for c, n := range x.Count {
		x.Head[c] = h
		h += n
	}
	return x
}

func (g Grid) count(recs []star.Record) []uint32 {
	n := make([]uint32, g.Cells())
	for _, r := range recs {
		n[g.Cell(r)]++
	}
	return n
}

// Len returns the number of records indexed.
func (x Index) Len() int {
	if len(x.Head) == 0 {
		return 0
	}
	last := len(x.Head) - 1
	return int(x.Head[last] + x.Count[last])
}

// Occupied returns the number of cells holding at least one record.
func (x Index) Occupied() (n int) {
	for _, c := range x.Count {
		if c > 0 {
			n++
		}
	}
	return
}

// Verify checks x against g and the record array it indexes:
// array lengths, head[0] = 0, head[i] = head[i-1]+count[i-1],
// sum(count) = len(sorted), and that exactly the records of cell c
// lie in cell c's range.
func (g Grid) Verify(x Index, sorted []star.Record) error {
	m := g.Cells()
	if len(x.Head) != m || len(x.Count) != m {
		return fmt.Errorf("index has %d heads, %d counts; grid has %d cells",
			len(x.Head), len(x.Count), m)
	}
	var h uint64
	for c := 0; c < m; c++ {
		if uint64(x.Head[c]) != h {
			return fmt.Errorf("cell %d: head %d, want %d", c, x.Head[c], h)
		}
		h += uint64(x.Count[c])
	}
	if h != uint64(len(sorted)) {
		return fmt.Errorf("counts sum to %d, have %d records", h, len(sorted))
	}
	for c := 0; c < m; c++ {
		lo, hi := x.Head[c], x.Head[c]+x.Count[c]
		for i := lo; i < hi; i++ {
			if rc := g.Cell(sorted[i]); rc != c {
				return fmt.Errorf("record %d in range of cell %d maps to cell %d",
					i, c, rc)
			}
		}
	}
	return nil
}
