// Public domain.

package grid_test

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/starindex/internal/grid"
	"github.com/soniakeys/starindex/internal/star"
)

func ExampleNew() {
	g, _ := grid.New(grid.DefaultStep)
	fmt.Println(g.ZD, g.ZR, g.Cells())
	// Output:
	// 72 144 10368
}

// synthetic returns n uniformly scattered records, repeatable for a seed.
func synthetic(n int, seed uint64) []star.Record {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(seed)
	recs := make([]star.Record, n)
	for i := range recs {
		recs[i] = star.Record{
			RA:    uint32(rnd.Uint64n(star.FullCircle)),
			SPD:   uint32(rnd.Uint64n(star.HalfCircle)),
			PmRA:  int32(rnd.Intn(2001)) - 1000,
			PmDec: int32(rnd.Intn(2001)) - 1000,
			Mag:   int16(rnd.Intn(12000)),
		}
	}
	return recs
}

func TestNew(t *testing.T) {
	g, err := grid.New(7)
	require.NoError(t, err)
	assert.Equal(t, 26, g.ZD)
	assert.Equal(t, 52, g.ZR)
	assert.Equal(t, 7.0, g.Step())

	for _, bad := range []float64{0, -2.5, 180.5, 1e-6, 1.0 / star.MasPerDeg, .0999, math.NaN()} {
		_, err := grid.New(bad)
		assert.Error(t, err, "step %g", bad)
	}

	g, err = grid.New(grid.MinStep)
	require.NoError(t, err)
	assert.Equal(t, 1800*3600, g.Cells())
}

func TestBoundary(t *testing.T) {
	g, err := grid.New(2.5)
	require.NoError(t, err)
	edge := uint32(2.5 * star.MasPerDeg)

	d, a := g.Bands(star.Record{RA: edge - 1, SPD: edge - 1})
	assert.Equal(t, [2]int{0, 0}, [2]int{d, a})
	d, a = g.Bands(star.Record{RA: edge, SPD: edge})
	assert.Equal(t, [2]int{1, 1}, [2]int{d, a})

	last := star.Record{RA: star.FullCircle - 1, SPD: star.HalfCircle - 1}
	assert.Equal(t, g.Cells()-1, g.Cell(last))

	assert.Panics(t, func() { g.Cell(star.Record{SPD: star.HalfCircle}) })
	assert.Panics(t, func() { g.Cell(star.Record{RA: star.FullCircle}) })
}

func TestSortOrder(t *testing.T) {
	g, err := grid.New(2.5)
	require.NoError(t, err)
	recs := g.Sort(synthetic(5000, 1))
	for i := 1; i < len(recs); i++ {
		da, ra := g.Bands(recs[i-1])
		db, rb := g.Bands(recs[i])
		require.True(t, da < db || da == db && ra <= rb,
			"records %d, %d out of order", i-1, i)
	}
}

func TestSortDeterministic(t *testing.T) {
	g, err := grid.New(5)
	require.NoError(t, err)
	recs := synthetic(20000, 2)
	// force ties within cells, including exact duplicates
	recs = append(recs, recs[:500]...)
	want := g.Sort(slices.Clone(recs))

	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(9)
	for trial := 0; trial < 3; trial++ {
		shuffled := slices.Clone(recs)
		rnd.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		require.Equal(t, want, g.Sort(shuffled))
	}
}

func TestBuildInvariants(t *testing.T) {
	for _, c := range []struct {
		step float64
		n    int
	}{
		{2.5, 0},
		{2.5, 1},
		{2.5, 3000},
		{1, 300000}, // counted in parallel
		{180, 1000},
		{.7, 50000},
	} {
		g, err := grid.New(c.step)
		require.NoError(t, err)
		recs := g.Sort(synthetic(c.n, uint64(c.n)))
		x := g.Build(recs)

		require.NoError(t, g.Verify(x, recs), "step %g n %d", c.step, c.n)
		assert.Equal(t, c.n, x.Len())

		var sum int
		for i, n := range x.Count {
			if i > 0 {
				require.Equal(t, x.Head[i-1]+x.Count[i-1], x.Head[i])
			}
			sum += int(n)
		}
		assert.Equal(t, c.n, sum)
		require.Zero(t, x.Head[0])

		for cell := range x.Count {
			for _, r := range recs[x.Head[cell] : x.Head[cell]+x.Count[cell]] {
				require.Equal(t, cell, g.Cell(r))
			}
		}
	}
}

func TestEmptyCellsCarryOffset(t *testing.T) {
	g, err := grid.New(90)
	require.NoError(t, err) // 2 x 4 cells
	recs := g.Sort([]star.Record{
		{RA: star.RAMas(300), SPD: star.SPDMas(10)}, // cell 7
		{RA: star.RAMas(10), SPD: star.SPDMas(-10)}, // cell 0
		{RA: star.RAMas(20), SPD: star.SPDMas(-20)}, // cell 0
	})
	x := g.Build(recs)
	assert.Equal(t, []uint32{2, 0, 0, 0, 0, 0, 0, 1}, x.Count)
	assert.Equal(t, []uint32{0, 2, 2, 2, 2, 2, 2, 2}, x.Head)
	assert.Equal(t, 2, x.Occupied())
}

func TestVerifyDetects(t *testing.T) {
	g, err := grid.New(10)
	require.NoError(t, err)
	recs := g.Sort(synthetic(2000, 3))
	x := g.Build(recs)

	bad := grid.Index{Head: slices.Clone(x.Head), Count: slices.Clone(x.Count)}
	bad.Head[5]++
	assert.Error(t, g.Verify(bad, recs), "head drift")

	bad = grid.Index{Head: x.Head, Count: x.Count[1:]}
	assert.Error(t, g.Verify(bad, recs), "short count")

	assert.Error(t, g.Verify(x, recs[1:]), "missing record")

	unsorted := slices.Clone(recs)
	unsorted[0], unsorted[len(unsorted)-1] = unsorted[len(unsorted)-1], unsorted[0]
	assert.Error(t, g.Verify(x, unsorted), "misplaced record")
}
