// Public domain.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/starindex/internal/artifact"
	"github.com/soniakeys/starindex/internal/grid"
	"github.com/soniakeys/starindex/internal/star"
)

func writeSample(t *testing.T, style artifact.Style) string {
	t.Helper()
	g, err := grid.New(10)
	require.NoError(t, err)
	recs := g.Sort([]star.Record{
		{RA: star.RAMas(101.2875), SPD: star.SPDMas(-16.7161), Mag: -1460}, // Sirius
		{RA: star.RAMas(101), SPD: star.SPDMas(-15), Mag: 8200},
		{RA: star.RAMas(105), SPD: star.SPDMas(-12), Mag: 9100},
		{RA: star.RAMas(279.23), SPD: star.SPDMas(38.78), Mag: 30},
	})
	a := artifact.New(artifact.Metadata{
		Catalog: "Tycho-2", Epoch: 2000, Frame: "icrs",
		FOV: 1, Faint: 12, MinStars: 3,
	}, g, g.Build(recs), recs)
	path := filepath.Join(t.TempDir(), "cat"+style.Ext())
	require.NoError(t, artifact.WriteFile(path, style, a))
	return path
}

func TestCompute(t *testing.T) {
	a, err := artifact.ReadFile(writeSample(t, artifact.Binary))
	require.NoError(t, err)
	s := compute(a)
	assert.Equal(t, 4, s.stars)
	assert.Equal(t, int16(-1460), s.brightest.Mag)
	assert.Equal(t, 2, s.occupied)
	assert.Equal(t, 3, s.densestN)
	assert.Equal(t, 2.0, s.perCell)
	assert.Equal(t, a.Grid.Cell(s.brightest), s.densest)
	assert.Equal(t, -2, s.histLo)
	// -1.46, 0.03, 8.2, 9.1
	assert.Equal(t, []float64{1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 1}, s.hist)
}

func TestCommand(t *testing.T) {
	cmd := newCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--hist", writeSample(t, artifact.Binary)})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Stars:           4\n")
	assert.Contains(t, out.String(), "Occupied cells:  2 ")
	assert.Contains(t, out.String(), "Tycho-2 J2000.00, frame icrs")
}

func TestCommandRejects(t *testing.T) {
	cmd := newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{writeSample(t, artifact.FITS)})
	assert.ErrorIs(t, cmd.Execute(), artifact.ErrFormat)

	// counts out of step with the heads, total unchanged
	path := writeSample(t, artifact.Binary)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	a, err := artifact.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	c := a.Grid.Cell(star.Record{RA: star.RAMas(101), SPD: star.SPDMas(-15)})
	a.Index.Count[c]--
	a.Index.Count[c+1]++
	bad := filepath.Join(t.TempDir(), "bad.idx")
	require.NoError(t, artifact.WriteFile(bad, artifact.Binary, a))

	cmd = newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{bad})
	assert.ErrorContains(t, cmd.Execute(), "bad index")
}
