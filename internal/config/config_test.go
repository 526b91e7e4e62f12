// Public domain.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/starindex/internal/artifact"
	"github.com/soniakeys/starindex/internal/config"
	"github.com/soniakeys/starindex/internal/epoch"
	"github.com/soniakeys/starindex/internal/tycho2"
)

func TestDefaultValid(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Catalog.Primary, 20)
	assert.Equal(t, "tyc2.dat.00", c.Catalog.Primary[0])
	assert.Equal(t, "tyc2.dat.19", c.Catalog.Primary[19])
	assert.Equal(t, 10.0, c.Index.Faint)
	assert.Equal(t, 1.0, c.Index.FOV)
	assert.Equal(t, 3, c.Index.MinStars)
	assert.Equal(t, artifact.Binary, c.Style())
	assert.Equal(t, "tycho2.idx", c.OutputPath())

	tr := c.Transformer()
	assert.Equal(t, 8.75, tr.To-tr.From)
	assert.Equal(t, epoch.Identity{}, tr.Frame)
}

func TestLoadOverDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "starindex.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
catalog:
  dir: /data/tycho2
  supplement: []
index:
  faint: 9.5
output:
  style: fits
`), 0o644))
	c, err := config.Load(p)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	want := config.Default()
	want.Catalog.Dir = "/data/tycho2"
	want.Catalog.Supplement = []string{}
	want.Index.Faint = 9.5
	want.Output.Style = "fits"
	if diff := cmp.Diff(want, c, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("loaded config (-want +got):\n%s", diff)
	}
	assert.Equal(t, "tycho2.fits", c.OutputPath())

	s := c.Shards()
	require.Len(t, s, 20)
	assert.Equal(t, filepath.Join("/data/tycho2", "tyc2.dat.07"), s[7].Path)
	assert.Equal(t, tycho2.Primary, s[7].Variant)
}

func TestSaveLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.yaml")
	c := config.Default()
	c.Epoch.Frame = epoch.FramePrecess
	c.Workers = 3
	require.NoError(t, config.Save(p, c))
	got, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Equal(t, epoch.Precession{}, got.Transformer().Frame)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.True(t, os.IsNotExist(err))

	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("index: [1, 2"), 0o644))
	_, err = config.Load(p)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	for _, c := range []struct {
		edit func(*config.Config)
		msg  string
	}{
		{func(c *config.Config) { c.Index.FOV = .05 }, "diameter of FOV"},
		{func(c *config.Config) { c.Index.FOV = 61 }, "diameter of FOV"},
		{func(c *config.Config) { c.Index.Faint = 12.5 }, "faintest magnitude"},
		{func(c *config.Config) { c.Index.MinStars = 2 }, "star number"},
		{func(c *config.Config) { c.Index.MinStars = 11 }, "star number"},
		{func(c *config.Config) { c.Index.Step = 0 }, "step"},
		{func(c *config.Config) { c.Index.Step = 1e-6 }, "step"},
		{func(c *config.Config) { c.Epoch.Frame = "fk4" }, "frame"},
		{func(c *config.Config) { c.Output.Style = "3" }, "style"},
		{func(c *config.Config) {
			c.Catalog.Primary, c.Catalog.Supplement = nil, nil
		}, "no catalog"},
		{func(c *config.Config) { c.Workers = -1 }, "workers"},
	} {
		cfg := config.Default()
		c.edit(cfg)
		err := cfg.Validate()
		require.Error(t, err, c.msg)
		assert.Contains(t, err.Error(), c.msg)
	}

	// edge values are accepted
	cfg := config.Default()
	cfg.Index.FOV, cfg.Index.Faint, cfg.Index.MinStars = 60, 5, 10
	assert.NoError(t, cfg.Validate())
}
