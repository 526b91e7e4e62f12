// Public domain.

// Package config holds the settings of an index build.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/soniakeys/starindex/internal/artifact"
	"github.com/soniakeys/starindex/internal/catalog"
	"github.com/soniakeys/starindex/internal/epoch"
	"github.com/soniakeys/starindex/internal/grid"
	"github.com/soniakeys/starindex/internal/tycho2"
)

// Config is the complete build configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Index   IndexConfig   `yaml:"index"`
	Epoch   EpochConfig   `yaml:"epoch"`
	Output  OutputConfig  `yaml:"output"`
	Workers int           `yaml:"workers"` // shards loaded at once
}

// CatalogConfig names the input shards.  Relative names are taken from Dir.
type CatalogConfig struct {
	Dir        string   `yaml:"dir"`
	Primary    []string `yaml:"primary"`
	Supplement []string `yaml:"supplement"`
}

// IndexConfig shapes the index.
type IndexConfig struct {
	FOV      float64 `yaml:"fov"`       // field of view diameter, degrees
	Faint    float64 `yaml:"faint"`     // faintest magnitude kept
	MinStars int     `yaml:"min_stars"` // least stars per shape
	Step     float64 `yaml:"step"`      // grid cell width, degrees
}

// EpochConfig moves supplement positions to the epoch of the primary.
type EpochConfig struct {
	Supplement float64 `yaml:"supplement"` // epoch of supplement positions
	Target     float64 `yaml:"target"`
	Frame      string  `yaml:"frame"` // "icrs" or "precess"
}

// OutputConfig places the artifact.
type OutputConfig struct {
	Path  string `yaml:"path"`  // empty for tycho2 plus the style extension
	Style string `yaml:"style"` // "binary" or "fits", or 1 or 2
}

// Default returns the configuration used when nothing is specified.
func Default() *Config {
	primary := make([]string, 20)
	for i := range primary {
		primary[i] = fmt.Sprintf("tyc2.dat.%02d", i)
	}
	return &Config{
		Catalog: CatalogConfig{
			Dir:        ".",
			Primary:    primary,
			Supplement: []string{"suppl_1.dat", "suppl_2.dat"},
		},
		Index: IndexConfig{
			FOV:      1,
			Faint:    10,
			MinStars: 3,
			Step:     grid.DefaultStep,
		},
		Epoch: EpochConfig{
			Supplement: 1991.25,
			Target:     2000,
			Frame:      epoch.FrameICRS,
		},
		Output:  OutputConfig{Style: "binary"},
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Load reads a YAML file over the defaults.  Settings absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks every setting and reports all problems found.
func (c *Config) Validate() error {
	var errs []error
	if c.Index.FOV < .1 || c.Index.FOV > 60 {
		errs = append(errs, errors.New("the diameter of FOV should be between 0.1 and 60 degrees"))
	}
	if c.Index.Faint < 5 || c.Index.Faint > 12 {
		errs = append(errs, errors.New("the faintest magnitude should be between 5.0 and 12.0"))
	}
	if c.Index.MinStars < 3 || c.Index.MinStars > 10 {
		errs = append(errs, errors.New("the star number in any shape should be between 3 and 10"))
	}
	if _, err := grid.New(c.Index.Step); err != nil {
		errs = append(errs, err)
	}
	if _, err := epoch.FrameByName(c.Epoch.Frame); err != nil {
		errs = append(errs, err)
	}
	if _, err := artifact.ParseStyle(c.Output.Style); err != nil {
		errs = append(errs, err)
	}
	if len(c.Catalog.Primary)+len(c.Catalog.Supplement) == 0 {
		errs = append(errs, errors.New("no catalog files"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d should not be negative", c.Workers))
	}
	return errors.Join(errs...)
}

// Shards lists the input files, primary first.
func (c *Config) Shards() []catalog.Shard {
	var s []catalog.Shard
	add := func(names []string, v tycho2.Variant) {
		for _, n := range names {
			if !filepath.IsAbs(n) {
				n = filepath.Join(c.Catalog.Dir, n)
			}
			s = append(s, catalog.Shard{Path: n, Variant: v})
		}
	}
	add(c.Catalog.Primary, tycho2.Primary)
	add(c.Catalog.Supplement, tycho2.Suppl)
	return s
}

// Style returns the parsed output style.  Call after Validate.
func (c *Config) Style() artifact.Style {
	s, _ := artifact.ParseStyle(c.Output.Style)
	return s
}

// OutputPath returns the artifact path, defaulted by style.
func (c *Config) OutputPath() string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	return "tycho2" + c.Style().Ext()
}

// Transformer returns the supplement epoch transform.  Call after Validate.
func (c *Config) Transformer() epoch.Transformer {
	f, _ := epoch.FrameByName(c.Epoch.Frame)
	return epoch.Transformer{From: c.Epoch.Supplement, To: c.Epoch.Target, Frame: f}
}
