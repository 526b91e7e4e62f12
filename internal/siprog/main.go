// Public domain.

// Package siprog is the body of the starindex command.
package siprog

import (
	"context"
	"io"
	"os"
	"os/signal"

	logging "github.com/ipfs/go-log/v2"
	"github.com/soniakeys/exit"
	"github.com/spf13/cobra"

	"github.com/soniakeys/starindex/internal/config"
)

const versionString = "0.1"

var log = logging.Logger("starindex")

func Main() {
	defer exit.Handler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := NewCommand().ExecuteContext(ctx); err != nil {
		exit.Log(err)
	}
}

// flags not stored directly in a config.Config
type cmdLine struct {
	configPath string
	progress   bool
	debug      bool
}

// NewCommand returns the root command.  Flags override the config file
// only when given explicitly.
func NewCommand() *cobra.Command {
	var cl cmdLine
	fc := config.Default() // receives flag values

	cmd := &cobra.Command{
		Use:   "starindex",
		Short: "Bin the Tycho-2 catalog into a sky grid index",
		Long: `starindex reads the Tycho-2 main catalog and supplement 1, moves
supplement positions to the catalog epoch, sorts stars into a uniform grid
of right ascension and declination cells, and writes the stars with a
per-cell index for star pattern matching.`,
		Version:       versionString,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cl.debug {
				logging.SetAllLoggers(logging.LevelDebug)
			} else {
				logging.SetAllLoggers(logging.LevelInfo)
			}
			cfg := config.Default()
			if cl.configPath != "" {
				var err error
				if cfg, err = config.Load(cl.configPath); err != nil {
					return err
				}
			}
			override(cmd, cfg, fc)

			var progress io.Writer
			if cl.progress {
				progress = os.Stderr
			}
			s, err := Build(cmd.Context(), cfg, progress)
			if err != nil {
				return err
			}
			s.Print(cmd.OutOrStdout())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cl.configPath, "config", "c", "", "YAML configuration file")
	f.BoolVar(&cl.progress, "progress", false, "show a progress bar on stderr")
	f.BoolVar(&cl.debug, "debug", false, "debug logging")

	f.StringVar(&fc.Catalog.Dir, "dir", fc.Catalog.Dir, "directory of catalog files")
	f.Float64VarP(&fc.Index.FOV, "fov", "F", fc.Index.FOV, "field of view diameter, degrees, 0.1 to 60")
	f.Float64VarP(&fc.Index.Faint, "mag", "M", fc.Index.Faint, "faintest magnitude, 5.0 to 12.0")
	f.IntVarP(&fc.Index.MinStars, "num", "N", fc.Index.MinStars, "stars in any shape, 3 to 10")
	f.Float64Var(&fc.Index.Step, "step", fc.Index.Step, "grid cell width, degrees, 0.1 to 180")
	f.StringVar(&fc.Epoch.Frame, "frame", fc.Epoch.Frame, "supplement frame transform, icrs or precess")
	f.StringVarP(&fc.Output.Style, "style", "S", fc.Output.Style, "output style, binary (1) or fits (2)")
	f.StringVarP(&fc.Output.Path, "output", "o", "", "output file (default tycho2.idx or tycho2.fits)")
	f.IntVar(&fc.Workers, "workers", fc.Workers, "catalog files read at once")
	return cmd
}

// override copies explicitly set flags from fc to cfg.
func override(cmd *cobra.Command, cfg, fc *config.Config) {
	set := cmd.Flags().Changed
	if set("dir") {
		cfg.Catalog.Dir = fc.Catalog.Dir
	}
	if set("fov") {
		cfg.Index.FOV = fc.Index.FOV
	}
	if set("mag") {
		cfg.Index.Faint = fc.Index.Faint
	}
	if set("num") {
		cfg.Index.MinStars = fc.Index.MinStars
	}
	if set("step") {
		cfg.Index.Step = fc.Index.Step
	}
	if set("frame") {
		cfg.Epoch.Frame = fc.Epoch.Frame
	}
	if set("style") {
		cfg.Output.Style = fc.Output.Style
	}
	if set("output") {
		cfg.Output.Path = fc.Output.Path
	}
	if set("workers") {
		cfg.Workers = fc.Workers
	}
}
