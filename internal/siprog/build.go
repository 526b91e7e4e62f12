// Public domain.

package siprog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb"
	humanize "github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/soniakeys/starindex/internal/artifact"
	"github.com/soniakeys/starindex/internal/catalog"
	"github.com/soniakeys/starindex/internal/config"
	"github.com/soniakeys/starindex/internal/grid"
)

// Summary describes a completed build.
type Summary struct {
	Path     string
	Style    artifact.Style
	ID       uuid.UUID
	Report   catalog.Report
	Grid     grid.Grid
	Records  int
	Occupied int     // cells holding at least one record
	Densest  int     // most records in one cell
	MagMean  float64 // mean magnitude of kept records
	MagStd   float64
}

// Build runs the whole pipeline for cfg: load shards, sort into grid order,
// build and verify the index, and write the artifact.
//
// If progress is not nil a byte count progress bar over the input files is
// drawn on it.
func Build(ctx context.Context, cfg *config.Config, progress io.Writer) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g, err := grid.New(cfg.Index.Step)
	if err != nil {
		return nil, err
	}
	shards := cfg.Shards()
	opt := catalog.Options{
		Supplement: cfg.Transformer(),
		Faint:      cfg.Index.Faint,
		Workers:    cfg.Workers,
	}
	if progress != nil {
		bar := newBar(shards, progress)
		opt.Wrap = func(r io.Reader) io.Reader { return bar.NewProxyReader(r) }
		bar.Start()
		defer bar.Finish()
	}
	recs, rep, err := catalog.Load(ctx, shards, opt)
	if err != nil {
		for _, f := range rep.Failed() {
			log.Errorf("%s: %v", f.Path, f.Err)
		}
		return nil, err
	}
	log.Infof("loaded %s records from %d of %d files",
		humanize.Comma(int64(len(recs))), len(rep)-len(rep.Failed()), len(rep))

	sorted := g.Sort(recs)
	x := g.Build(sorted)
	if err := g.Verify(x, sorted); err != nil {
		return nil, fmt.Errorf("index verification: %w", err)
	}
	log.Infof("indexed %s cells, %s occupied",
		humanize.Comma(int64(g.Cells())), humanize.Comma(int64(x.Occupied())))

	a := artifact.New(artifact.Metadata{
		Catalog:  "Tycho-2",
		Epoch:    cfg.Epoch.Target,
		Frame:    cfg.Epoch.Frame,
		FOV:      cfg.Index.FOV,
		Faint:    cfg.Index.Faint,
		MinStars: cfg.Index.MinStars,
	}, g, x, sorted)
	path := cfg.OutputPath()
	if err := artifact.WriteFile(path, cfg.Style(), a); err != nil {
		return nil, err
	}
	if fi, err := os.Stat(path); err == nil {
		log.Infof("wrote %s, %s", path, humanize.Bytes(uint64(fi.Size())))
	}

	s := &Summary{
		Path:     path,
		Style:    cfg.Style(),
		ID:       a.Meta.ID,
		Report:   rep,
		Grid:     g,
		Records:  len(sorted),
		Occupied: x.Occupied(),
	}
	counts := make([]float64, len(x.Count))
	for i, n := range x.Count {
		counts[i] = float64(n)
	}
	s.Densest = int(floats.Max(counts))
	mags := make([]float64, len(sorted))
	for i, r := range sorted {
		mags[i] = r.Magnitude()
	}
	s.MagMean, s.MagStd = stat.MeanStdDev(mags, nil)
	return s, nil
}

// newBar sizes a bar to the total bytes of the shards that exist.
func newBar(shards []catalog.Shard, w io.Writer) *pb.ProgressBar {
	var total int64
	for _, sh := range shards {
		if fi, err := os.Stat(sh.Path); err == nil {
			total += fi.Size()
		}
	}
	bar := pb.New64(total)
	bar.SetUnits(pb.U_BYTES)
	bar.Output = w
	return bar
}

// Print writes s in a few lines of text.
func (s *Summary) Print(w io.Writer) {
	for _, r := range s.Report {
		if r.Err != nil {
			fmt.Fprintf(w, "  %-24s failed: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(w, "  %-24s %10s %-10v lines %10s kept",
			r.Path, humanize.Comma(int64(r.Lines)), r.Variant,
			humanize.Comma(int64(r.Kept())))
		if n := r.NoPhot + r.Malformed + r.Fainter; n > 0 {
			fmt.Fprintf(w, " (%d no photometry, %d malformed, %d faint)",
				r.NoPhot, r.Malformed, r.Fainter)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s stars, magnitude %.2f +/- %.2f\n",
		humanize.Comma(int64(s.Records)), s.MagMean, s.MagStd)
	fmt.Fprintf(w, "grid %g deg, %d x %d cells, %s occupied, up to %d stars per cell\n",
		s.Grid.Step(), s.Grid.ZD, s.Grid.ZR,
		humanize.Comma(int64(s.Occupied)), s.Densest)
	fmt.Fprintf(w, "%s (%s) id %s\n", s.Path, s.Style, s.ID)
}
