// Public domain.

// Package catalog loads catalog shards into a single record array.
//
// Shards are read concurrently but merged in the order given, so the result
// does not depend on scheduling.  A shard that cannot be opened or read is
// reported and skipped; the remaining shards still load.
package catalog

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/sync/errgroup"

	"github.com/soniakeys/starindex/internal/epoch"
	"github.com/soniakeys/starindex/internal/star"
	"github.com/soniakeys/starindex/internal/tycho2"
)

var log = logging.Logger("catalog")

// ErrNoRecords is returned by Load when no shard yields a record.
var ErrNoRecords = errors.New("no catalog records loaded")

// Shard is one input file.
type Shard struct {
	Path    string
	Variant tycho2.Variant
}

// Options control Load.
type Options struct {
	// Supplement moves supplement records to the epoch and frame of the
	// primary catalog.  Primary records are used as read.
	Supplement epoch.Transformer

	// Records fainter than Faint are dropped.  Zero admits everything.
	Faint float64

	// Workers bounds the shards read at once.  Zero or less means one
	// per shard.
	Workers int

	// Wrap, if not nil, wraps each opened file before decompression, for
	// example to count bytes for a progress display.
	Wrap func(io.Reader) io.Reader
}

// ShardReport describes the outcome of loading one shard.
type ShardReport struct {
	Shard
	tycho2.Stats
	Fainter int   // records dropped by the faint limit
	Err     error // open or read failure, nil on success
}

// Kept is the number of records the shard contributed.  A failed shard
// contributes none, even if some lines were read before the failure.
func (s ShardReport) Kept() int {
	if s.Err != nil {
		return 0
	}
	return s.Records - s.Fainter
}

// Report collects shard reports in shard order.
type Report []ShardReport

// Records totals the records kept from all shards.
func (r Report) Records() (n int) {
	for _, s := range r {
		n += s.Kept()
	}
	return
}

// Failed returns the reports of shards that could not be fully read.
func (r Report) Failed() (f Report) {
	for _, s := range r {
		if s.Err != nil {
			f = append(f, s)
		}
	}
	return
}

// Load reads shards and returns their records concatenated in shard order.
//
// Shard failures are recorded in the report and do not fail Load.  An error
// is returned only if ctx is done or if no records at all were loaded.
func Load(ctx context.Context, shards []Shard, opt Options) ([]star.Record, Report, error) {
	parts := make([][]star.Record, len(shards))
	rep := make(Report, len(shards))
	g, ctx := errgroup.WithContext(ctx)
	if opt.Workers > 0 {
		g.SetLimit(opt.Workers)
	}
	for i, sh := range shards {
		i, sh := i, sh
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i], rep[i] = loadShard(sh, opt)
			if err := rep[i].Err; err != nil {
				log.Warnf("%s: %v (shard skipped)", sh.Path, err)
			} else {
				log.Infof("%s: %s records from %s lines",
					sh.Path, humanize.Comma(int64(rep[i].Kept())),
					humanize.Comma(int64(rep[i].Lines)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, rep, err
	}
	n := rep.Records()
	if n == 0 {
		return nil, rep, ErrNoRecords
	}
	all := make([]star.Record, 0, n)
	for _, p := range parts {
		all = append(all, p...)
	}
	return all, rep, nil
}

// loadShard reads one shard.  On any failure no records are returned.
func loadShard(sh Shard, opt Options) ([]star.Record, ShardReport) {
	rep := ShardReport{Shard: sh}
	f, err := os.Open(sh.Path)
	if err != nil {
		rep.Err = err
		return nil, rep
	}
	defer f.Close()
	var r io.Reader = f
	if opt.Wrap != nil {
		r = opt.Wrap(r)
	}
	if strings.HasSuffix(sh.Path, ".gz") {
		zr, err := gzip.NewReader(r)
		if err != nil {
			rep.Err = fmt.Errorf("gzip: %w", err)
			return nil, rep
		}
		defer zr.Close()
		r = zr
	}
	var recs []star.Record
	faint := star.MilliMag(opt.Faint)
	rep.Stats, rep.Err = tycho2.Read(r, sh.Variant, func(rec star.Record) {
		if opt.Faint != 0 && rec.Mag > faint {
			rep.Fainter++
			return
		}
		recs = append(recs, rec)
	})
	if rep.Err != nil {
		return nil, rep
	}
	if sh.Variant == tycho2.Suppl {
		opt.Supplement.ApplyAll(recs)
	}
	if n := rep.NoPhot + rep.Malformed; n > 0 {
		log.Debugf("%s: %d lines rejected, %d without photometry",
			sh.Path, n, rep.NoPhot)
	}
	return recs, rep
}
