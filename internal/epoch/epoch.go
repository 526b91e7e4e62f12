// Public domain.

// Package epoch carries catalog positions from their catalog epoch to a
// reference epoch.
//
// Elapsed time is t = To - From, in Julian years, so that proper motion is
// added going forward in time.  The motion in right ascension is divided by
// cos(Dec) since catalogs give it as a tangential rate.  Once moved, a
// position is passed through a Frame, which is where precession or any other
// change of reference frame is applied.
package epoch

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/precess"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/starindex/internal/star"
)

// Frame maps a position referred to one epoch to another.
type Frame interface {
	Transform(eq coord.Equatorial, epochFrom, epochTo float64) coord.Equatorial
}

// Identity leaves positions alone.  It is correct for catalogs such as
// Tycho-2 whose positions at every epoch are already on the ICRS.
type Identity struct{}

func (Identity) Transform(eq coord.Equatorial, _, _ float64) coord.Equatorial {
	return eq
}

// Precession precesses equatorial coordinates between the mean equinoxes
// of the two epochs.
type Precession struct{}

func (Precession) Transform(eq coord.Equatorial, epochFrom, epochTo float64) coord.Equatorial {
	if epochFrom == epochTo {
		return eq
	}
	var out coord.Equatorial
	precess.NewPrecessor(epochFrom, epochTo).Precess(&eq, &out)
	return out
}

// Frame names accepted by FrameByName.
const (
	FrameICRS    = "icrs"
	FramePrecess = "precess"
)

// FrameByName returns the Frame for a configuration name.
func FrameByName(name string) (Frame, error) {
	switch name {
	case FrameICRS, "":
		return Identity{}, nil
	case FramePrecess:
		return Precession{}, nil
	}
	return nil, fmt.Errorf("unknown frame %q", name)
}

// Transformer moves records from epoch From to epoch To.
type Transformer struct {
	From, To float64 // Julian years, e.g. 1991.25, 2000.0
	Frame    Frame   // nil means Identity
}

// Move applies proper motion over time t, in years, to eq.
func Move(eq coord.Equatorial, pmRA, pmDec unit.Angle, t float64) coord.Equatorial {
	ra := eq.RA.Rad()
	dec := eq.Dec.Rad() + pmDec.Rad()*t
	if c := eq.Dec.Cos(); c > 1e-12 {
		ra += pmRA.Rad() * t / c
	}
	// carried over a pole
	switch {
	case dec > math.Pi/2:
		dec = math.Pi - dec
		ra += math.Pi
	case dec < -math.Pi/2:
		dec = -math.Pi - dec
		ra += math.Pi
	}
	return coord.Equatorial{RA: unit.RAFromRad(ra), Dec: unit.Angle(dec)}
}

// Propagate applies proper motion only, leaving the frame alone.
func (tr Transformer) Propagate(r star.Record) star.Record {
	t := tr.To - tr.From
	if t == 0 || (r.PmRA == 0 && r.PmDec == 0) {
		return r
	}
	pmRA, pmDec := r.ProperMotion()
	return r.WithPosition(Move(r.Equatorial(), pmRA, pmDec, t))
}

// Apply propagates r and then transforms it to the target frame.
func (tr Transformer) Apply(r star.Record) star.Record {
	r = tr.Propagate(r)
	f := tr.Frame
	if f == nil {
		return r
	}
	if _, ok := f.(Identity); ok {
		return r
	}
	return r.WithPosition(f.Transform(r.Equatorial(), tr.From, tr.To))
}

// ApplyAll transforms recs in place and returns them.
func (tr Transformer) ApplyAll(recs []star.Record) []star.Record {
	for i := range recs {
		recs[i] = tr.Apply(recs[i])
	}
	return recs
}
