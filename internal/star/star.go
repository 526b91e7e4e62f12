// Public domain.

// Package star, the catalog record and the fixed-point units it is stored in.
//
// Positions are held as unsigned milli-arcseconds.  Right ascension spans
// [0, 360°).  Declination is re-based as south polar distance, SPD = Dec+90°,
// so that it spans [0, 180°) and stays non-negative.  Proper motions are
// signed milli-arcseconds per year and magnitudes are signed milli-magnitudes.
package star

import (
	"math"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/unit"
)

const (
	MasPerDeg = 3600 * 1000

	// FullCircle is the exclusive upper bound of RA in milli-arcseconds.
	FullCircle = 360 * MasPerDeg
	// HalfCircle is the exclusive upper bound of SPD in milli-arcseconds.
	HalfCircle = 180 * MasPerDeg

	// MaxMag bounds magnitudes representable in milli-magnitudes as int16.
	MaxMag = math.MaxInt16 / 1000.
)

// Record is one catalog star.
type Record struct {
	RA    uint32 // milli-arcsec, [0, FullCircle)
	SPD   uint32 // milli-arcsec from the south celestial pole, [0, HalfCircle)
	PmRA  int32  // milli-arcsec/yr, tangential, includes the cos(Dec) factor
	PmDec int32  // milli-arcsec/yr
	Mag   int16  // milli-mag
}

// RAMas converts degrees of right ascension to milli-arcseconds,
// wrapping into [0, FullCircle).
func RAMas(deg float64) uint32 {
	m := math.Mod(math.Round(deg*MasPerDeg), FullCircle)
	if m < 0 {
		m += FullCircle
	}
	return uint32(m)
}

// SPDMas converts a declination in degrees to south polar distance in
// milli-arcseconds.  The north pole itself folds into the last representable
// milli-arcsecond.
func SPDMas(dec float64) uint32 {
	m := math.Round((dec + 90) * MasPerDeg)
	switch {
	case m < 0:
		return 0
	case m >= HalfCircle:
		return HalfCircle - 1
	}
	return uint32(m)
}

// MilliMag converts a magnitude to milli-magnitudes.
// Callers are expected to have checked the value against MaxMag.
func MilliMag(m float64) int16 {
	return int16(math.Round(m * 1000))
}

// MasPerYear converts a proper motion in milli-arcseconds per year, as
// it is printed in catalogs, to the stored integer.
func MasPerYear(pm float64) int32 {
	return int32(math.Round(pm))
}

// RADeg returns right ascension in degrees.
func (r Record) RADeg() float64 { return float64(r.RA) / MasPerDeg }

// DecDeg returns true declination in degrees.
func (r Record) DecDeg() float64 { return float64(r.SPD)/MasPerDeg - 90 }

// Magnitude returns the magnitude as a real value.
func (r Record) Magnitude() float64 { return float64(r.Mag) / 1000 }

// Equatorial returns the position as equatorial coordinates.
func (r Record) Equatorial() coord.Equatorial {
	return coord.Equatorial{
		RA:  unit.RAFromDeg(r.RADeg()),
		Dec: unit.AngleFromDeg(r.DecDeg()),
	}
}

// ProperMotion returns proper motion components as angles per year.
func (r Record) ProperMotion() (pmRA, pmDec unit.Angle) {
	return unit.AngleFromSec(float64(r.PmRA) / 1000),
		unit.AngleFromSec(float64(r.PmDec) / 1000)
}

// WithPosition returns a copy of r positioned at eq.  Only the position
// fields change.
func (r Record) WithPosition(eq coord.Equatorial) Record {
	r.RA = RAMas(eq.RA.Deg())
	r.SPD = SPDMas(eq.Dec.Deg())
	return r
}
