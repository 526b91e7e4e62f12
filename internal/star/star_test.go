// Public domain.

package star_test

import (
	"fmt"
	"testing"

	"github.com/soniakeys/starindex/internal/star"
)

func ExampleRecord_DecDeg() {
	r := star.Record{RA: star.RAMas(10.5), SPD: star.SPDMas(-30.25)}
	fmt.Println(r.RA, r.SPD)
	fmt.Println(r.RADeg(), r.DecDeg())
	// Output:
	// 37800000 215100000
	// 10.5 -30.25
}

func TestRoundTrip(t *testing.T) {
	for _, m := range []uint32{0, 1, 2, 999, 123456789, star.HalfCircle - 1,
		star.FullCircle - 1} {
		if got := star.RAMas(float64(m) / star.MasPerDeg); got != m {
			t.Errorf("RA %d round trips to %d", m, got)
		}
		if m >= star.HalfCircle {
			continue
		}
		r := star.Record{SPD: m}
		if got := star.SPDMas(r.DecDeg()); got != m {
			t.Errorf("SPD %d round trips to %d", m, got)
		}
	}
}

func TestEquatorialRoundTrip(t *testing.T) {
	r := star.Record{RA: 970027470, SPD: 340896207, PmRA: -798, PmDec: 10327}
	if got := r.WithPosition(r.Equatorial()); got != r {
		t.Fatalf("got %+v, want %+v", got, r)
	}
}

func TestBounds(t *testing.T) {
	cases := []struct {
		ra, dec      float64
		wantRA, wSPD uint32
	}{
		{360, 0, 0, 90 * star.MasPerDeg},
		{-1, -90, 359 * star.MasPerDeg, 0},
		{720.5, 90, star.RAMas(.5), star.HalfCircle - 1},
		{0, -91, 0, 0},
	}
	for _, c := range cases {
		if got := star.RAMas(c.ra); got != c.wantRA {
			t.Errorf("RAMas(%g) = %d, want %d", c.ra, got, c.wantRA)
		}
		if got := star.SPDMas(c.dec); got != c.wSPD {
			t.Errorf("SPDMas(%g) = %d, want %d", c.dec, got, c.wSPD)
		}
	}
}

func TestMilliMag(t *testing.T) {
	if m := star.MilliMag(9.455); m != 9455 {
		t.Fatal(m)
	}
	if m := star.MilliMag(-1.46); m != -1460 {
		t.Fatal(m)
	}
}
