// Public domain.

package tycho2

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/soniakeys/starindex/internal/star"
)

// Stats tallies the lines of one input stream.
type Stats struct {
	Lines     int // non-blank lines read
	Records   int // lines yielding a record
	NoPhot    int // lines rejected for missing photometry
	Malformed int // lines rejected for any other parse error
}

// Read parses each line of r as variant v and passes records to fn.
//
// Parse errors are not fatal.  The offending line is counted and dropped,
// and reading continues.  The returned error is only ever a read error from r.
func Read(r io.Reader, v Variant, fn func(star.Record)) (s Stats, err error) {
	bf := bufio.NewReaderSize(r, 1<<16)
	for {
		line, rErr := bf.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if len(line) > 0 {
			s.Lines++
			rec, pErr := ParseLine(line, v)
			switch {
			case pErr == nil:
				s.Records++
				fn(rec)
			case errors.Is(pErr, ErrNoPhotometry):
				s.NoPhot++
			default:
				s.Malformed++
			}
		}
		switch rErr {
		case nil:
		case io.EOF:
			return s, nil
		default:
			return s, rErr
		}
	}
}
