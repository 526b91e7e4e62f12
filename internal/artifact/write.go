// Public domain.

package artifact

import (
	"bufio"
	"fmt"
	"os"

	"github.com/facebookgo/atomicfile"
	"github.com/gofrs/flock"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("artifact")

// Error reports a failed write, naming the step that failed.
type Error struct {
	Op   string // "lock", "create", "write" or "commit"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// WriteFile writes a in the given style to path, creating or replacing it.
//
// Output goes to a temporary file in the same directory which is renamed
// over path only when everything has been written.  On any failure the
// temporary file is removed and path is left as it was.  While writing,
// path+".lock" is held so concurrent builds of one artifact fail fast.  The
// lock file is removed before WriteFile returns.
func WriteFile(path string, style Style, a *Artifact) error {
	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return &Error{"lock", path, err}
	}
	if !locked {
		return &Error{"lock", path, fmt.Errorf("held by another process")}
	}
	defer func() {
		// remove while still held, so no other writer can own the old file
		if err := os.Remove(lockPath); err != nil {
			log.Warnf("removing %s: %v", lockPath, err)
		}
		_ = lock.Unlock()
	}()

	f, err := atomicfile.New(path, 0o644)
	if err != nil {
		return &Error{"create", path, err}
	}
	bw := bufio.NewWriterSize(f, 1<<20)
	switch style {
	case Binary:
		err = encodeBinary(bw, a)
	case FITS:
		err = encodeFITS(bw, a)
	default:
		err = fmt.Errorf("unknown style %v", style)
	}
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		if aErr := f.Abort(); aErr != nil {
			log.Warnf("removing partial %s: %v", f.Name(), aErr)
		}
		return &Error{"write", path, err}
	}
	if err := f.Close(); err != nil {
		return &Error{"commit", path, err}
	}
	log.Debugf("wrote %s (%s, %d records)", path, style, len(a.Records))
	return nil
}
