package naming

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"clipbatch/internal/errlog"
	"clipbatch/internal/timecode"
)

// maxSequence is the last usable sequence number; the template reserves four
// digits.
const maxSequence = 9999

// Request describes the templated parts of an output name.
type Request struct {
	OutputDir string // empty means current directory
	Prefix    string // optional, joined to the base name with a space
	BaseName  string // source file name without its final extension
	Ext       string // including the dot; empty for extension-less outputs
}

// Allocator hands out collision-free names. The zero value is not usable;
// construct with NewAllocator. It is owned by the single execution thread,
// so no locking is carried.
type Allocator struct {
	next int
}

// NewAllocator returns an Allocator whose sequence starts at 0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next exposes the current sequence floor.
func (a *Allocator) Next() int {
	return a.next
}

// AllocateVideo reserves a name for a trimmed output video.
func (a *Allocator) AllocateVideo(req Request) (string, error) {
	return a.allocate(func(seq int) string {
		return fmt.Sprintf("%s %04d%s", req.stem(), seq, req.Ext)
	})
}

// AllocateImage reserves a name for a snapshot at timeRef. When the numeric
// space is exhausted a single randomized fallback name is attempted before
// giving up on this one request.
func (a *Allocator) AllocateImage(req Request, timeRef string) (string, error) {
	stamp := timecode.ForFileName(timeRef)
	path, err := a.allocate(func(seq int) string {
		return fmt.Sprintf("%s %04d %s.jpg", req.stem(), seq, stamp)
	})
	if err == nil || !errors.Is(err, errlog.ErrSequenceExhausted) {
		return path, err
	}

	fallback := fmt.Sprintf("%s %s %s.jpg", req.stem(), uuid.NewString(), stamp)
	ok, probeErr := reserve(fallback)
	if probeErr != nil || !ok {
		return "", fmt.Errorf("%w: image name fallback %q unusable", errlog.ErrSequenceExhausted, filepath.Base(fallback))
	}
	return fallback, nil
}

func (req Request) stem() string {
	name := req.BaseName
	if req.Prefix != "" {
		name = req.Prefix + " " + name
	}
	return filepath.Join(req.OutputDir, name)
}

// allocate walks the sequence space from the shared floor upward. A later
// allocation never receives a lower number than an earlier one: the floor
// moves past each number handed out, which also keeps colliding templated
// bases distinct within one run even though the probe file is removed.
func (a *Allocator) allocate(candidate func(seq int) string) (string, error) {
	for seq := a.next; seq <= maxSequence; seq++ {
		path := candidate(seq)
		ok, err := reserve(path)
		if err != nil {
			return "", fmt.Errorf("%w: probe %s: %v", errlog.ErrDirectory, path, err)
		}
		if !ok {
			continue
		}
		a.next = seq + 1
		return path, nil
	}
	return "", fmt.Errorf("%w: no free sequence number below %04d", errlog.ErrSequenceExhausted, maxSequence+1)
}

// reserve performs the zero-byte existence+writability probe. It returns
// false when the name is already taken.
func reserve(path string) (bool, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	_ = file.Close()
	_ = os.Remove(path)
	return true, nil
}
