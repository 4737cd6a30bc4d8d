package plan

import (
	"errors"
	"fmt"
	"os"

	"clipbatch/internal/errlog"
)

// ensureSourceDir verifies a source-dir directive points at a directory.
func ensureSourceDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: source directory %s: %v", errlog.ErrDirectory, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: source directory %s is not a directory", errlog.ErrDirectory, dir)
	}
	return nil
}

// ensureOutputDir makes an output-dir directive usable: a missing directory
// is created (and reported as created so an empty one can be cleaned up
// later), an existing non-writable one gets its write bit added.
func ensureOutputDir(dir string) (created bool, err error) {
	info, statErr := os.Stat(dir)
	switch {
	case errors.Is(statErr, os.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("%w: create output directory %s: %v", errlog.ErrDirectory, dir, err)
		}
		return true, nil
	case statErr != nil:
		return false, fmt.Errorf("%w: output directory %s: %v", errlog.ErrDirectory, dir, statErr)
	case !info.IsDir():
		return false, fmt.Errorf("%w: output directory %s is not a directory", errlog.ErrDirectory, dir)
	}

	if dirWritable(dir) {
		return false, nil
	}
	if err := os.Chmod(dir, info.Mode().Perm()|0o200); err != nil {
		return false, fmt.Errorf("%w: add write permission on %s: %v", errlog.ErrDirectory, dir, err)
	}
	if !dirWritable(dir) {
		return false, fmt.Errorf("%w: output directory %s is not writable", errlog.ErrDirectory, dir)
	}
	return false, nil
}

// dirWritable probes writability by creating and removing a scratch file.
func dirWritable(dir string) bool {
	file, err := os.CreateTemp(dir, ".clipbatch-probe-*")
	if err != nil {
		return false
	}
	name := file.Name()
	_ = file.Close()
	_ = os.Remove(name)
	return true
}
