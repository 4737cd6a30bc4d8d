// Package cleanup removes output directories that a run created but never
// filled. It runs after every batch, whether the operator committed to the
// work or canceled at the confirmation prompt.
package cleanup

import (
	"io"
	"log/slog"
	"os"
	"sort"

	"clipbatch/internal/errlog"
)

// Run inspects the directories the build created and removes the ones that
// ended up empty. Non-empty directories are always left alone; failed
// removals are recorded and do not affect the run outcome. The removed paths
// are returned in removal order.
func Run(dirs []string, log *errlog.Log, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("component", "cleanup")

	// Deepest path first so nested created directories collapse upward.
	unique := dedupe(dirs)
	sort.Slice(unique, func(i, j int) bool { return len(unique[i]) > len(unique[j]) })

	var removed []string
	for _, dir := range unique {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			report(log, logger, dir, err)
			continue
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			report(log, logger, dir, err)
			continue
		}
		removed = append(removed, dir)
		logger.Debug("removed empty output directory", "dir", dir)
	}
	return removed
}

func report(log *errlog.Log, logger *slog.Logger, dir string, err error) {
	if log != nil {
		log.Append(errlog.Entry{JobIndex: -1, Stage: errlog.StageCleanup, Target: dir, Detail: err.Error()})
	}
	logger.Warn("cleanup skipped directory", "dir", dir, "error", err)
}

func dedupe(dirs []string) []string {
	seen := make(map[string]struct{}, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}
	return out
}
