package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"clipbatch/internal/encoder"
	"clipbatch/internal/errlog"
	"clipbatch/internal/plan"
)

// Stats aggregates per-operation outcomes for the batch summary.
type Stats struct {
	ImagesDone   int
	ImagesFailed int
	VideosDone   int
	VideosFailed int
}

// Failed reports whether any operation failed.
func (s Stats) Failed() bool {
	return s.ImagesFailed > 0 || s.VideosFailed > 0
}

// Option configures a Driver.
type Option func(*Driver)

// WithScratchRoot overrides where per-video scratch directories are created.
func WithScratchRoot(dir string) Option {
	return func(d *Driver) {
		if dir != "" {
			d.scratchRoot = dir
		}
	}
}

// Driver dispatches the job list to the external encoder.
type Driver struct {
	client      encoder.Client
	log         *errlog.Log
	logger      *slog.Logger
	scratchRoot string
}

// New constructs a Driver.
func New(client encoder.Client, log *errlog.Log, logger *slog.Logger, opts ...Option) *Driver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Driver{
		client:      client,
		log:         log,
		logger:      logger.With("component", "driver"),
		scratchRoot: os.TempDir(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run processes every job. The returned error is non-nil only for an
// internal invariant violation; per-operation failures land in the error log
// and the stats.
func (d *Driver) Run(ctx context.Context, jobs []plan.Job) (Stats, error) {
	var stats Stats
	if len(jobs) == 0 {
		return stats, errlog.Invariant("encode driver started with no jobs")
	}
	for i, job := range jobs {
		if job.Index != i {
			return stats, errlog.Invariant("job at position %d carries index %d", i, job.Index)
		}
	}

	// Last declared job is processed first; the review table shows forward
	// order, so both orderings are visible behavior.
	for i := len(jobs) - 1; i >= 0; i-- {
		job := jobs[i]
		d.runImages(ctx, job, &stats)
		if job.WantsVideo() {
			d.runVideo(ctx, job, &stats)
		}
	}
	return stats, nil
}

func (d *Driver) runImages(ctx context.Context, job plan.Job, stats *Stats) {
	for _, img := range job.Images {
		err := d.client.ExtractImage(ctx, encoder.ImageJob{
			Input:   job.SourcePath,
			TimeRef: img.TimeReference,
			Output:  img.OutputPath,
		})
		if err != nil {
			stats.ImagesFailed++
			d.log.Append(errlog.Entry{
				JobIndex: job.Index,
				Stage:    errlog.StageImage,
				Source:   job.SourcePath,
				Target:   img.OutputPath,
				TimeRef:  img.TimeReference,
				Detail:   err.Error(),
			})
			d.logger.Warn("image extraction failed", "job", job.Index, "time", img.TimeReference, "error", err)
			continue
		}
		stats.ImagesDone++
		d.logger.Info("image extracted", "job", job.Index, "target", filepath.Base(img.OutputPath))
	}
}

func (d *Driver) runVideo(ctx context.Context, job plan.Job, stats *Stats) {
	scratch, err := d.makeScratchDir()
	if err != nil {
		stats.VideosFailed++
		d.log.Append(errlog.Entry{
			JobIndex: job.Index,
			Stage:    errlog.StageVideo,
			Source:   job.SourcePath,
			Target:   job.OutputPath,
			Detail:   fmt.Sprintf("scratch directory: %v", err),
		})
		d.logger.Warn("video encode skipped", "job", job.Index, "error", err)
		return
	}
	defer os.RemoveAll(scratch)

	err = d.client.EncodeVideo(ctx, encoder.VideoJob{
		Input:      job.SourcePath,
		Output:     job.OutputPath,
		Start:      job.TrimStart,
		Duration:   job.TrimDuration,
		ScratchDir: scratch,
	})
	if err != nil {
		stats.VideosFailed++
		d.log.Append(errlog.Entry{
			JobIndex: job.Index,
			Stage:    errlog.StageVideo,
			Source:   job.SourcePath,
			Target:   job.OutputPath,
			TimeRef:  describeBounds(job),
			Detail:   err.Error(),
		})
		d.logger.Warn("video encode failed", "job", job.Index, "error", err)
		return
	}
	stats.VideosDone++
	d.logger.Info("video encoded", "job", job.Index, "target", filepath.Base(job.OutputPath))
}

// makeScratchDir creates a fresh private working directory for one video
// encode so stale two-pass artifacts can never leak between jobs or runs.
func (d *Driver) makeScratchDir() (string, error) {
	dir := filepath.Join(d.scratchRoot, "clipbatch-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func describeBounds(job plan.Job) string {
	start := job.TrimStart
	if start == "" {
		start = "start"
	}
	duration := job.TrimDuration
	if duration == "" {
		duration = "end"
	}
	return start + " + " + duration
}
