package encoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"clipbatch/internal/errlog"
)

var commandContext = exec.CommandContext

// ImageJob describes a single snapshot extraction.
type ImageJob struct {
	Input   string
	TimeRef string // HH:MM:SS[.f[f]]
	Output  string
}

// VideoJob describes one trimmed two-pass video encode.
type VideoJob struct {
	Input      string
	Output     string
	Start      string // empty means from the beginning
	Duration   string // empty means to the end
	ScratchDir string // private pass-log directory for this job
}

// Client defines the external encoder behaviour the pipeline depends on.
type Client interface {
	// SupportsSource probes whether the external engine can read path.
	SupportsSource(ctx context.Context, path string) error
	// ExtractImage produces one snapshot.
	ExtractImage(ctx context.Context, job ImageJob) error
	// EncodeVideo produces the trimmed output video in two passes.
	EncodeVideo(ctx context.Context, job VideoJob) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithFFmpegBinary overrides the default ffmpeg binary name.
func WithFFmpegBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.ffmpeg = binary
		}
	}
}

// WithFFprobeBinary overrides the default ffprobe binary name.
func WithFFprobeBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.ffprobe = binary
		}
	}
}

// WithVideoBitrate sets the two-pass target bitrate (e.g. "2000k").
func WithVideoBitrate(bitrate string) Option {
	return func(c *CLI) {
		if bitrate != "" {
			c.bitrate = bitrate
		}
	}
}

// WithJPEGQuality sets the snapshot quality (ffmpeg -q:v, 1..31).
func WithJPEGQuality(quality int) Option {
	return func(c *CLI) {
		if quality > 0 {
			c.jpegQuality = quality
		}
	}
}

// CLI invokes ffmpeg and ffprobe as subprocesses.
type CLI struct {
	ffmpeg      string
	ffprobe     string
	bitrate     string
	jpegQuality int
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		ffmpeg:      "ffmpeg",
		ffprobe:     "ffprobe",
		bitrate:     "2000k",
		jpegQuality: 2,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// SupportsSource asks ffprobe whether the container format is readable.
func (c *CLI) SupportsSource(ctx context.Context, path string) error {
	args := probeArgs(path)
	if err := c.run(ctx, c.ffprobe, args); err != nil {
		return fmt.Errorf("%w: %s: %v", errlog.ErrSourceRejected, filepath.Base(path), err)
	}
	return nil
}

// ExtractImage grabs a single frame at the requested timestamp.
func (c *CLI) ExtractImage(ctx context.Context, job ImageJob) error {
	args := imageArgs(job, c.jpegQuality)
	if err := c.run(ctx, c.ffmpeg, args); err != nil {
		return fmt.Errorf("%w: snapshot %s at %s: %v", errlog.ErrEncodeFailure, filepath.Base(job.Input), job.TimeRef, err)
	}
	return nil
}

// EncodeVideo runs the two-pass trim encode. Pass logs live in the job's
// private scratch directory so aborted runs cannot poison later ones.
func (c *CLI) EncodeVideo(ctx context.Context, job VideoJob) error {
	for pass := 1; pass <= 2; pass++ {
		args := videoArgs(job, c.bitrate, pass)
		if err := c.run(ctx, c.ffmpeg, args); err != nil {
			return fmt.Errorf("%w: encode %s pass %d: %v", errlog.ErrEncodeFailure, filepath.Base(job.Input), pass, err)
		}
	}
	return nil
}

// run executes one external command, keeping the stderr tail for diagnosis.
func (c *CLI) run(ctx context.Context, binary string, args []string) error {
	cmd := commandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if tail := stderrTail(stderr.String(), 5); tail != "" {
			return fmt.Errorf("%v (%s)", err, tail)
		}
		return err
	}
	return nil
}

func probeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=format_name",
		"-of", "default=noprint_wrappers=1",
		path,
	}
}

func imageArgs(job ImageJob, quality int) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-ss", job.TimeRef,
		"-i", job.Input,
		"-frames:v", "1",
		"-q:v", strconv.Itoa(quality),
		job.Output,
	}
}

func videoArgs(job VideoJob, bitrate string, pass int) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-y"}
	if job.Start != "" {
		args = append(args, "-ss", job.Start)
	}
	args = append(args, "-i", job.Input)
	if job.Duration != "" {
		args = append(args, "-t", job.Duration)
	}
	args = append(args,
		"-c:v", "libx264",
		"-b:v", bitrate,
		"-pass", strconv.Itoa(pass),
		"-passlogfile", filepath.Join(job.ScratchDir, "pass"),
	)
	if pass == 1 {
		return append(args, "-an", "-f", "null", os.DevNull)
	}
	return append(args, "-c:a", "aac", job.Output)
}

func stderrTail(stderr string, lines int) string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return ""
	}
	split := strings.Split(trimmed, "\n")
	if len(split) > lines {
		split = split[len(split)-lines:]
	}
	return strings.Join(split, "; ")
}

var _ Client = (*CLI)(nil)
