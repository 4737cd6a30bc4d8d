package plan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"clipbatch/internal/errlog"
	"clipbatch/internal/naming"
	"clipbatch/internal/timecode"
)

// SourceProber is the subset of the external encoder used during the build:
// the format-support probe for candidate sources.
type SourceProber interface {
	SupportsSource(ctx context.Context, path string) error
}

// Builder folds a token stream into the job list. It is single-use: build
// one batch, then discard.
type Builder struct {
	prober SourceProber
	alloc  *naming.Allocator
	log    *errlog.Log
	logger *slog.Logger

	current     optionKind
	valuesTaken int
	pending     pendingContext
	inherited   DirectoryContext
	open        *openJob
	jobs        []Job
	createdDirs []string
}

// pendingContext holds directory directives declared since the last job was
// opened. nil means "not declared"; the inherited value stays in force.
type pendingContext struct {
	sourceDir  *string
	outputDir  *string
	namePrefix *string
}

// openJob is the scratch state for the job currently accumulating options.
type openJob struct {
	sourcePath   string
	context      DirectoryContext
	trimStart    string
	trimDuration string
	suppress     bool
	images       []string
}

// NewBuilder constructs a Builder. All collaborators are required.
func NewBuilder(prober SourceProber, alloc *naming.Allocator, log *errlog.Log, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{
		prober: prober,
		alloc:  alloc,
		log:    log,
		logger: logger.With("component", "builder"),
	}
}

// Build consumes the token stream and returns the committed jobs in
// declaration order. All recoverable failures are recorded in the error log
// and the build keeps going; the returned error is reserved for internal
// invariant violations.
func (b *Builder) Build(ctx context.Context, toks []string) ([]Job, error) {
	for _, token := range toks {
		if kind, ok := lookupOption(token); ok {
			b.current = kind
			b.valuesTaken = 0
			continue
		}
		b.consumeValue(ctx, token)
	}
	b.finalizeOpen()
	return b.jobs, nil
}

// CreatedDirs lists output directories created while committing output-dir
// directives, in creation order. Cleanup removes the ones that end up empty.
func (b *Builder) CreatedDirs() []string {
	out := make([]string, len(b.createdDirs))
	copy(out, b.createdDirs)
	return out
}

func (b *Builder) consumeValue(ctx context.Context, value string) {
	defer func() { b.valuesTaken++ }()

	switch b.current {
	case optionNone:
		b.discard(errlog.StageBuild, "", fmt.Sprintf("value %q precedes any option", value))
	case optionConfigFile:
		b.discard(errlog.StageBuild, "", fmt.Sprintf("nested config file %q is not allowed", value))
	case optionSourceDir:
		b.takeDirective(value, "source-dir", &b.pending.sourceDir, ensureSourceDir)
	case optionOutputDir:
		b.takeDirective(value, "output-dir", &b.pending.outputDir, b.commitOutputDir)
	case optionNamePrefix:
		b.takeDirective(value, "name-prefix", &b.pending.namePrefix, nil)
	case optionVideo:
		if b.valuesTaken > 0 {
			b.discard(errlog.StageBuild, value, "video takes a single file; extra value discarded")
			return
		}
		b.openNewJob(ctx, value)
	case optionImage, optionOnlyImage:
		b.takeImage(value, b.current == optionOnlyImage)
	case optionStartPosition:
		b.takeTrimBound(value, "start-position", func(j *openJob) *string { return &j.trimStart })
	case optionDuration:
		b.takeTrimBound(value, "duration", func(j *openJob) *string { return &j.trimDuration })
	}
}

// takeDirective handles the three next-job directory directives. validate
// may be nil (name-prefix needs no filesystem check). A directive survives
// at most one declaration per job scope; repeats are reported and discarded.
func (b *Builder) takeDirective(value, name string, slot **string, validate func(string) error) {
	if b.valuesTaken > 0 || *slot != nil {
		b.discard(errlog.StageBuild, value, name+" already declared for the next video; repeat discarded")
		return
	}
	if validate != nil {
		if err := validate(value); err != nil {
			b.log.Append(errlog.Entry{JobIndex: -1, Stage: errlog.StageBuild, Target: value, Detail: err.Error()})
			b.logger.Warn("directory directive ignored", "directive", name, "value", value, "error", err)
			return
		}
	}
	v := value
	*slot = &v
}

func (b *Builder) commitOutputDir(dir string) error {
	created, err := ensureOutputDir(dir)
	if err != nil {
		return err
	}
	if created {
		b.createdDirs = append(b.createdDirs, dir)
		b.logger.Debug("created output directory", "dir", dir)
	}
	return nil
}

func (b *Builder) takeImage(value string, only bool) {
	if b.open == nil {
		b.discard(errlog.StageBuild, value, "image option precedes any accepted video; discarded")
		return
	}
	if only {
		b.open.suppress = true
	}
	if err := timecode.Validate(value); err != nil {
		b.log.Append(errlog.Entry{JobIndex: -1, Stage: errlog.StageBuild, Source: b.open.sourcePath, TimeRef: value, Detail: err.Error()})
		b.logger.Warn("image timestamp discarded", "source", b.open.sourcePath, "time", value, "error", err)
		return
	}
	b.open.images = append(b.open.images, value)
}

func (b *Builder) takeTrimBound(value, name string, slot func(*openJob) *string) {
	if b.open == nil {
		b.discard(errlog.StageBuild, value, name+" precedes any accepted video; discarded")
		return
	}
	if err := timecode.Validate(value); err != nil {
		b.log.Append(errlog.Entry{JobIndex: -1, Stage: errlog.StageBuild, Source: b.open.sourcePath, TimeRef: value, Detail: err.Error()})
		b.logger.Warn("trim bound discarded", "bound", name, "time", value, "error", err)
		return
	}
	field := slot(b.open)
	if *field != "" {
		b.logger.Warn("trim bound overwritten", "bound", name, "previous", *field, "new", value)
	}
	*field = value
}

// openNewJob finalizes the previous job, commits pending directory
// directives into the carried context, and opens a job for file — unless the
// resolved source fails validation, in which case the whole job is dropped
// and the build moves on to the next video token.
func (b *Builder) openNewJob(ctx context.Context, file string) {
	b.finalizeOpen()

	if b.pending.sourceDir != nil {
		b.inherited.SourceDir = *b.pending.sourceDir
	}
	if b.pending.outputDir != nil {
		b.inherited.OutputDir = *b.pending.outputDir
	}
	if b.pending.namePrefix != nil {
		b.inherited.NamePrefix = *b.pending.namePrefix
	}
	b.pending = pendingContext{}

	sourcePath := joinSource(b.inherited.SourceDir, file)
	if err := b.validateSource(ctx, sourcePath); err != nil {
		b.log.Append(errlog.Entry{JobIndex: -1, Stage: errlog.StageBuild, Source: sourcePath, Detail: err.Error()})
		b.logger.Warn("source rejected", "source", sourcePath, "error", err)
		b.open = nil
		return
	}

	b.open = &openJob{sourcePath: sourcePath, context: b.inherited}
	b.logger.Debug("job opened", "source", sourcePath)
}

func (b *Builder) validateSource(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", errlog.ErrSourceRejected, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", errlog.ErrSourceRejected, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s is empty", errlog.ErrSourceRejected, path)
	}
	return b.prober.SupportsSource(ctx, path)
}

// finalizeOpen commits the currently open job: names are allocated and the
// job joins the list. Allocation failures drop only the affected output.
func (b *Builder) finalizeOpen() {
	if b.open == nil {
		return
	}
	open := b.open
	b.open = nil

	index := len(b.jobs)
	job := Job{
		Index:         index,
		SourcePath:    open.sourcePath,
		TrimStart:     open.trimStart,
		TrimDuration:  open.trimDuration,
		SuppressVideo: open.suppress,
		Context:       open.context,
	}

	base := filepath.Base(open.sourcePath)
	ext := filepath.Ext(base)
	req := naming.Request{
		OutputDir: open.context.OutputDir,
		Prefix:    open.context.NamePrefix,
		BaseName:  strings.TrimSuffix(base, ext),
		Ext:       ext,
	}

	if !open.suppress {
		path, err := b.alloc.AllocateVideo(req)
		if err != nil {
			b.log.Append(errlog.Entry{JobIndex: index, Stage: errlog.StageAllocate, Source: open.sourcePath, Detail: err.Error()})
			b.logger.Warn("video name allocation failed", "job", index, "source", open.sourcePath, "error", err)
		} else {
			job.OutputPath = path
		}
	}

	for _, timeRef := range open.images {
		path, err := b.alloc.AllocateImage(req, timeRef)
		if err != nil {
			b.log.Append(errlog.Entry{JobIndex: index, Stage: errlog.StageAllocate, Source: open.sourcePath, TimeRef: timeRef, Detail: err.Error()})
			b.logger.Warn("image name allocation failed", "job", index, "source", open.sourcePath, "time", timeRef, "error", err)
			continue
		}
		job.Images = append(job.Images, ImageRequest{TimeReference: timeRef, OutputPath: path})
	}

	b.jobs = append(b.jobs, job)
	b.logger.Debug("job committed", "job", index, "source", job.SourcePath, "images", len(job.Images), "video", job.WantsVideo())
}

func (b *Builder) discard(stage errlog.Stage, value, detail string) {
	b.log.Append(errlog.Entry{JobIndex: -1, Stage: stage, Target: value, Detail: detail})
	b.logger.Warn("token discarded", "value", value, "detail", detail)
}

func joinSource(dir, file string) string {
	if dir == "" {
		return filepath.Clean(file)
	}
	return filepath.Join(dir, file)
}
