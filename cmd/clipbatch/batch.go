package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"clipbatch/internal/config"
	"clipbatch/internal/encoder"
	"clipbatch/internal/errlog"
	"clipbatch/internal/naming"
	"clipbatch/internal/plan"
	"clipbatch/internal/tokens"
)

// splitRunFlags pulls run-level flags out of the raw argument list before
// batch tokenization; everything else belongs to the job grammar.
func splitRunFlags(args []string) (yes bool, rest []string) {
	rest = make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "--yes", "-y":
			yes = true
		default:
			rest = append(rest, arg)
		}
	}
	return yes, rest
}

// resolveBatchTokens turns the command arguments into the builder token
// stream. A config file is mutually exclusive with every other option and
// must not nest.
func resolveBatchTokens(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("no batch options given; see --help")
	}
	if plan.IsConfigToken(args[0]) {
		if len(args) != 2 {
			return nil, errors.New("--config takes exactly one file and excludes all other options")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return nil, fmt.Errorf("read batch config: %w", err)
		}
		return tokens.FromConfig(string(data)), nil
	}
	for _, arg := range args[1:] {
		if plan.IsConfigToken(arg) {
			return nil, errors.New("--config cannot be combined with other options")
		}
	}
	return tokens.FromArgs(args)
}

// batchModel bundles everything the run and plan commands share after the
// job list has been built.
type batchModel struct {
	jobs        []plan.Job
	createdDirs []string
	errLog      *errlog.Log
	client      encoder.Client
}

// buildBatch tokenizes args and folds them into the job model.
func buildBatch(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) (*batchModel, error) {
	toks, err := resolveBatchTokens(args)
	if err != nil {
		return nil, err
	}

	client := encoder.NewCLI(
		encoder.WithFFmpegBinary(cfg.Encoder.FFmpegBinary),
		encoder.WithFFprobeBinary(cfg.Encoder.FFprobeBinary),
		encoder.WithVideoBitrate(cfg.Encoder.VideoBitrate),
		encoder.WithJPEGQuality(cfg.Encoder.JPEGQuality),
	)

	errLog := errlog.New()
	builder := plan.NewBuilder(client, naming.NewAllocator(), errLog, logger)
	jobs, err := builder.Build(ctx, toks)
	if err != nil {
		errLog.Discard()
		return nil, err
	}
	return &batchModel{jobs: jobs, createdDirs: builder.CreatedDirs(), errLog: errLog, client: client}, nil
}

// reportErrors surfaces the transient error log on stderr, then discards it.
func (m *batchModel) reportErrors() {
	if !m.errLog.Empty() {
		fmt.Fprintln(os.Stderr, "errors during this run:")
		m.errLog.Dump(os.Stderr)
	}
	m.errLog.Discard()
}
