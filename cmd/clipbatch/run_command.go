package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipbatch/internal/cleanup"
	"clipbatch/internal/driver"
	"clipbatch/internal/history"
	"clipbatch/internal/runlock"
)

func newRunCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [batch options...]",
		Short: "Build the job list and execute it",
		Long: `Run tokenizes the batch options, builds the job list, and hands each
job to the external encoder. Use "--config FILE" as the only argument to read
the options from a file instead. Pass --yes (or -y) to skip the confirmation
prompt.`,
		// The batch grammar owns --config, -ss, and -t, so cobra must not
		// interpret the arguments.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), cmdCtx, args)
		},
	}
	return cmd
}

func runBatch(ctx context.Context, cmdCtx *commandContext, args []string) error {
	yes, rest := splitRunFlags(args)

	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cmdCtx.ensureLogger()
	if err != nil {
		return err
	}

	lock, err := runlock.Acquire(cfg.Paths.LockFile)
	if err != nil {
		if errors.Is(err, runlock.ErrBusy) {
			return fmt.Errorf("another clipbatch run is already active (lock %s)", cfg.Paths.LockFile)
		}
		return err
	}
	defer lock.Release()

	model, err := buildBatch(ctx, cfg, logger, rest)
	if err != nil {
		return err
	}
	defer model.reportErrors()

	if len(model.jobs) == 0 {
		cleanup.Run(model.createdDirs, model.errLog, logger)
		fmt.Println("no jobs to process")
		fmt.Println("DONE")
		return nil
	}

	fmt.Println(renderJobTable(model.jobs))

	if !yes && !cfg.Run.AssumeYes && stdinIsTerminal() {
		ok, err := confirmRun(os.Stdin, os.Stdout, len(model.jobs))
		if err != nil {
			return err
		}
		if !ok {
			cleanup.Run(model.createdDirs, model.errLog, logger)
			fmt.Println("aborted")
			return nil
		}
	}

	var (
		store *history.Store
		runID int64
	)
	if cfg.History.Enabled {
		store, err = history.Open(ctx, cfg.Paths.HistoryDB)
		if err != nil {
			logger.Warn("history disabled for this run", "error", err)
		} else {
			defer store.Close()
			runID, err = store.BeginRun(ctx)
			if err == nil {
				err = store.RecordJobs(ctx, runID, model.jobs)
			}
			if err != nil {
				logger.Warn("history recording failed", "error", err)
				store.Close()
				store = nil
			}
		}
	}

	stats, runErr := driver.New(model.client, model.errLog, logger).Run(ctx, model.jobs)

	if store != nil {
		canceled := errors.Is(runErr, context.Canceled)
		if err := store.FinishRun(ctx, runID, canceled,
			stats.ImagesDone, stats.ImagesFailed, stats.VideosDone, stats.VideosFailed); err != nil {
			logger.Warn("history recording failed", "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	cleanup.Run(model.createdDirs, model.errLog, logger)

	fmt.Printf("images: %d done, %d failed; videos: %d done, %d failed\n",
		stats.ImagesDone, stats.ImagesFailed, stats.VideosDone, stats.VideosFailed)
	fmt.Println("DONE")
	return nil
}
