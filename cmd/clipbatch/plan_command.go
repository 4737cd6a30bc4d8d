package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipbatch/internal/cleanup"
)

func newPlanCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [batch options...]",
		Short: "Build the job list and show it without encoding",
		Long: `Plan performs the same tokenization, source validation, and output
name allocation as run, prints the resulting job table, and stops. Output
directories created while planning are removed again if they stay empty.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rest := splitRunFlags(args)

			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			model, err := buildBatch(cmd.Context(), cfg, logger, rest)
			if err != nil {
				return err
			}
			defer model.reportErrors()

			if len(model.jobs) == 0 {
				fmt.Println("no jobs to process")
			} else {
				fmt.Println(renderJobTable(model.jobs))
			}

			cleanup.Run(model.createdDirs, model.errLog, logger)
			return nil
		},
	}
	return cmd
}
