package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var settingsFlag string

	ctx := newCommandContext(&settingsFlag)

	rootCmd := &cobra.Command{
		Use:           "clipbatch",
		Short:         "Batch-trim videos and extract timestamped snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&settingsFlag, "settings", "", "Tool settings file (TOML)")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
