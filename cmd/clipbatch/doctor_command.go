package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"clipbatch/internal/deps"
)

func newDoctorCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check external dependencies and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			missing := false
			for _, status := range statuses {
				mark := "ok"
				if !status.Available {
					mark = "MISSING"
					if !status.Optional {
						missing = true
					}
				}
				fmt.Printf("%-10s %-10s %s", status.Name, mark, status.Description)
				if status.Detail != "" {
					fmt.Printf(" (%s)", status.Detail)
				}
				fmt.Println()
			}
			if missing {
				return errors.New("required dependencies are missing")
			}
			return nil
		},
	}
	return cmd
}
