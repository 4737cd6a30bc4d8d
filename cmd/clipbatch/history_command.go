package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clipbatch/internal/history"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent batch runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cmd.Context(), cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no recorded runs")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				status := "ok"
				switch {
				case run.Canceled:
					status = "canceled"
				case run.ImagesFailed > 0 || run.VideosFailed > 0:
					status = "partial"
				}
				rows = append(rows, []string{
					strconv.FormatInt(run.ID, 10),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					strconv.Itoa(run.Jobs),
					fmt.Sprintf("%d/%d", run.ImagesDone, run.ImagesDone+run.ImagesFailed),
					fmt.Sprintf("%d/%d", run.VideosDone, run.VideosDone+run.VideosFailed),
					status,
				})
			}
			fmt.Println(renderTable(
				[]string{"Run", "Started", "Jobs", "Images", "Videos", "Status"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
