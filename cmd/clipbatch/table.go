package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"clipbatch/internal/plan"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}

	configs := make([]table.ColumnConfig, columns)
	for i := range configs {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func toRow(cells []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

// renderJobTable lays out the committed jobs in declaration order, one row
// per job.
func renderJobTable(jobs []plan.Job) string {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		video := job.OutputPath
		if job.SuppressVideo {
			video = "(suppressed)"
		} else if video == "" {
			video = "(skipped)"
		}
		rows = append(rows, []string{
			strconv.Itoa(job.Index),
			job.SourcePath,
			video,
			describeTrim(job),
			strconv.Itoa(len(job.Images)),
		})
	}
	return renderTable(
		[]string{"#", "Source", "Video Output", "Trim", "Images"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

func describeTrim(job plan.Job) string {
	start := job.TrimStart
	if start == "" {
		start = "start"
	}
	duration := job.TrimDuration
	if duration == "" {
		duration = "end"
	}
	if start == "start" && duration == "end" {
		return "full"
	}
	return start + " + " + duration
}
