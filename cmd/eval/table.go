package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ressKim-io/promptclf/internal/usecase"
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

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

type namedResult struct {
	name   string
	output *usecase.EvaluationOutput
}

func renderResults(results []namedResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.name,
			r.output.Mode,
			fmt.Sprintf("%d", r.output.CompletedRecords),
			fmt.Sprintf("%d", r.output.CorrectCount),
			formatPercent(r.output.Accuracy),
			r.output.RunID.String(),
		})
	}
	return renderTable(
		[]string{"Dataset", "Mode", "Records", "Correct", "Accuracy", "Run ID"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}

func renderHistory(runs []*usecase.EvaluationOutput) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.RunID.String(),
			r.Dataset,
			r.Mode,
			r.Status,
			fmt.Sprintf("%d/%d", r.CompletedRecords, r.TotalRecords),
			formatPercent(r.Accuracy),
			r.CreatedAt,
		})
	}
	return renderTable(
		[]string{"Run ID", "Dataset", "Mode", "Status", "Records", "Accuracy", "Created"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func renderPredictions(predictions []*usecase.PredictionOutput) string {
	rows := make([][]string, 0, len(predictions))
	for _, p := range predictions {
		mark := ""
		if p.Correct {
			mark = "✓"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Position),
			p.TrueLabel,
			p.PredictedLabel,
			mark,
			fmt.Sprintf("%dms", p.LatencyMs),
			text.Trim(p.Text, 60),
		})
	}
	return renderTable(
		[]string{"#", "True", "Predicted", "OK", "Latency", "Text"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
