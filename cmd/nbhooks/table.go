package main

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"nbhooks/internal/findings"
	"nbhooks/internal/hooks"
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
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
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

// renderReportTable summarizes a hook run, one row per file.
func renderReportTable(report *hooks.Report) string {
	rows := make([][]string, 0, len(report.Files))
	for _, f := range report.Files {
		headerStatus := string(f.Header)
		if headerStatus == "" {
			headerStatus = "-"
		}
		rows = append(rows, []string{
			f.Path,
			headerStatus,
			strconv.Itoa(len(f.Failures)),
			failureKinds(f.Failures),
		})
	}
	return renderTable(
		[]string{"File", "Header", "Failures", "Kinds"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func failureKinds(errs []error) string {
	seen := make(map[string]struct{}, len(errs))
	var kinds []string
	for _, err := range errs {
		label := "other"
		if kind := findings.KindOf(err); kind != nil {
			label = kind.Error()
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		kinds = append(kinds, label)
	}
	return strings.Join(kinds, ", ")
}
