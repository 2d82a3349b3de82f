package ui

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/cameronsjo/quadsmith/internal/quadlet"
)

// Table renders rows under headers with rounded borders. Short rows are
// padded with empty cells; extra cells are dropped.
func Table(headers []string, rows [][]string) string {
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

	configs := make([]table.ColumnConfig, columns)
	for i := range columns {
		configs[i] = table.ColumnConfig{Number: i + 1, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// ViolationTable renders one row per violation.
func ViolationTable(violations quadlet.Violations) string {
	rows := make([][]string, len(violations))
	for i, v := range violations {
		rows[i] = []string{
			v.Quadlet,
			v.Section + "." + v.Attribute,
			v.Value,
			expectation(v),
		}
	}
	return Table([]string{"Quadlet", "Attribute", "Value", "Expected"}, rows)
}

func expectation(v quadlet.Violation) string {
	if v.Kind == quadlet.ViolationMissingTag {
		return "must contain " + v.Expected
	}
	return v.Expected
}
