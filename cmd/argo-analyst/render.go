package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-analyst/internal/analysis"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func render(w io.Writer, reports []*analysis.Report, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(reports)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(reports)
	case formatTable:
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}

			fmt.Fprintln(w, renderReport(r))
		}

		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatTable, formatJSON, formatYAML)
	}
}

// renderReport lays the indicator rows out with one line per column and one
// table column per date.
func renderReport(r *analysis.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %d bars", r.Code, r.Bars)))
	b.WriteString("\n")

	if r.Query != "" {
		b.WriteString(faintStyle.Render(r.Query))
		b.WriteString("\n")
	}

	headers := []string{"column"}
	for _, row := range r.Rows {
		headers = append(headers, row.Date.Format(time.DateOnly))
	}

	values := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(styleCell).
		Headers(headers...)

	values.Row(rawRow("close", r, func(i int) float64 { return r.Rows[i].Bar.Close })...)
	values.Row(rawRow("volume", r, func(i int) float64 { return r.Rows[i].Bar.Volume })...)

	if r.Set != nil {
		for _, col := range r.Set.Columns() {
			cells := []string{string(col)}

			for _, row := range r.Rows {
				cells = append(cells, formatValue(row.Indicators[string(col)]))
			}

			values.Row(cells...)
		}
	}

	b.WriteString(values.Render())
	b.WriteString("\n")

	signals := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(styleCell).
		Headers("signal", "label", "")

	for _, name := range r.Signals.Names() {
		label := r.Signals[name]
		signals.Row(string(name), string(label), label.Localized())
	}

	b.WriteString(signals.Render())

	if r.Fundamentals != "" {
		b.WriteString("\n")
		b.WriteString(r.Fundamentals)
	}

	if r.Narrative != "" {
		b.WriteString("\n\n")
		b.WriteString(r.Narrative)
	}

	return b.String()
}

func styleCell(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}

	return cellStyle
}

func rawRow(name string, r *analysis.Report, value func(i int) float64) []string {
	cells := []string{name}
	for i := range r.Rows {
		v := value(i)
		cells = append(cells, formatValue(&v))
	}

	return cells
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}

	return strconv.FormatFloat(*v, 'f', 2, 64)
}
