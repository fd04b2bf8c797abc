// Render the report tables for the terminal

package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/yumyai/ogstat/pkg/model"
)

const (
	previewRows = 5

	// Longer tables are elided to their first and last truncatedEdge rows.
	maxPrintRows  = 60
	truncatedEdge = 5
)

var report_template *template.Template

func init() {
	funcMap := template.FuncMap{
		"cells": func(row []string) string { return strings.Join(row, "\t") },
	}

	tableTmpl := `
	{{define "table"}}
{{ .Title }}
{{ cells .Header }}
{{ range .Rows }}{{ cells . }}
{{ end }}{{ if .Note }}{{ .Note }}
{{ end }}{{end}}`

	reportTmpl := `{{ range . }}{{ template "table" . }}{{ end }}`

	report_template = template.Must(template.New("report").Funcs(funcMap).Parse(reportTmpl))
	template.Must(report_template.Parse(tableTmpl))
}

// Table is one printable table: a title line, a header and string cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Note   string
}

// elide keeps the head and tail of long tables, like a dataframe print.
func elide(t Table) Table {
	total := len(t.Rows)
	if total <= maxPrintRows {
		return t
	}
	dots := make([]string, len(t.Header))
	for i := range dots {
		dots[i] = "..."
	}
	rows := make([][]string, 0, 2*truncatedEdge+1)
	rows = append(rows, t.Rows[:truncatedEdge]...)
	rows = append(rows, dots)
	rows = append(rows, t.Rows[total-truncatedEdge:]...)
	t.Rows = rows
	t.Note = fmt.Sprintf("[%d rows x %d columns]", total, len(t.Header))
	return t
}

// WriteTables renders tables aligned on tab stops.
func WriteTables(w io.Writer, tables ...Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	printable := make([]Table, 0, len(tables))
	for _, t := range tables {
		printable = append(printable, elide(t))
	}
	if err := report_template.Execute(tw, printable); err != nil {
		return err
	}
	return tw.Flush()
}

// RenderReport prints the loaded input preview and every result table.
func RenderReport(w io.Writer, report *model.Report) error {
	tables := make([]Table, 0, 6)
	if report.Input != nil {
		tables = append(tables, PreviewTable(report.Input))
	}
	tables = append(tables,
		GeneCountsTable(report.Counts),
		SummaryTable(report.Summary),
		PercentageTable(report.Percentage),
		AbsenceTable(report.Absence),
		CategoryPercentageTable(report.Counts.Genomes, report.PerGenome),
	)
	return WriteTables(w, tables...)
}

func PreviewTable(input *model.OrthogroupTable) Table {
	t := Table{
		Title:  "Orthogroups Data:",
		Header: append([]string{model.IDColumn}, input.Genomes...),
	}
	n := len(input.Rows)
	if n > previewRows {
		n = previewRows
	}
	for _, raw := range input.Rows[:n] {
		row := make([]string, 0, len(raw.Cells)+1)
		row = append(row, raw.ID)
		for _, c := range raw.Cells {
			if c == "" {
				c = model.NotAvailable
			}
			row = append(row, c)
		}
		t.Rows = append(t.Rows, row)
	}
	if len(input.Rows) > previewRows {
		t.Note = fmt.Sprintf("(%d of %d orthogroups)", previewRows, len(input.Rows))
	}
	return t
}

func GeneCountsTable(gc *model.GeneCounts) Table {
	header := make([]string, 0, len(gc.Genomes)+4)
	header = append(header, model.IDColumn)
	header = append(header, gc.Genomes...)
	header = append(header, "Zero_Count", "category", "total")

	t := Table{Title: "Gene Counts with Zero Count, Category, and Total:", Header: header}
	for _, r := range gc.Rows {
		row := make([]string, 0, len(header))
		row = append(row, r.ID)
		for _, n := range r.Counts {
			row = append(row, fmt.Sprint(n))
		}
		row = append(row, fmt.Sprint(r.ZeroCount), string(r.Category), fmt.Sprint(r.Total))
		t.Rows = append(t.Rows, row)
	}
	return t
}

func SummaryTable(summary []model.CategorySummary) Table {
	t := Table{Title: "Summary with Totals:", Header: []string{"Category", "Total"}}
	for _, s := range summary {
		t.Rows = append(t.Rows, []string{string(s.Category), fmt.Sprint(s.Total)})
	}
	return t
}

func PercentageTable(pct []model.PercentageSummary) Table {
	t := Table{Title: "Percentage Summary:", Header: []string{"Category", "Total"}}
	for _, p := range pct {
		t.Rows = append(t.Rows, []string{string(p.Category), formatPercent(p.Percent)})
	}
	return t
}

func AbsenceTable(absence []model.AbsenceCountSummary) Table {
	t := Table{Title: "Zero Count Summary:", Header: []string{"Zero_Count", "Total", "category"}}
	for _, a := range absence {
		t.Rows = append(t.Rows, []string{fmt.Sprint(a.ZeroCount), fmt.Sprint(a.Total), string(a.Category)})
	}
	return t
}

func CategoryPercentageTable(genomes []string, perGenome []model.ColumnCategoryPercentage) Table {
	t := Table{
		Title:  "Category Percentage:",
		Header: append([]string{"Category"}, genomes...),
	}
	for _, c := range perGenome {
		row := make([]string, 0, len(c.Percents)+1)
		row = append(row, string(c.Category))
		for _, p := range c.Percents {
			row = append(row, formatPercent(p))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Console percentages are rounded for reading; the files keep full precision.
func formatPercent(p model.Percent) string {
	if !p.Valid() {
		return model.NotAvailable
	}
	return fmt.Sprintf("%.2f", float64(p))
}
