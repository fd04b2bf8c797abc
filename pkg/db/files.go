// Comma separated output tables, one fixed file name per table.

package db

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/yumyai/ogstat/internal/util"
	"github.com/yumyai/ogstat/logger"
	"github.com/yumyai/ogstat/pkg/model"
)

const (
	GeneCountsFile         = "Gene_Counts.csv"
	SummaryFile            = "Summary.csv"
	PercentageSummaryFile  = "Percentage_Summary.csv"
	ZeroCountSummaryFile   = "Zero_Count_Summary.csv"
	CategoryPercentageFile = "Category_Percentage_Summary.csv"

	colZeroCount = "Zero_Count"
	colCategory  = "category"
	colTotal     = "total"
)

// OutputFiles lists the files WriteReport produces, in writing order.
var OutputFiles = []string{
	GeneCountsFile,
	SummaryFile,
	PercentageSummaryFile,
	ZeroCountSummaryFile,
	CategoryPercentageFile,
}

type tableWriter func(w *csv.Writer, report *model.Report) error

var tableWriters = map[string]tableWriter{
	GeneCountsFile:         writeGeneCounts,
	SummaryFile:            writeSummary,
	PercentageSummaryFile:  writePercentageSummary,
	ZeroCountSummaryFile:   writeZeroCountSummary,
	CategoryPercentageFile: writeCategoryPercentages,
}

// WriteReport writes every output table into dir, overwriting earlier runs.
// It returns the paths that were written before any error.
func WriteReport(dir string, report *model.Report) ([]string, error) {

	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	written := make([]string, 0, len(OutputFiles))
	for _, name := range OutputFiles {
		path := filepath.Join(dir, name)
		if err := writeCSVFile(path, func(w *csv.Writer) error {
			return tableWriters[name](w, report)
		}); err != nil {
			return written, fmt.Errorf("write %s: %w", name, err)
		}
		logger.Debug("Wrote table", zap.String("path", path))
		written = append(written, path)
	}
	return written, nil
}

// writeCSVFile writes into a temporary file next to path and renames it,
// so a failed write leaves the previous file untouched.
func writeCSVFile(path string, fill func(w *csv.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = WriteCSV(tmp, fill); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// WriteCSV runs fill against a csv.Writer on w and flushes it.
func WriteCSV(w io.Writer, fill func(w *csv.Writer) error) error {
	cw := csv.NewWriter(w)
	if err := fill(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func writeGeneCounts(w *csv.Writer, report *model.Report) error {
	gc := report.Counts

	header := make([]string, 0, len(gc.Genomes)+4)
	header = append(header, model.IDColumn)
	header = append(header, gc.Genomes...)
	header = append(header, colZeroCount, colCategory, colTotal)
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range gc.Rows {
		record[0] = row.ID
		for i, n := range row.Counts {
			record[i+1] = itoa(n)
		}
		k := len(row.Counts) + 1
		record[k] = itoa(row.ZeroCount)
		record[k+1] = string(row.Category)
		record[k+2] = itoa(row.Total)
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(w *csv.Writer, report *model.Report) error {
	if err := w.Write([]string{"Category", "Total"}); err != nil {
		return err
	}
	for _, s := range report.Summary {
		if err := w.Write([]string{string(s.Category), itoa(s.Total)}); err != nil {
			return err
		}
	}
	return nil
}

func writePercentageSummary(w *csv.Writer, report *model.Report) error {
	if err := w.Write([]string{"Category", "Total"}); err != nil {
		return err
	}
	for _, p := range report.Percentage {
		if err := w.Write([]string{string(p.Category), p.Percent.String()}); err != nil {
			return err
		}
	}
	return nil
}

func writeZeroCountSummary(w *csv.Writer, report *model.Report) error {
	if err := w.Write([]string{colZeroCount, "Total", colCategory}); err != nil {
		return err
	}
	for _, a := range report.Absence {
		if err := w.Write([]string{itoa(a.ZeroCount), itoa(a.Total), string(a.Category)}); err != nil {
			return err
		}
	}
	return nil
}

func writeCategoryPercentages(w *csv.Writer, report *model.Report) error {
	header := append([]string{"Category"}, report.Counts.Genomes...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range report.PerGenome {
		record := make([]string, 0, len(row.Percents)+1)
		record = append(record, string(row.Category))
		for _, p := range row.Percents {
			record = append(record, p.String())
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
