package model

import (
	"math"
	"strconv"
)

type Category string

const (
	Core  Category = "core"
	Shell Category = "shell"
	Cloud Category = "cloud"
)

// Presentation order of every per-category table.
var Categories = []Category{Core, Shell, Cloud}

// Percent is a percentage that may be not computable (zero denominator).
// Not computable values are NaN and are printed as NA, never as 0.
type Percent float64

const NotAvailable = "NA"

func NotComputable() Percent {
	return Percent(math.NaN())
}

func (p Percent) Valid() bool {
	return !math.IsNaN(float64(p))
}

func (p Percent) String() string {
	if !p.Valid() {
		return NotAvailable
	}
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

// Loaded input, before counting
type RawOrthogroup struct {
	ID    string
	Cells []string // aligned with OrthogroupTable.Genomes
}

type OrthogroupTable struct {
	Genomes []string
	Rows    []RawOrthogroup
	Skipped int // header-artifact rows dropped by the loader
}

// Counted orthogroup
type OrthogroupRow struct {
	ID        string
	Counts    []int
	ZeroCount int
	Category  Category
	Total     int
}

type GeneCounts struct {
	Genomes []string
	Rows    []OrthogroupRow
}

type CategorySummary struct {
	Category Category
	Total    int
}

type PercentageSummary struct {
	Category Category
	Percent  Percent
}

type AbsenceCountSummary struct {
	ZeroCount int
	Total     int
	Category  Category
}

type ColumnCategoryPercentage struct {
	Category Category
	Percents []Percent // aligned with GeneCounts.Genomes
}

// Report is everything one run produces.
type Report struct {
	RunID      string
	InputPath  string
	Input      *OrthogroupTable
	Counts     *GeneCounts
	Summary    []CategorySummary
	Percentage []PercentageSummary
	Absence    []AbsenceCountSummary
	PerGenome  []ColumnCategoryPercentage
}
