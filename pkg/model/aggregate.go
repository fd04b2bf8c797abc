// Summary tables derived from the counted orthogroups. All functions here
// are pure: they read the counts and allocate new tables.

package model

func categoryIndex(c Category) int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

// percentOf returns part/whole*100, or NotComputable when whole is 0.
func percentOf(part, whole int) Percent {
	if whole == 0 {
		return NotComputable()
	}
	return Percent(float64(part) / float64(whole) * 100)
}

func GrandTotal(gc *GeneCounts) int {
	total := 0
	for _, row := range gc.Rows {
		total += row.Total
	}
	return total
}

// SummarizeCategories sums orthogroup totals per category, always
// returning core, shell and cloud in that order.
func SummarizeCategories(gc *GeneCounts) []CategorySummary {
	return SummarizeCategoriesFromRows(gc.Rows)
}

// SummarizeCategoriesFromRows trusts the Category already stored on each
// row, which is what a reloaded Gene_Counts.csv carries.
func SummarizeCategoriesFromRows(rows []OrthogroupRow) []CategorySummary {
	summary := make([]CategorySummary, len(Categories))
	for i, cat := range Categories {
		summary[i].Category = cat
	}

	for _, row := range rows {
		if i := categoryIndex(row.Category); i >= 0 {
			summary[i].Total += row.Total
		}
	}
	return summary
}

// PercentageOfTotal normalizes category totals so they sum to 100.
// When every total is zero each percentage is not computable.
func PercentageOfTotal(summary []CategorySummary) []PercentageSummary {
	sum := 0
	for _, s := range summary {
		sum += s.Total
	}

	out := make([]PercentageSummary, 0, len(summary))
	for _, s := range summary {
		out = append(out, PercentageSummary{
			Category: s.Category,
			Percent:  percentOf(s.Total, sum),
		})
	}
	return out
}

// SummarizeAbsence sums totals per absence count, for every absence count
// from 0 to the largest one observed. Gaps are kept with a zero total.
func SummarizeAbsence(gc *GeneCounts) []AbsenceCountSummary {
	if len(gc.Rows) == 0 {
		return []AbsenceCountSummary{}
	}

	maxZero := 0
	for _, row := range gc.Rows {
		if row.ZeroCount > maxZero {
			maxZero = row.ZeroCount
		}
	}

	out := make([]AbsenceCountSummary, maxZero+1)
	for z := range out {
		out[z].ZeroCount = z
		out[z].Category = Classify(z, len(gc.Genomes))
	}
	for _, row := range gc.Rows {
		out[row.ZeroCount].Total += row.Total
	}
	return out
}

// CategoryPercentages gives, per genome, the share of that genome's genes
// that fall in each category. A genome with no genes at all is not
// computable for every category.
func CategoryPercentages(gc *GeneCounts) []ColumnCategoryPercentage {
	nGenomes := len(gc.Genomes)

	// sums[category][genome]
	sums := make([][]int, len(Categories))
	for i := range sums {
		sums[i] = make([]int, nGenomes)
	}
	colTotals := make([]int, nGenomes)

	for _, row := range gc.Rows {
		ci := categoryIndex(row.Category)
		if ci < 0 {
			continue
		}
		for g, n := range row.Counts {
			sums[ci][g] += n
			colTotals[g] += n
		}
	}

	out := make([]ColumnCategoryPercentage, len(Categories))
	for ci, cat := range Categories {
		out[ci].Category = cat
		out[ci].Percents = make([]Percent, nGenomes)
		for g := 0; g < nGenomes; g++ {
			out[ci].Percents[g] = percentOf(sums[ci][g], colTotals[g])
		}
	}
	return out
}

// BuildReport runs every aggregation over the counts.
func BuildReport(table *OrthogroupTable, gc *GeneCounts) *Report {
	summary := SummarizeCategories(gc)
	return &Report{
		Input:      table,
		Counts:     gc,
		Summary:    summary,
		Percentage: PercentageOfTotal(summary),
		Absence:    SummarizeAbsence(gc),
		PerGenome:  CategoryPercentages(gc),
	}
}
