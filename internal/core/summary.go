package core

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summarize computes spread statistics for every all-numeric column of a
// cleaned table. String columns and empty tables yield no summaries.
func Summarize(t *Table) ([]ColumnSummary, error) {
	if t.NumRows() == 0 {
		return nil, nil
	}

	var out []ColumnSummary
	for j, name := range t.Columns {
		values, ok := numericValues(t, j)
		if !ok {
			continue
		}
		s, err := summarizeColumn(name, values)
		if err != nil {
			return nil, fmt.Errorf("summarize %q: %w", name, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func numericValues(t *Table, j int) ([]float64, bool) {
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		c := row[j]
		if c.Kind != CellNumber || c.IsNonFinite() {
			return nil, false
		}
		values = append(values, c.Num)
	}
	return values, true
}

func summarizeColumn(name string, data []float64) (ColumnSummary, error) {
	summary := ColumnSummary{Column: name, Count: len(data)}

	var err error
	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return summary, err
	}
	if summary.StdDev, err = stats.StandardDeviationPopulation(data); err != nil {
		return summary, err
	}
	return summary, nil
}
