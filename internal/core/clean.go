package core

import "math"

// FillValue replaces every absent or non-finite cell during cleaning.
const FillValue = 0.0

// Clean normalizes t in place: numeric ±Inf becomes absent, then every
// absent cell (and any NaN) becomes FillValue. It applies to all columns
// regardless of type and is idempotent. It returns the number of cells
// replaced.
func Clean(t *Table) int {
	replaced := 0
	for _, row := range t.Rows {
		for j, c := range row {
			if c.Kind == CellNumber && math.IsInf(c.Num, 0) {
				c = Absent()
			}
			if c.IsAbsent() || c.IsNonFinite() {
				row[j] = Number(FillValue)
				replaced++
			}
		}
	}
	return replaced
}
