package core

import "fmt"

// Serialize converts a cleaned Table into its columnar form. Column order
// is preserved. It fails if a cell is still absent or non-finite, which
// means Clean was not run.
func Serialize(t *Table) (Columnar, error) {
	out := Columnar{
		Columns: make([]string, len(t.Columns)),
		Data:    make(map[string][]Cell, len(t.Columns)),
	}
	copy(out.Columns, t.Columns)

	for j, name := range t.Columns {
		col := make([]Cell, len(t.Rows))
		for i, row := range t.Rows {
			c := row[j]
			if c.IsAbsent() || c.IsNonFinite() {
				return Columnar{}, fmt.Errorf("serialize: column %q row %d holds %s value", name, i, describeUnclean(c))
			}
			col[i] = c
		}
		out.Data[name] = col
	}

	return out, nil
}

func describeUnclean(c Cell) string {
	if c.IsAbsent() {
		return "an absent"
	}
	return "a non-finite"
}
