package core

import (
	"encoding/json"
	"fmt"
	"math"
)

// Format identifies one of the file conventions the detector can select.
type Format string

const (
	FormatSpectra      Format = "spectra"
	FormatLegacyHeader Format = "legacy"
	FormatTabSeparated Format = "tsv"
	FormatPlainCSV     Format = "csv"
)

// Formats lists every format in detector rule order.
func Formats() []Format {
	return []Format{FormatSpectra, FormatLegacyHeader, FormatTabSeparated, FormatPlainCSV}
}

// CellKind tags the variant held by a Cell.
type CellKind uint8

const (
	CellAbsent CellKind = iota
	CellNumber
	CellString
)

func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellString:
		return "string"
	default:
		return "absent"
	}
}

// Cell is a single parsed value: a number, a string, or absent.
type Cell struct {
	Kind CellKind
	Num  float64
	Str  string
}

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: CellNumber, Num: f} }

// Text returns a string cell.
func Text(s string) Cell { return Cell{Kind: CellString, Str: s} }

// Absent returns the absent marker.
func Absent() Cell { return Cell{} }

// IsAbsent reports whether the cell holds no value.
func (c Cell) IsAbsent() bool { return c.Kind == CellAbsent }

// IsNonFinite reports whether the cell is a number equal to ±Inf or NaN.
func (c Cell) IsNonFinite() bool {
	return c.Kind == CellNumber && (math.IsInf(c.Num, 0) || math.IsNaN(c.Num))
}

// Value returns the cell as a plain Go value: float64, string, or nil.
func (c Cell) Value() any {
	switch c.Kind {
	case CellNumber:
		return c.Num
	case CellString:
		return c.Str
	default:
		return nil
	}
}

// MarshalJSON emits numbers and strings only. Absent and non-finite cells
// are rejected so an uncleaned table can never reach a client.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellNumber:
		if c.IsNonFinite() {
			return nil, fmt.Errorf("cell: non-finite number %v", c.Num)
		}
		return json.Marshal(c.Num)
	case CellString:
		return json.Marshal(c.Str)
	default:
		return nil, fmt.Errorf("cell: absent value")
	}
}

// Table is the uniform in-memory result of a parser.
// Every row holds exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.Columns) }

// Column returns the cells of column i from top to bottom.
func (t *Table) Column(i int) []Cell {
	out := make([]Cell, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// Columnar is the JSON-safe serialization of a cleaned Table.
type Columnar struct {
	Columns []string          `json:"columns"`
	Data    map[string][]Cell `json:"data"`
}

// Upload is the raw input handed over by the serving layer.
// Present is false when the request carried no file part at all.
type Upload struct {
	Filename string
	Data     []byte
	Present  bool
}

// Result is the success output for one upload.
type Result struct {
	Filename string `json:"filename"`
	Columnar
}

// ColumnSummary describes the spread of one numeric column.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
}

// SummaryResult is returned by Service.Summarize.
type SummaryResult struct {
	Filename string          `json:"filename"`
	Format   Format          `json:"format"`
	Rows     int             `json:"rows"`
	Columns  []ColumnSummary `json:"columns"`
}
