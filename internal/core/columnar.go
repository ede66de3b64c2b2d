package core

// columnar.go reads delimited text into a Table.
//
// Rows are tokenized with encoding/csv, then each column is typed once:
// if every non-absent cell in a column is a decimal number, the whole
// column becomes numeric; otherwise its cells stay strings verbatim.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates a decimal number after surrounding spaces are trimmed.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// infinityRegex matches the spellings of infinity accepted in numeric columns.
var infinityRegex = regexp.MustCompile(`(?i)^[+-]?inf(inity)?$`)

// naTokens are raw cell values read as absent.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// readDelimited parses body as delimited text with the first non-blank line
// as header. lineOffset is the number of file lines preceding body, used to
// report line numbers relative to the uploaded file.
func readDelimited(body string, delim rune, lineOffset int) (*Table, error) {
	r := csv.NewReader(strings.NewReader(body))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var header []string
	var records [][]string

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fmt.Errorf("error tokenizing data: line %d: %w", pe.StartLine+lineOffset, pe.Err)
			}
			return nil, fmt.Errorf("error tokenizing data: %w", err)
		}
		if isBlankRecord(rec) {
			continue
		}
		if header == nil {
			header = rec
			continue
		}
		if len(rec) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, &MalformedRowError{
				Line:     line + lineOffset,
				Expected: len(header),
				Got:      len(rec),
			}
		}
		records = append(records, rec)
	}

	if header == nil {
		return nil, ErrEmptyData
	}

	columns, err := columnNames(header)
	if err != nil {
		return nil, err
	}

	rows := make([][]Cell, len(records))
	for i := range rows {
		rows[i] = make([]Cell, len(columns))
	}
	for j := range columns {
		numeric := isNumericColumn(records, j)
		for i, rec := range records {
			rows[i][j] = typeCell(rec, j, numeric)
		}
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// isBlankRecord reports whether a record came from a whitespace-only line.
func isBlankRecord(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}

// columnNames applies the header policy: exact duplicates get ".N"
// suffixes, empty names become "Unnamed: i", and names are trimmed.
// Names that only collide after trimming are rejected.
func columnNames(header []string) ([]string, error) {
	seen := make(map[string]int, len(header))
	names := make([]string, len(header))

	for i, raw := range header {
		name := raw
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		}
		seen[name] = 0
		names[i] = name
	}

	trimmed := make(map[string]struct{}, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if _, dup := trimmed[name]; dup {
			return nil, &DuplicateColumnError{Column: name}
		}
		trimmed[name] = struct{}{}
		names[i] = name
	}

	return names, nil
}

// rawCell returns the raw value of column j, and false when the cell is
// absent (short row or NA token).
func rawCell(rec []string, j int) (string, bool) {
	if j >= len(rec) {
		return "", false
	}
	v := rec[j]
	if _, na := naTokens[v]; na {
		return "", false
	}
	return v, true
}

func isNumericColumn(records [][]string, j int) bool {
	for _, rec := range records {
		v, ok := rawCell(rec, j)
		if !ok {
			continue
		}
		if _, ok := parseNumber(v); !ok {
			return false
		}
	}
	return true
}

func typeCell(rec []string, j int, numeric bool) Cell {
	v, ok := rawCell(rec, j)
	if !ok {
		return Absent()
	}
	if numeric {
		f, _ := parseNumber(v)
		return Number(f)
	}
	return Text(v)
}

// parseNumber parses a decimal or infinity literal. Values beyond the
// float64 range become ±Inf.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if infinityRegex.MatchString(s) {
		if strings.HasPrefix(s, "-") {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
