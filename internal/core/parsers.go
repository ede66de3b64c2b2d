package core

import (
	"fmt"
	"strings"
)

// LegacyHeaderLines is the number of preamble lines in a legacy export.
const LegacyHeaderLines = 13

// Parser converts decoded content into a Table for one file convention.
type Parser interface {
	Format() Format
	Parse(content string) (*Table, error)
}

// delimitedParser locates the tabular body of the content with skip and
// reads it with a single delimiter.
type delimitedParser struct {
	format Format
	delim  rune
	skip   func(content string) (body string, lineOffset int, err error)
}

func (p delimitedParser) Format() Format { return p.format }

func (p delimitedParser) Parse(content string) (*Table, error) {
	body, offset := content, 0
	if p.skip != nil {
		var err error
		body, offset, err = p.skip(content)
		if err != nil {
			return nil, err
		}
	}
	return readDelimited(body, p.delim, offset)
}

var parsers = map[Format]Parser{
	FormatSpectra:      delimitedParser{format: FormatSpectra, delim: ',', skip: skipSpectraPreamble},
	FormatLegacyHeader: delimitedParser{format: FormatLegacyHeader, delim: ';', skip: skipLegacyPreamble},
	FormatTabSeparated: delimitedParser{format: FormatTabSeparated, delim: '\t'},
	FormatPlainCSV:     delimitedParser{format: FormatPlainCSV, delim: ','},
}

// ParserFor returns the parser registered for f.
func ParserFor(f Format) (Parser, error) {
	p, ok := parsers[f]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q", f)
	}
	return p, nil
}

// ParseSpectra drops everything up to and including the first line holding
// the marker token plus one units line, then reads the rest as CSV.
func ParseSpectra(content string) (*Table, error) {
	return parsers[FormatSpectra].Parse(content)
}

// ParseLegacy drops the first 13 lines and reads the rest as ';'-separated.
func ParseLegacy(content string) (*Table, error) {
	return parsers[FormatLegacyHeader].Parse(content)
}

// ParseTSV reads the whole content as tab-separated values.
func ParseTSV(content string) (*Table, error) {
	return parsers[FormatTabSeparated].Parse(content)
}

// ParseCSV reads the whole content as comma-separated values.
func ParseCSV(content string) (*Table, error) {
	return parsers[FormatPlainCSV].Parse(content)
}

func skipSpectraPreamble(content string) (string, int, error) {
	lines := splitLinesKeepEnds(content)
	for i, line := range lines {
		if strings.Contains(line, MarkerToken) {
			start := i + 2
			if start > len(lines) {
				start = len(lines)
			}
			return strings.Join(lines[start:], ""), start, nil
		}
	}
	return "", 0, &FormatMarkerNotFoundError{Marker: MarkerToken}
}

func skipLegacyPreamble(content string) (string, int, error) {
	lines := splitLinesKeepEnds(content)
	if len(lines) <= LegacyHeaderLines {
		return "", len(lines), nil
	}
	return strings.Join(lines[LegacyHeaderLines:], ""), LegacyHeaderLines, nil
}

// splitLinesKeepEnds splits s after every '\n', keeping the terminators.
// A trailing fragment without '\n' is the last line.
func splitLinesKeepEnds(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
