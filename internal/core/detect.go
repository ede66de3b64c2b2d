package core

import "strings"

// legacyProbeLine is the zero-based line inspected for a ';' delimiter.
// Legacy exports carry exactly 13 preamble lines, so index 13 is their header.
const legacyProbeLine = LegacyHeaderLines

// Detect selects the parser format for content. Rules are tried in order
// and the first match wins:
//
//  1. the marker token appears anywhere: spectra
//  2. line index 13 exists and contains ';': legacy header
//  3. the first line contains a tab: tab-separated
//  4. otherwise: plain CSV
//
// Rule 1 matches the token inside data rows too, and rule 2 only ever looks
// at line 13. Both are kept exactly as is.
func Detect(content string) Format {
	if strings.Contains(content, MarkerToken) {
		return FormatSpectra
	}
	if line, ok := nthLine(content, legacyProbeLine); ok && strings.Contains(line, ";") {
		return FormatLegacyHeader
	}
	if first, _, _ := strings.Cut(content, "\n"); strings.Contains(first, "\t") {
		return FormatTabSeparated
	}
	return FormatPlainCSV
}

// nthLine returns the zero-based line n of content, split on '\n'.
// ok is false when content has fewer than n newlines.
func nthLine(content string, n int) (string, bool) {
	rest := content
	for i := 0; i < n; i++ {
		_, after, found := strings.Cut(rest, "\n")
		if !found {
			return "", false
		}
		rest = after
	}
	line, _, _ := strings.Cut(rest, "\n")
	return line, true
}
