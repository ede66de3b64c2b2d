package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// preamble returns n filler lines, each terminated by '\n'.
func preamble(n int) string {
	return strings.Repeat("meta: value\n", n)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Format
	}{
		{name: "plain csv", content: "a,b\n1,2\n3,4\n", want: FormatPlainCSV},
		{name: "tab in first line", content: "a\tb\n1\t2\n", want: FormatTabSeparated},
		{name: "tab only in later line", content: "a,b\n1\t2\n", want: FormatPlainCSV},
		{name: "legacy header", content: preamble(13) + "a;b\n1;2\n", want: FormatLegacyHeader},
		{name: "spectra marker", content: "Title\nBLOCKSIZE 2\nunits\na,b\n5,6\n", want: FormatSpectra},
		{name: "marker inside a data row", content: "a,b\nBLOCKSIZE,1\n", want: FormatSpectra},
		{name: "marker beats legacy", content: preamble(13) + "a;BLOCKSIZE\n1;2\n", want: FormatSpectra},
		{name: "marker beats tab", content: "a\tb\nBLOCKSIZE\t1\n", want: FormatSpectra},
		{name: "legacy beats tab", content: "a\tb\n" + preamble(12) + "x;y\n", want: FormatLegacyHeader},
		{name: "empty content", content: "", want: FormatPlainCSV},
		{name: "marker is case sensitive", content: "blocksize\na,b\n", want: FormatPlainCSV},
		{name: "line 13 without trailing newline", content: preamble(13) + "a;b", want: FormatLegacyHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.content))
		})
	}
}

func TestDetect_ShortContentNeverLegacy(t *testing.T) {
	// Every line carries ';' but line index 13 does not exist.
	for n := 0; n <= 13; n++ {
		content := strings.Repeat("a;b\n", n)
		assert.NotEqual(t, FormatLegacyHeader, Detect(content), "%d lines", n)
	}
}

// The legacy rule only inspects line index 13. A ';'-separated file whose
// header sits anywhere else is not recognised. This is a known limitation.
func TestDetect_LegacyProbeIsPositional(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Format
	}{
		{name: "twelve preamble lines", content: preamble(12) + "a;b\n1;2\n", want: FormatLegacyHeader},
		{name: "fourteen preamble lines", content: preamble(14) + "a;b\n1;2\n", want: FormatPlainCSV},
		{name: "no preamble", content: "a;b\n1;2\n", want: FormatPlainCSV},
		{name: "semicolon only in data", content: preamble(14) + "a,b\n1;2\n", want: FormatPlainCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.content))
		})
	}
}

func TestNthLine(t *testing.T) {
	line, ok := nthLine("zero\none\ntwo", 2)
	assert.True(t, ok)
	assert.Equal(t, "two", line)

	_, ok = nthLine("zero\none", 2)
	assert.False(t, ok)

	line, ok = nthLine("zero\n", 1)
	assert.True(t, ok)
	assert.Empty(t, line)
}
