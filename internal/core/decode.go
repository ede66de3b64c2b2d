package core

// decode.go turns uploaded bytes into text.
//
// Decoding never fails: invalid UTF-8 sequences become U+FFFD and a
// leading UTF-8 byte order mark (added by Excel and most Windows tools)
// is dropped so it does not end up glued to the first column name.

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode returns the uploaded bytes as text.
func Decode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	// UTF8BOM strips only a UTF-8 mark. A UTF-16 mark is invalid UTF-8 and
	// is replaced like any other bad byte.
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		// The UTF-8 decoder replaces rather than rejects, so this is only
		// reachable on an internal transformer failure.
		return strings.ToValidUTF8(strings.TrimPrefix(string(data), "\uFEFF"), "\uFFFD")
	}
	return string(out)
}
