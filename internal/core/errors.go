package core

import (
	"errors"
	"fmt"
)

// MarkerToken is the literal that identifies a spectra export.
const MarkerToken = "BLOCKSIZE"

// MissingInputError is returned when the request has no file or the file
// has an empty name. It is raised before any content is read.
type MissingInputError struct {
	Reason string
}

func (e *MissingInputError) Error() string {
	return e.Reason
}

var (
	errNoFile        = &MissingInputError{Reason: "no file provided"}
	errEmptyFilename = &MissingInputError{Reason: "empty filename"}
)

// FormatMarkerNotFoundError is returned by the spectra parser when its
// marker line is missing.
type FormatMarkerNotFoundError struct {
	Marker string
}

func (e *FormatMarkerNotFoundError) Error() string {
	return e.Marker + " marker not found"
}

// MalformedRowError reports a row with more fields than the header.
// Line is 1-based and counts lines of the uploaded file.
type MalformedRowError struct {
	Line     int
	Expected int
	Got      int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("error tokenizing data: expected %d fields in line %d, saw %d", e.Expected, e.Line, e.Got)
}

// ErrEmptyData is returned when there is no header line to parse.
var ErrEmptyData = errors.New("no columns to parse from file")

// DuplicateColumnError is returned when two header names collide after trimming.
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column name %q after trimming whitespace", e.Column)
}

// ParseError wraps any failure of a format parser. Error returns the
// underlying message unchanged so it can be shown to the client verbatim.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err stems from the shape of the uploaded
// input rather than from the server.
func IsClientError(err error) bool {
	var missing *MissingInputError
	var parse *ParseError
	return errors.As(err, &missing) || errors.As(err, &parse)
}
