// Package core provides the business logic for tabular file uploads.
//
// It has no HTTP dependencies and is shared by the web server and the
// tabinspect CLI.
//
// # Pipeline
//
// Every upload goes through the same straight-line steps:
//
//  1. [Decode] turns bytes into text, replacing invalid UTF-8
//  2. [Detect] picks one [Format] from the content
//  3. [ParserFor] returns the [Parser] that builds a [Table]
//  4. [Clean] replaces absent and non-finite cells with [FillValue]
//  5. [Serialize] emits the JSON-safe [Columnar] form
//
// [ReadTable] runs steps 1-4 and wraps any parser failure in [ParseError].
// [Service.Process] adds the input checks, the concurrency limit and
// logging on top.
//
// # Formats
//
// Detection rules are ordered and the first match wins:
//
//   - spectra: the BLOCKSIZE marker appears anywhere in the content
//   - legacy: line 13 (zero-based) contains ';', with 13 preamble lines
//   - tsv: the first line contains a tab
//   - csv: everything else
//
// # Columns
//
// Each column is typed once after tokenizing: if every present cell is a
// decimal number the column is numeric, otherwise it holds strings. Empty
// cells and NA tokens ("NA", "NaN", "null", ...) are absent until cleaning.
// Duplicate header names that only appear after trimming are rejected with
// [DuplicateColumnError].
//
// # Error Handling
//
// Client-caused failures are *[MissingInputError] and *[ParseError]; use
// [IsClientError] to tell them from server faults. [MapError] turns any
// error into a [UserMessage] with a support code.
package core
