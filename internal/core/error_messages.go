package core

// error_messages.go maps errors to user-friendly messages with codes for support
// reference. Users can quote the code when reporting a problem.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum upload size
//	          Action: Trim the file or split it into smaller files
//	          Patterns: "request body too large", "file too large"
//
//	FILE002 - Malformed rows: A row has more fields than the header
//	          Action: Check the delimiter and quoting on the reported line
//	          Type: *MalformedRowError, pattern "error tokenizing data"
//
//	FILE003 - Bad request: The upload form could not be read
//	          Action: Send the file as multipart/form-data in the "file" field
//	          Patterns: "invalid multipart form"
//
//	FILE004 - No file: No file was attached to the request
//	          Action: Select a file to upload
//	          Type: *MissingInputError ("no file provided")
//
//	FILE005 - Empty file: No header line was found
//	          Action: Upload a file with a header row and data
//	          Type: ErrEmptyData
//
//	FILE006 - Empty filename: The uploaded file has no name
//	          Action: Rename the file and upload it again
//	          Type: *MissingInputError ("empty filename")
//
//	FILE007 - Marker missing: The spectra marker line was not found
//	          Action: Upload the original instrument export
//	          Type: *FormatMarkerNotFoundError
//
//	FILE008 - Duplicate column: Two columns share a name
//	          Action: Rename the duplicate header so every column is unique
//	          Type: *DuplicateColumnError
//
//	FILE009 - Unreadable file: The file could not be parsed
//	          Action: Save the file as CSV, TSV or a supported export
//	          Type: any other *ParseError
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many uploads in progress
//	         Action: Please wait a moment and try again
//	         Type: ErrTooManyUploads
//
//	UPL004 - Request cancelled: The request was cancelled
//	         Action: Please try again
//	         Type: context.Canceled
//
//	UPL005 - Request timeout: The request timed out
//	         Action: Try a smaller file or check your connection
//	         Type: context.DeadlineExceeded
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Matching
//
// Typed errors are matched first with errors.Is/errors.As. Anything else
// falls back to case-insensitive strings.Contains over errorPatterns, first
// match wins.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Trim the file or split it into smaller files",
		Code:    "FILE001",
	}
	msgMalformedRows = UserMessage{
		Message: "A row has more fields than the header",
		Action:  "Check the delimiter and quoting on the reported line",
		Code:    "FILE002",
	}
	msgBadForm = UserMessage{
		Message: "The upload form could not be read",
		Action:  "Send the file as multipart/form-data in the \"file\" field",
		Code:    "FILE003",
	}
	msgNoFile = UserMessage{
		Message: "No file was attached",
		Action:  "Select a file to upload",
		Code:    "FILE004",
	}
	msgEmptyData = UserMessage{
		Message: "The file has no header row",
		Action:  "Upload a file with a header row and data",
		Code:    "FILE005",
	}
	msgEmptyFilename = UserMessage{
		Message: "The uploaded file has no name",
		Action:  "Rename the file and upload it again",
		Code:    "FILE006",
	}
	msgMarkerMissing = UserMessage{
		Message: "The spectra marker line was not found",
		Action:  "Upload the original instrument export",
		Code:    "FILE007",
	}
	msgDuplicateColumn = UserMessage{
		Message: "Two columns share the same name",
		Action:  "Rename the duplicate header so every column is unique",
		Code:    "FILE008",
	}
	msgUnreadable = UserMessage{
		Message: "The file could not be parsed",
		Action:  "Save the file as CSV, TSV or a supported export",
		Code:    "FILE009",
	}
	msgBusy = UserMessage{
		Message: "Too many uploads in progress",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}
	msgCancelled = UserMessage{
		Message: "The request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
	}
	msgTimeout = UserMessage{
		Message: "The request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "UPL005",
	}
	msgRateLimited = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}
)

// defaultMessage is returned when no specific pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catches errors that reach the web layer untyped, e.g. from
// net/http or after crossing a fmt.Errorf without %w.
var errorPatterns = []errorPattern{
	{pattern: "request body too large", msg: msgFileTooLarge},
	{pattern: "file too large", msg: msgFileTooLarge},
	{pattern: "invalid multipart form", msg: msgBadForm},
	{pattern: "error tokenizing data", msg: msgMalformedRows},
	{pattern: "no columns to parse", msg: msgEmptyData},
	{pattern: "no file provided", msg: msgNoFile},
	{pattern: "marker not found", msg: msgMarkerMissing},
	{pattern: "too many uploads", msg: msgBusy},
	{pattern: "context canceled", msg: msgCancelled},
	{pattern: "context deadline exceeded", msg: msgTimeout},
	{pattern: "rate limit", msg: msgRateLimited},
}

// MapError converts an error into a UserMessage.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if msg, ok := mapTypedError(err); ok {
		return msg
	}

	lower := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(lower, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

func mapTypedError(err error) (UserMessage, bool) {
	var (
		missing   *MissingInputError
		marker    *FormatMarkerNotFoundError
		malformed *MalformedRowError
		dup       *DuplicateColumnError
		parse     *ParseError
	)

	switch {
	case errors.As(err, &missing):
		if missing.Reason == errEmptyFilename.Reason {
			return msgEmptyFilename, true
		}
		return msgNoFile, true
	case errors.As(err, &marker):
		return msgMarkerMissing, true
	case errors.As(err, &malformed):
		return msgMalformedRows, true
	case errors.As(err, &dup):
		return msgDuplicateColumn, true
	case errors.Is(err, ErrEmptyData):
		return msgEmptyData, true
	case errors.As(err, &parse):
		if strings.Contains(strings.ToLower(parse.Error()), "error tokenizing data") {
			return msgMalformedRows, true
		}
		return msgUnreadable, true
	case errors.Is(err, ErrTooManyUploads):
		return msgBusy, true
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout, true
	case errors.Is(err, context.Canceled):
		return msgCancelled, true
	}
	return UserMessage{}, false
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
