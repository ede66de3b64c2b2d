package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with its technical detail and the request ID, then
// mapped through core.MapError to a user message with a support code.
// Client errors (missing file, unparseable content, oversized body) also
// carry the original message in "error" so the uploader sees exactly which
// line or marker was wrong. Server faults never leak their detail.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JonMunkholm/tabplot/internal/core"
	"github.com/JonMunkholm/tabplot/internal/logging"
)

var (
	errFileTooLarge = errors.New("file too large")
	errBadForm      = errors.New("invalid multipart form")
	errRateLimited  = errors.New("rate limit exceeded")
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes the mapped JSON error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	switch {
	case status < http.StatusInternalServerError:
		logger.Warn("request rejected", attrs...)
	case core.IsUserFacing(err):
		// Known conditions such as a full limiter or a cancelled request.
		logger.Warn("request failed", attrs...)
	default:
		logger.Error("request error", attrs...)
	}

	detail := ""
	if isClientFacing(err) {
		detail = err.Error()
	}
	respondErrorJSON(w, userMsg, detail, status)
}

// respondErrorJSON writes a JSON error response. detail, when set, replaces
// the generic message in the "error" field.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, detail string, status int) {
	resp := ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	if detail != "" {
		resp.Error = detail
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// statusFor maps an error to its HTTP status. Everything caused by the
// shape of the upload is a 4xx.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadForm), core.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrTooManyUploads),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func isClientFacing(err error) bool {
	return core.IsClientError(err) ||
		errors.Is(err, errFileTooLarge) ||
		errors.Is(err, errBadForm)
}
