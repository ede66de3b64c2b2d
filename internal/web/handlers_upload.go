package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/tabplot/internal/core"
)

// uploadField is the multipart field carrying the file.
const uploadField = "file"

// handleUpload parses one uploaded file and returns its cleaned columns.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.service.Process(r.Context(), up)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

// handleSummary parses one uploaded file and returns per-column statistics.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	summary, err := s.service.Summarize(r.Context(), up)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, summary)
}

// readUpload extracts the file part from a size-limited multipart body.
//
// A request without a file part yields Present=false. A part sent with an
// empty filename is stored by net/http as a plain form value rather than a
// file, so it is reported as present with an empty name.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (core.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(s.cfg.Upload.MaxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
			return core.Upload{}, fmt.Errorf("%w: %v", errFileTooLarge, err)
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			return core.Upload{Present: false}, nil
		default:
			return core.Upload{}, fmt.Errorf("%w: %v", errBadForm, err)
		}
	}

	file, header, err := r.FormFile(uploadField)
	if errors.Is(err, http.ErrMissingFile) {
		_, sentAsValue := r.MultipartForm.Value[uploadField]
		return core.Upload{Present: sentAsValue}, nil
	}
	if err != nil {
		return core.Upload{}, fmt.Errorf("%w: %v", errBadForm, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return core.Upload{}, fmt.Errorf("read upload: %w", err)
	}

	return core.Upload{
		Filename: header.Filename,
		Data:     data,
		Present:  true,
	}, nil
}
