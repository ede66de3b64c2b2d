package core

import (
	"context"
	"time"

	"github.com/JonMunkholm/tabplot/internal/config"
	"github.com/JonMunkholm/tabplot/internal/logging"
	"github.com/google/uuid"
)

// Service is the single orchestration point between the serving layer and
// the parsing pipeline.
type Service struct {
	limiter *UploadLimiter
}

// NewService creates a Service using the upload settings from cfg.
func NewService(cfg *config.Config) *Service {
	return &Service{
		limiter: NewUploadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
	}
}

// Process runs decode, detect, parse, clean and serialize for one upload.
// Errors are *MissingInputError, *ParseError, ErrTooManyUploads or a
// context error; no partial result is ever returned with an error.
func (s *Service) Process(ctx context.Context, up Upload) (*Result, error) {
	table, _, err := s.readUpload(ctx, up)
	if err != nil {
		return nil, err
	}

	columnar, err := Serialize(table)
	if err != nil {
		return nil, err
	}

	return &Result{Filename: up.Filename, Columnar: columnar}, nil
}

// Summarize runs the same pipeline as Process and returns per-column
// statistics instead of the data.
func (s *Service) Summarize(ctx context.Context, up Upload) (*SummaryResult, error) {
	table, format, err := s.readUpload(ctx, up)
	if err != nil {
		return nil, err
	}

	columns, err := Summarize(table)
	if err != nil {
		return nil, err
	}
	if columns == nil {
		columns = []ColumnSummary{}
	}

	return &SummaryResult{
		Filename: up.Filename,
		Format:   format,
		Rows:     table.NumRows(),
		Columns:  columns,
	}, nil
}

// LimiterStatus returns a snapshot of parse slot usage.
func (s *Service) LimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight parses finish or ctx is done.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

func (s *Service) readUpload(ctx context.Context, up Upload) (*Table, Format, error) {
	if err := checkUpload(up); err != nil {
		return nil, "", err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, "", err
	}
	defer s.limiter.Release()

	logger := logging.WithFields(ctx,
		"upload_id", uuid.NewString(),
		"filename", up.Filename,
		"bytes", len(up.Data),
	)

	start := time.Now()
	table, format, replaced, err := ReadTable(up.Data)
	if err != nil {
		logger.Warn("upload rejected", "format", format, "error", err)
		return nil, format, err
	}

	logger.Info("upload parsed",
		"format", format,
		"rows", table.NumRows(),
		"columns", table.NumColumns(),
		"replaced_cells", replaced,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return table, format, nil
}

// checkUpload rejects requests without a usable file before any content is read.
func checkUpload(up Upload) error {
	if !up.Present {
		return errNoFile
	}
	if up.Filename == "" {
		return errEmptyFilename
	}
	return nil
}

// ReadTable decodes data, detects its format, parses and cleans it.
// It returns the detected format even on failure, and the number of cells
// the cleaner replaced on success. Parser failures are wrapped in *ParseError.
func ReadTable(data []byte) (*Table, Format, int, error) {
	content := Decode(data)
	format := Detect(content)

	p, err := ParserFor(format)
	if err != nil {
		return nil, format, 0, err
	}

	table, err := p.Parse(content)
	if err != nil {
		return nil, format, 0, &ParseError{Format: format, Err: err}
	}

	return table, format, Clean(table), nil
}
