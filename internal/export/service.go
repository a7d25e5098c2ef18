// Package export renders a reconciliation report as XLSX, CSV, JSON, YAML or
// a console table.
package export

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/pipeline"
)

const (
	FormatXLSX  = "xlsx"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Formats lists every format Write accepts.
func Formats() []string {
	return []string{FormatXLSX, FormatCSV, FormatJSON, FormatYAML, FormatTable}
}

// Service renders reports.
type Service struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, now: time.Now}
}

// Write renders report in format to w.
func (s *Service) Write(w io.Writer, format string, report *pipeline.Report) error {
	if report == nil {
		return fmt.Errorf("%w: nil report", common.ErrInvalidInput)
	}
	start := s.now()
	var err error
	switch format {
	case FormatXLSX:
		var b []byte
		if b, err = s.XLSX(report); err == nil {
			_, err = w.Write(b)
		}
	case FormatCSV:
		err = WriteCSV(w, report.Rows)
	case FormatJSON:
		err = s.WriteJSON(w, report)
	case FormatYAML:
		err = s.WriteYAML(w, report)
	case FormatTable:
		err = WriteTable(w, report)
	default:
		return fmt.Errorf("%w: output format %q (want one of %v)", common.ErrUnsupportedFormat, format, Formats())
	}
	if err != nil {
		s.logger.Error("export.write.failed", "format", format, "error", err)
		return err
	}
	s.logger.Info("export."+format+".ok",
		"run_id", report.RunID,
		"rows", len(report.Rows),
		"elapsed_ms", s.now().Sub(start).Milliseconds(),
	)
	return nil
}

// WriteFile renders report into path. "-" writes to stdout.
func (s *Service) WriteFile(path, format string, report *pipeline.Report) error {
	if !slices.Contains(Formats(), format) {
		return fmt.Errorf("%w: output format %q", common.ErrUnsupportedFormat, format)
	}
	if path == "" || path == "-" {
		return s.Write(os.Stdout, format, report)
	}
	var buf bytes.Buffer
	if err := s.Write(&buf, format, report); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
