// Package textextract reads waybill PDFs and movement-form exports as text.
package textextract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/extract"
)

const (
	MethodNative    = "pdf-native"
	MethodPdftotext = "pdftotext"
	MethodPlain     = "plain"
)

type Config struct {
	Pdftotext    string // binary name or absolute path; if empty -> "pdftotext"
	UsePdftotext bool   // prefer pdftotext over the built-in reader
	ValidatePDF  bool
	MaxPages     int // 0 = no limit
}

type Extractor struct {
	cfg      Config
	runner   Runner
	lookPath func(string) (string, error)
	logger   *slog.Logger
}

var _ extract.TextExtractor = (*Extractor)(nil)
var _ extract.Checker = (*Extractor)(nil)

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, lookPath: exec.LookPath, logger: logger}
}

// WithRunner swaps the command runner, for tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	e.lookPath = func(name string) (string, error) { return name, nil }
	return e
}

// Check fails with ErrExtractorUnavailable when pdftotext is required but
// cannot be found.
func (e *Extractor) Check(_ context.Context) error {
	if !e.cfg.UsePdftotext {
		return nil
	}
	if _, err := e.lookPath(e.cfg.Pdftotext); err != nil {
		return common.NewAppError(common.CodeExtractor, fmt.Sprintf("%s not found", e.cfg.Pdftotext),
			errors.Join(common.ErrExtractorUnavailable, err))
	}
	return nil
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (extract.TextExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("textextract.start", "path", path, "ext", ext)

	var (
		res extract.TextExtractionResult
		err error
	)
	switch format := constants.MapExtToFormat(ext); format {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.CSV, constants.TXT:
		res, err = readPlain(path, format)
	default:
		e.logger.Error("textextract.unsupported", "path", path, "ext", ext)
		return extract.TextExtractionResult{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}
	if strings.TrimSpace(res.Text) == "" {
		return res, fmt.Errorf("%s: %w", filepath.Base(path), common.ErrNoExtractableText)
	}
	e.logger.Debug("textextract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// joinPages concatenates page texts with a newline between pages.
func joinPages(pages []string) string {
	return strings.Join(pages, "\n")
}
