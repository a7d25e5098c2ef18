package textextract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/extract"
)

func (e *Extractor) extractPDF(ctx context.Context, path string) (extract.TextExtractionResult, error) {
	res := extract.TextExtractionResult{SourceType: constants.PDF}

	if e.cfg.ValidatePDF {
		conf := model.NewDefaultConfiguration()
		conf.ValidationMode = model.ValidationRelaxed
		if err := api.ValidateFile(path, conf); err != nil {
			e.logger.Warn("textextract.pdf.invalid", "path", path, "error", err)
			res.Warnings = append(res.Warnings, "pdf validation: "+err.Error())
		}
	}

	if e.cfg.UsePdftotext {
		pages, err := e.pdftotext(ctx, path)
		if err != nil {
			return res, err
		}
		return e.finish(res, pages, MethodPdftotext), nil
	}

	pages, warns, err := e.nativePages(path)
	res.Warnings = append(res.Warnings, warns...)
	if err == nil && strings.TrimSpace(joinPages(pages)) != "" {
		return e.finish(res, pages, MethodNative), nil
	}
	if err != nil {
		e.logger.Warn("textextract.pdf.native_failed", "path", path, "error", err)
		res.Warnings = append(res.Warnings, "native reader: "+err.Error())
	}

	// The built-in reader found nothing; pdftotext copes with more encodings.
	if _, lookErr := e.lookPath(e.cfg.Pdftotext); lookErr != nil {
		if err != nil {
			return res, fmt.Errorf("read pdf %s: %w", path, err)
		}
		return e.finish(res, pages, MethodNative), nil
	}
	fallback, ferr := e.pdftotext(ctx, path)
	if ferr != nil {
		res.Warnings = append(res.Warnings, "pdftotext: "+ferr.Error())
		if err != nil {
			return res, fmt.Errorf("read pdf %s: %w", path, err)
		}
		return e.finish(res, pages, MethodNative), nil
	}
	return e.finish(res, fallback, MethodPdftotext), nil
}

func (e *Extractor) finish(res extract.TextExtractionResult, pages []string, method string) extract.TextExtractionResult {
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		res.Warnings = append(res.Warnings, fmt.Sprintf("truncated to %d of %d pages", e.cfg.MaxPages, len(pages)))
		pages = pages[:e.cfg.MaxPages]
	}
	for i := range pages {
		pages[i] = Sanitize(pages[i])
	}
	res.PageTexts = pages
	res.Pages = len(pages)
	res.Text = joinPages(pages)
	res.Method = method
	return res
}

// nativePages reads every page with the pure-Go reader. A page that fails to
// decode contributes "" and a warning; a panic anywhere else fails the file.
func (e *Extractor) nativePages(path string) (pages []string, warns []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages, warns, err = nil, nil, fmt.Errorf("read pdf: %v", rec)
		}
	}()
	if n, err := api.PageCountFile(path); err == nil {
		e.logger.Debug("textextract.pdf.pages", "path", path, "pages", n)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		text, perr := pageText(r, i)
		if perr != nil {
			warns = append(warns, fmt.Sprintf("page %d: %v", i, perr))
		}
		pages = append(pages, text)
	}
	return pages, warns, nil
}

func pageText(r *pdf.Reader, n int) (text string, err error) {
	// The reader panics on some malformed content streams.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("decode: %v", rec)
		}
	}()
	p := r.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func (e *Extractor) pdftotext(ctx context.Context, path string) ([]string, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, common.NewAppError(common.CodeExtractor, fmt.Sprintf("%s not found", e.cfg.Pdftotext),
				errors.Join(common.ErrExtractorUnavailable, err))
		}
		return nil, fmt.Errorf("pdftotext %s: %w: %s", path, err, truncate(string(errb), 512))
	}
	// A form-feed separates pages; the last one is followed by a trailing \f.
	pages := strings.Split(strings.TrimSuffix(string(out), "\f"), "\f")
	return pages, nil
}
