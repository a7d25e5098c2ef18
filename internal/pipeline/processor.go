// Package pipeline runs one reconciliation batch: extract every document,
// parse waybills and forms concurrently, then join the two sides.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
	"github.com/joseph-ayodele/waybill-recon/internal/extract"
	"github.com/joseph-ayodele/waybill-recon/internal/form"
	"github.com/joseph-ayodele/waybill-recon/internal/ingest"
	"github.com/joseph-ayodele/waybill-recon/internal/reconcile"
	"github.com/joseph-ayodele/waybill-recon/internal/waybill"
)

// Processor coordinates text extraction, per-kind parsing and reconciliation.
type Processor struct {
	extractor extract.TextExtractor
	engine    *reconcile.Engine
	logger    *slog.Logger
	workers   int
	timeout   time.Duration
}

type Option func(*Processor)

func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

func WithDocumentTimeout(d time.Duration) Option {
	return func(p *Processor) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func WithEngine(e *reconcile.Engine) Option {
	return func(p *Processor) {
		if e != nil {
			p.engine = e
		}
	}
}

func NewProcessor(extractor extract.TextExtractor, logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{
		extractor: extractor,
		engine:    reconcile.NewEngine(nil),
		logger:    logger,
		workers:   4,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// DocumentStat describes how one document was read.
type DocumentStat struct {
	Path    string            `json:"path" yaml:"path"`
	Kind    constants.DocKind `json:"kind" yaml:"kind"`
	Method  string            `json:"method,omitempty" yaml:"method,omitempty"`
	Pages   int               `json:"pages" yaml:"pages"`
	Records int               `json:"records" yaml:"records"`
	Failed  bool              `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Report is the result of one batch.
type Report struct {
	RunID       string                     `json:"run_id" yaml:"run_id"`
	StartedAt   time.Time                  `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time                  `json:"finished_at" yaml:"finished_at"`
	Documents   []DocumentStat             `json:"documents" yaml:"documents"`
	Guides      []entity.ShipmentRecord    `json:"-" yaml:"-"`
	Forms       []entity.FormRecord        `json:"-" yaml:"-"`
	Rows        []entity.ReconciliationRow `json:"rows" yaml:"rows"`
	Summary     reconcile.Summary          `json:"summary" yaml:"summary"`
	Diagnostics []Diagnostic               `json:"diagnostics" yaml:"diagnostics"`
}

type docResult struct {
	stat   DocumentStat
	guides []entity.ShipmentRecord
	forms  []entity.FormRecord
	diags  []Diagnostic
}

// Run processes docs with at most workers documents in flight, then
// reconciles once every document has finished. Per-document failures become
// diagnostics; only an unavailable extractor aborts the run.
func (p *Processor) Run(ctx context.Context, docs []ingest.Document) (*Report, error) {
	if p.extractor == nil {
		return nil, common.NewAppError(common.CodeExtractor, "no text extractor configured", common.ErrExtractorUnavailable)
	}
	if c, ok := p.extractor.(extract.Checker); ok {
		if err := c.Check(ctx); err != nil {
			return nil, err
		}
	}

	runID := common.RunIDFromContext(ctx)
	if runID == "" {
		runID = common.NewRunID()
		ctx = common.WithRunID(ctx, runID)
	}
	logger := p.logger.With("run_id", runID)
	report := &Report{
		RunID:       runID,
		StartedAt:   time.Now().UTC(),
		Documents:   make([]DocumentStat, 0, len(docs)),
		Diagnostics: []Diagnostic{},
	}

	results := make([]docResult, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, doc := range docs {
		g.Go(func() error {
			res, err := p.processDocument(gctx, doc, logger)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("processor.run.aborted", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, r := range results {
		report.Documents = append(report.Documents, r.stat)
		report.Guides = append(report.Guides, r.guides...)
		report.Forms = append(report.Forms, r.forms...)
		report.Diagnostics = append(report.Diagnostics, r.diags...)
	}

	if len(report.Guides) == 0 {
		logger.Warn("processor.side.empty", "side", reconcile.SideGuide)
	}
	if len(report.Forms) == 0 {
		logger.Warn("processor.side.empty", "side", reconcile.SideForm)
	}

	out := p.engine.Run(report.Guides, report.Forms)
	report.Rows = out.Rows
	report.Summary = out.Summary
	for _, d := range out.Summary.Duplicates {
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			Path:    d.DupFile,
			Kind:    kindOfSide(d.Side),
			Code:    CodeDuplicateTracking,
			Message: fmt.Sprintf("tracking %s already read from %s", d.TrackingID, d.KeptFile),
		})
	}
	SortDiagnostics(report.Diagnostics)
	report.FinishedAt = time.Now().UTC()

	logger.Info("processor.reconcile.ok",
		"documents", len(docs),
		"guides", len(report.Guides),
		"forms", len(report.Forms),
		"rows", report.Summary.Total,
		"ok", report.Summary.OK,
		"discrepancies", report.Summary.Discrepancies,
		"diagnostics", len(report.Diagnostics),
		"elapsed_ms", report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	)
	return report, nil
}

// processDocument never fails for document-level problems; the returned
// error is reserved for conditions that must stop the whole run.
func (p *Processor) processDocument(ctx context.Context, doc ingest.Document, logger *slog.Logger) (res docResult, err error) {
	res = docResult{stat: DocumentStat{Path: doc.Path, Kind: doc.Kind}}
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("processor.document.panic", "path", doc.Path, "panic", rec)
			res.guides, res.forms = nil, nil
			res.stat.Records = 0
			res.stat.Failed = true
			res.diags = append(res.diags, Diagnostic{
				Path:    doc.Path,
				Kind:    res.stat.Kind,
				Code:    common.CodeInternal,
				Message: fmt.Sprintf("panic: %v", rec),
			})
			err = nil
		}
	}()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	text, err := p.extractor.Extract(ctx, doc.Path)
	if err != nil {
		if errors.Is(err, common.ErrExtractorUnavailable) {
			return res, err
		}
		logger.Error("processor.extract.failed", "path", doc.Path, "error", err)
		res.stat.Failed = true
		res.diags = append(res.diags, diagnosticFor(doc.Path, doc.Kind, err))
		return res, nil
	}
	res.stat.Method = text.Method
	res.stat.Pages = text.Pages
	for _, w := range text.Warnings {
		logger.Debug("processor.extract.warning", "path", doc.Path, "warning", w)
	}

	kind := doc.Kind
	if kind == constants.DocUnknown {
		kind = ingest.Classify(doc.Path, text.Text)
		res.stat.Kind = kind
	}
	source := filepath.Base(doc.Path)

	switch kind {
	case constants.DocWaybill:
		wr := waybill.ExtractDocument(text.Text, source)
		res.guides = wr.Records
		res.stat.Records = len(wr.Records)
		logger.Info("processor.waybill.ok",
			"path", doc.Path,
			"blocks", wr.Blocks,
			"records", len(wr.Records),
			"skipped_blocks", wr.Skipped,
		)
	case constants.DocForm:
		res.forms = form.Parse(text.Text, source)
		res.stat.Records = len(res.forms)
		logger.Info("processor.form.ok", "path", doc.Path, "records", len(res.forms))
	default:
		res.stat.Failed = true
		res.diags = append(res.diags, Diagnostic{
			Path:    doc.Path,
			Kind:    constants.DocUnknown,
			Code:    common.CodeUnsupported,
			Message: "document is neither a waybill nor a movement form",
		})
	}
	return res, nil
}

func kindOfSide(s reconcile.Side) constants.DocKind {
	if s == reconcile.SideForm {
		return constants.DocForm
	}
	return constants.DocWaybill
}

// SortDiagnostics orders diagnostics by path, then code.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Path != diags[j].Path {
			return diags[i].Path < diags[j].Path
		}
		return diags[i].Code < diags[j].Code
	})
}
