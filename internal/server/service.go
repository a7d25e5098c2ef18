package server

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/export"
	"github.com/joseph-ayodele/waybill-recon/internal/form"
	"github.com/joseph-ayodele/waybill-recon/internal/ingest"
	"github.com/joseph-ayodele/waybill-recon/internal/pipeline"
	"github.com/joseph-ayodele/waybill-recon/internal/waybill"
)

// ReconcileService serves reconciliation runs over gRPC.
type ReconcileService struct {
	proc     *pipeline.Processor
	ingestor ingest.Ingestor
	exporter *export.Service
	logger   *slog.Logger
}

var _ ReconcileServiceServer = (*ReconcileService)(nil)

func NewReconcileService(proc *pipeline.Processor, ing ingest.Ingestor, exp *export.Service, logger *slog.Logger) *ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}
	if exp == nil {
		exp = export.NewService(logger)
	}
	return &ReconcileService{proc: proc, ingestor: ing, exporter: exp, logger: logger}
}

func (s *ReconcileService) Reconcile(ctx context.Context, req *ReconcileRequest) (*ReconcileResponse, error) {
	start := time.Now()
	v := common.NewValidator().Field("paths", req.Paths, common.Required)
	if req.Format != "" {
		v.Field("format", req.Format, common.OneOf(export.Formats()...))
	}
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	for _, p := range req.Paths {
		if _, err := os.Stat(p); err != nil {
			return nil, common.InvalidArgumentErrorf("path %q: %v", p, err)
		}
	}

	ctx = common.WithRunID(ctx, common.NewRunID())
	report, err := s.proc.RunPaths(ctx, s.ingestor, req.Paths...)
	if err != nil {
		s.logger.Error("server.reconcile.failed", "paths", strings.Join(req.Paths, ","), "error", err)
		return nil, common.StatusError(err)
	}

	resp := &ReconcileResponse{
		RunID:       report.RunID,
		Summary:     report.Summary,
		Rows:        make([]map[string]string, len(report.Rows)),
		Diagnostics: report.Diagnostics,
	}
	for i, r := range report.Rows {
		resp.Rows[i] = r.Record()
	}
	if req.Format != "" {
		var buf bytes.Buffer
		if err := s.exporter.Write(&buf, req.Format, report); err != nil {
			return nil, common.StatusError(err)
		}
		resp.Rendered = buf.Bytes()
	}

	s.logger.Info("server.reconcile.ok",
		"run_id", report.RunID,
		"rows", len(resp.Rows),
		"diagnostics", len(resp.Diagnostics),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func (s *ReconcileService) ParseText(_ context.Context, req *ParseTextRequest) (*ParseTextResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, common.InvalidArgumentError("text is required")
	}
	kind := req.Kind
	if kind == constants.DocUnknown {
		kind = ingest.Classify(req.Name, req.Text)
	}
	resp := &ParseTextResponse{Kind: kind}
	switch kind {
	case constants.DocWaybill:
		resp.Shipments = waybill.ExtractDocument(req.Text, req.Name).Records
	case constants.DocForm:
		resp.Forms = form.Parse(req.Text, req.Name)
	default:
		return nil, common.InvalidArgumentError(fmt.Sprintf("cannot tell document kind %q", kind))
	}
	return resp, nil
}
