package pipeline

import (
	"context"

	"github.com/joseph-ayodele/waybill-recon/internal/ingest"
)

// RunPaths collects documents under roots with ing and runs them. Files the
// ingestor skipped are reported as diagnostics.
func (p *Processor) RunPaths(ctx context.Context, ing ingest.Ingestor, roots ...string) (*Report, error) {
	collected, err := ing.Collect(ctx, roots...)
	if err != nil {
		return nil, err
	}
	report, err := p.Run(ctx, collected.Documents)
	if err != nil {
		return nil, err
	}
	if len(collected.Skipped) > 0 {
		report.Diagnostics = append(report.Diagnostics, IngestDiagnostics(collected.Skipped)...)
		SortDiagnostics(report.Diagnostics)
	}
	return report, nil
}
