package pipeline

import (
	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/ingest"
)

// Diagnostic codes that do not come from an error value.
const (
	CodeDuplicateFile     = "DUPLICATE_FILE"
	CodeDuplicateTracking = "DUPLICATE_TRACKING"
	CodeIngest            = "INGEST_FAILED"
)

// Diagnostic is a non-fatal problem with one input document.
type Diagnostic struct {
	Path    string            `json:"path" yaml:"path"`
	Kind    constants.DocKind `json:"kind" yaml:"kind"`
	Code    string            `json:"code" yaml:"code"`
	Message string            `json:"message" yaml:"message"`
}

func diagnosticFor(path string, kind constants.DocKind, err error) Diagnostic {
	return Diagnostic{Path: path, Kind: kind, Code: common.CodeOf(err), Message: err.Error()}
}

// IngestDiagnostics reports files the ingestor skipped.
func IngestDiagnostics(skipped []ingest.Skipped) []Diagnostic {
	out := make([]Diagnostic, 0, len(skipped))
	for _, s := range skipped {
		d := Diagnostic{Path: s.Path, Code: CodeIngest, Message: s.Err}
		if s.DuplicateOf != "" {
			d.Code = CodeDuplicateFile
			d.Message = "same content as " + s.DuplicateOf
		}
		out = append(out, d)
	}
	return out
}
