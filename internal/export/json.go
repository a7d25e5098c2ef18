package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
	"github.com/joseph-ayodele/waybill-recon/internal/pipeline"
	"github.com/joseph-ayodele/waybill-recon/internal/reconcile"
)

// Document is the machine-readable report shape shared by JSON and YAML.
type Document struct {
	RunID       string                  `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time               `json:"generated_at" yaml:"generated_at"`
	Columns     []string                `json:"columns" yaml:"columns"`
	Summary     reconcile.Summary       `json:"summary" yaml:"summary"`
	Rows        []map[string]string     `json:"rows" yaml:"-"`
	Documents   []pipeline.DocumentStat `json:"documents" yaml:"documents"`
	Diagnostics []pipeline.Diagnostic   `json:"diagnostics" yaml:"diagnostics"`
}

func (s *Service) document(report *pipeline.Report) Document {
	rows := make([]map[string]string, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = r.Record()
	}
	docs := report.Documents
	if docs == nil {
		docs = []pipeline.DocumentStat{}
	}
	diags := report.Diagnostics
	if diags == nil {
		diags = []pipeline.Diagnostic{}
	}
	return Document{
		RunID:       report.RunID,
		GeneratedAt: s.now().UTC(),
		Columns:     entity.ColumnKeys(),
		Summary:     report.Summary,
		Rows:        rows,
		Documents:   docs,
		Diagnostics: diags,
	}
}

// WriteJSON writes the report as indented JSON after checking it against
// ReportJSONSchema.
func (s *Service) WriteJSON(w io.Writer, report *pipeline.Report) error {
	data, err := json.MarshalIndent(s.document(report), "", "  ")
	if err != nil {
		return common.WrapError(err, "marshal report")
	}
	if err := ValidateReportJSON(data); err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ReportJSONSchema describes Document: every row carries every column key.
func ReportJSONSchema() map[string]any {
	rowProps := map[string]any{}
	keys := entity.ColumnKeys()
	for _, k := range keys {
		rowProps[k] = map[string]any{"type": "string"}
	}
	count := map[string]any{"type": "integer", "minimum": 0}
	return map[string]any{
		"type":     "object",
		"required": []string{"run_id", "generated_at", "columns", "summary", "rows", "diagnostics"},
		"properties": map[string]any{
			"run_id":       map[string]any{"type": "string"},
			"generated_at": map[string]any{"type": "string"},
			"columns": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"summary": map[string]any{
				"type":     "object",
				"required": []string{"total", "ok", "discrepancies", "only_guide", "only_form", "guide_records", "form_records"},
				"properties": map[string]any{
					"total":         count,
					"ok":            count,
					"discrepancies": count,
					"only_guide":    count,
					"only_form":     count,
					"guide_records": count,
					"form_records":  count,
					"duplicates":    map[string]any{"type": "array"},
				},
			},
			"rows": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           rowProps,
					"required":             keys,
				},
			},
			"documents": map[string]any{"type": "array"},
			"diagnostics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"path", "code", "message"},
				},
			},
		},
	}
}

// ValidateReportJSON validates data against ReportJSONSchema.
func ValidateReportJSON(data []byte) error {
	b, err := json.Marshal(ReportJSONSchema())
	if err != nil {
		return common.WrapError(err, "marshal schema")
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("report.json", bytes.NewReader(b)); err != nil {
		return common.WrapError(err, "add schema")
	}
	schema, err := compiler.Compile("report.json")
	if err != nil {
		return common.WrapError(err, "compile schema")
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return common.WrapError(err, "unmarshal report")
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: report does not match schema: %v", common.ErrValidation, err)
	}
	return nil
}
