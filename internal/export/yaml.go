package export

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
	"github.com/joseph-ayodele/waybill-recon/internal/pipeline"
)

type yamlDocument struct {
	Document `yaml:",inline"`
	Rows     []yaml.MapSlice `yaml:"rows"`
}

// WriteYAML writes the report as YAML; row keys keep column order.
func (s *Service) WriteYAML(w io.Writer, report *pipeline.Report) error {
	cols := entity.ColumnKeys()
	rows := make([]yaml.MapSlice, len(report.Rows))
	for i, r := range report.Rows {
		vals := r.Values()
		item := make(yaml.MapSlice, len(cols))
		for j, k := range cols {
			item[j] = yaml.MapItem{Key: k, Value: vals[j]}
		}
		rows[i] = item
	}
	data, err := yaml.MarshalWithOptions(yamlDocument{Document: s.document(report), Rows: rows},
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return common.WrapError(err, "marshal yaml")
	}
	_, err = w.Write(data)
	return err
}
