package export

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/pipeline"
)

// WriteTable prints the summary, then every row that is not OK.
func WriteTable(w io.Writer, report *pipeline.Report) error {
	summary := tablewriter.NewTable(w)
	summary.Header("Resumen de conciliación", "")
	for _, kv := range summaryLines(report)[:6] {
		if err := summary.Append(kv.label, fmt.Sprint(kv.value)); err != nil {
			return err
		}
	}
	if err := summary.Render(); err != nil {
		return err
	}

	var pending [][]any
	for _, r := range report.Rows {
		if r.Status.Kind == constants.StatusOK {
			continue
		}
		g, f := "", ""
		if r.Guide != nil {
			g = r.Guide.SourceFile
		}
		if r.Form != nil {
			f = r.Form.SourceFile
		}
		pending = append(pending, []any{r.TrackingID, r.Status.Label(), g, f})
	}
	if len(pending) == 0 && len(report.Diagnostics) == 0 {
		return nil
	}

	if len(pending) > 0 {
		fmt.Fprintln(w)
		rows := tablewriter.NewTable(w)
		rows.Header("Tracking", "Estado", "Archivo Guía", "Archivo FMM")
		for _, p := range pending {
			if err := rows.Append(p...); err != nil {
				return err
			}
		}
		if err := rows.Render(); err != nil {
			return err
		}
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprintln(w)
		diags := tablewriter.NewTable(w)
		diags.Header("Archivo", "Código", "Mensaje")
		for _, d := range report.Diagnostics {
			if err := diags.Append(d.Path, d.Code, truncate(d.Message, 80)); err != nil {
				return err
			}
		}
		return diags.Render()
	}
	return nil
}
