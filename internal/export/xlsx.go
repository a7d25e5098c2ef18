package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
	"github.com/joseph-ayodele/waybill-recon/internal/pipeline"
)

const (
	SheetRows        = "Conciliación"
	SheetSummary     = "Resumen"
	SheetDiagnostics = "Diagnósticos"
)

// XLSX returns the report as a workbook: one row per tracking id on the
// first sheet, the counts on "Resumen", and skipped documents on
// "Diagnósticos".
func (s *Service) XLSX(report *pipeline.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRows); err != nil {
		return nil, err
	}
	for _, sheet := range []string{SheetSummary, SheetDiagnostics} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(SheetRows)
	f.SetActiveSheet(activeIndex)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	cols := entity.Columns()
	headers := make([]any, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	writeRow(f, SheetRows, 1, headers)
	for i, r := range report.Rows {
		vals := r.Values()
		row := make([]any, len(vals))
		for j, v := range vals {
			row[j] = v
		}
		writeRow(f, SheetRows, i+2, row)
	}
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	_ = f.SetCellStyle(SheetRows, "A1", last, bold)
	for i, c := range cols {
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetRows, name, name, c.Width)
	}
	_ = f.SetPanes(SheetRows, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for i, kv := range summaryLines(report) {
		writeRow(f, SheetSummary, i+1, []any{kv.label, kv.value})
	}
	_ = f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(summaryLines(report))), bold)
	_ = f.SetColWidth(SheetSummary, "A", "A", 34)
	_ = f.SetColWidth(SheetSummary, "B", "B", 40)

	writeRow(f, SheetDiagnostics, 1, []any{"Archivo", "Tipo", "Código", "Mensaje"})
	for i, d := range report.Diagnostics {
		writeRow(f, SheetDiagnostics, i+2, []any{d.Path, string(d.Kind), d.Code, truncate(d.Message, 500)})
	}
	_ = f.SetCellStyle(SheetDiagnostics, "A1", "D1", bold)
	_ = f.SetColWidth(SheetDiagnostics, "A", "A", 60)
	_ = f.SetColWidth(SheetDiagnostics, "C", "C", 22)
	_ = f.SetColWidth(SheetDiagnostics, "D", "D", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.WrapError(err, "xlsx write")
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

type summaryLine struct {
	label string
	value any
}

// summaryLines mirrors the console summary, plus run metadata.
func summaryLines(report *pipeline.Report) []summaryLine {
	s := report.Summary
	return []summaryLine{
		{"Total de guías en PDFs", s.GuideRecords},
		{"Total de guías en FMMs", s.FormRecords},
		{"Coincidencias perfectas (OK)", s.OK},
		{"Con diferencias", s.Discrepancies},
		{"Solo en guías", s.OnlyGuide},
		{"Solo en FMM", s.OnlyForm},
		{"Tracking duplicados", len(s.Duplicates)},
		{"Documentos", len(report.Documents)},
		{"Diagnósticos", len(report.Diagnostics)},
		{"Ejecución", report.RunID},
		{"Finalizada", report.FinishedAt.Format(time.RFC3339)},
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
