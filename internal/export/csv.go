package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
)

// WriteCSV writes one header line then one line per row, in column order.
func WriteCSV(w io.Writer, rows []entity.ReconciliationRow) error {
	cw := csv.NewWriter(w)
	cols := entity.Columns()
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	if err := cw.Write(headers); err != nil {
		return common.WrapError(err, "csv header")
	}
	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("csv row %s: %w", r.TrackingID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
