package reconcile

import (
	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
)

// Summary counts rows by status. GuideRecords and FormRecords count the
// distinct tracking ids present on each side.
type Summary struct {
	Total         int         `json:"total" yaml:"total"`
	OK            int         `json:"ok" yaml:"ok"`
	Discrepancies int         `json:"discrepancies" yaml:"discrepancies"`
	OnlyGuide     int         `json:"only_guide" yaml:"only_guide"`
	OnlyForm      int         `json:"only_form" yaml:"only_form"`
	GuideRecords  int         `json:"guide_records" yaml:"guide_records"`
	FormRecords   int         `json:"form_records" yaml:"form_records"`
	Duplicates    []Duplicate `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

// Summarize tallies rows.
func Summarize(rows []entity.ReconciliationRow) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		if r.Guide != nil {
			s.GuideRecords++
		}
		if r.Form != nil {
			s.FormRecords++
		}
		switch r.Status.Kind {
		case constants.StatusOK:
			s.OK++
		case constants.StatusDiscrepancy:
			s.Discrepancies++
		case constants.StatusOnlyGuide:
			s.OnlyGuide++
		case constants.StatusOnlyForm:
			s.OnlyForm++
		}
	}
	return s
}
