package entity

import (
	"strings"

	"github.com/joseph-ayodele/waybill-recon/constants"
)

// Status is the derived verdict of a ReconciliationRow.
type Status struct {
	Kind   constants.StatusKind `json:"kind" yaml:"kind"`
	Fields []constants.Field    `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// String renders "OK", "only-guide", "only-form" or "discrepancy(ship_date,invoices)".
func (s Status) String() string {
	if s.Kind != constants.StatusDiscrepancy {
		return string(s.Kind)
	}
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = string(f)
	}
	return string(s.Kind) + "(" + strings.Join(names, ",") + ")"
}

// Label is the human form used in reports.
func (s Status) Label() string {
	switch s.Kind {
	case constants.StatusOK:
		return "OK"
	case constants.StatusOnlyGuide:
		return "SOLO EN GUÍA"
	case constants.StatusOnlyForm:
		return "SOLO EN FMM"
	}
	labels := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		labels[i] = f.Label()
	}
	return "Diferencia en: " + strings.Join(labels, ", ")
}

// ReconciliationRow is the outer-join result for one tracking id.
type ReconciliationRow struct {
	TrackingID string                `json:"tracking_id" yaml:"tracking_id"`
	Guide      *ShipmentRecord       `json:"guide,omitempty" yaml:"guide,omitempty"`
	Form       *FormRecord           `json:"form,omitempty" yaml:"form,omitempty"`
	Origin     constants.MatchOrigin `json:"match_origin" yaml:"match_origin"`
	FieldDiffs []constants.Field     `json:"field_diffs" yaml:"field_diffs"`
	Status     Status                `json:"status" yaml:"status"`
}
