package entity

import "github.com/joseph-ayodele/waybill-recon/constants"

// FieldValue is an extracted value plus whether its source pattern matched.
// An empty Value with Present=false means "not found", Present=true means the
// source carried an explicitly empty value.
type FieldValue struct {
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

// FieldSet records which fields were resolved from the source text.
type FieldSet uint16

var fieldBits = map[constants.Field]FieldSet{
	constants.FieldTrackingID: 1 << 0,
	constants.FieldShipDate:   1 << 1,
	constants.FieldCountry:    1 << 2,
	constants.FieldFormRef:    1 << 3,
	constants.FieldSender:     1 << 4,
	constants.FieldInvoices:   1 << 5,
	constants.FieldNetWeight:  1 << 6,
}

// With returns s with f marked as resolved.
func (s FieldSet) With(f constants.Field) FieldSet { return s | fieldBits[f] }

// Has reports whether f was resolved.
func (s FieldSet) Has(f constants.Field) bool {
	bit, ok := fieldBits[f]
	return ok && s&bit != 0
}
