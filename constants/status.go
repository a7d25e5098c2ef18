package constants

// MatchOrigin tags which side(s) of the join a tracking id came from.
type MatchOrigin string

const (
	OriginGuideOnly MatchOrigin = "guide-only"
	OriginFormOnly  MatchOrigin = "form-only"
	OriginBoth      MatchOrigin = "both"
)

// StatusKind is the reconciliation verdict for one row.
type StatusKind string

// Stable values (exported in reports as-is).
const (
	StatusOK          StatusKind = "OK"
	StatusOnlyGuide   StatusKind = "only-guide"
	StatusOnlyForm    StatusKind = "only-form"
	StatusDiscrepancy StatusKind = "discrepancy"
)

// Field names a compared semantic field.
type Field string

const (
	FieldShipDate   Field = "ship_date"
	FieldCountry    Field = "destination_country"
	FieldFormRef    Field = "form_reference"
	FieldSender     Field = "sender_name"
	FieldInvoices   Field = "invoices"
	FieldNetWeight  Field = "net_weight"
	FieldTrackingID Field = "tracking_id"
)

// ComparedFields is the fixed comparison set, in diff order.
var ComparedFields = []Field{
	FieldShipDate,
	FieldCountry,
	FieldFormRef,
	FieldSender,
	FieldInvoices,
}

var fieldLabels = map[Field]string{
	FieldShipDate:   "Fecha",
	FieldCountry:    "País",
	FieldFormRef:    "FMM",
	FieldSender:     "Remitente",
	FieldInvoices:   "Facturas",
	FieldNetWeight:  "Peso Neto",
	FieldTrackingID: "Tracking",
}

// Label returns the short report label for a field.
func (f Field) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}
