package entity

import "github.com/joseph-ayodele/waybill-recon/constants"

// FormRecord is one waybill row referenced by a movement form (FMM).
// FormNumber, UserName and DestinationCountry come from the form header and
// are shared by every record of the same document.
type FormRecord struct {
	TrackingID         string   `json:"tracking_id" yaml:"tracking_id"`
	ShipDate           string   `json:"ship_date" yaml:"ship_date"`
	DestinationCountry string   `json:"destination_country" yaml:"destination_country"`
	FormNumber         string   `json:"form_number" yaml:"form_number"`
	UserName           string   `json:"user_name" yaml:"user_name"`
	Invoices           string   `json:"invoices" yaml:"invoices"`
	SourceFile         string   `json:"source_file" yaml:"source_file"`
	Found              FieldSet `json:"-" yaml:"-"`
}

// Value returns the stored string for a compared field. FormNumber answers
// for form_reference and UserName for sender_name.
func (r FormRecord) Value(f constants.Field) string {
	switch f {
	case constants.FieldTrackingID:
		return r.TrackingID
	case constants.FieldShipDate:
		return r.ShipDate
	case constants.FieldCountry:
		return r.DestinationCountry
	case constants.FieldFormRef:
		return r.FormNumber
	case constants.FieldSender:
		return r.UserName
	case constants.FieldInvoices:
		return r.Invoices
	}
	return ""
}

// Lookup returns the value with its presence flag.
func (r FormRecord) Lookup(f constants.Field) FieldValue {
	return FieldValue{Value: r.Value(f), Present: r.Found.Has(f)}
}
