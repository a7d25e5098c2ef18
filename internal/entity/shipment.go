package entity

import "github.com/joseph-ayodele/waybill-recon/constants"

// ShipmentRecord is one shipment extracted from a carrier waybill.
type ShipmentRecord struct {
	TrackingID         string            `json:"tracking_id" yaml:"tracking_id"`
	ShipDate           string            `json:"ship_date" yaml:"ship_date"`
	DestinationCountry string            `json:"destination_country" yaml:"destination_country"`
	FormReference      string            `json:"form_reference" yaml:"form_reference"`
	NetWeight          string            `json:"net_weight" yaml:"net_weight"`
	SenderName         string            `json:"sender_name" yaml:"sender_name"`
	Invoices           string            `json:"invoices" yaml:"invoices"`
	Carrier            constants.Carrier `json:"carrier" yaml:"carrier"`
	SourceFile         string            `json:"source_file" yaml:"source_file"`
	Found              FieldSet          `json:"-" yaml:"-"`
}

// Value returns the stored string for a compared field.
func (r ShipmentRecord) Value(f constants.Field) string {
	switch f {
	case constants.FieldTrackingID:
		return r.TrackingID
	case constants.FieldShipDate:
		return r.ShipDate
	case constants.FieldCountry:
		return r.DestinationCountry
	case constants.FieldFormRef:
		return r.FormReference
	case constants.FieldSender:
		return r.SenderName
	case constants.FieldInvoices:
		return r.Invoices
	case constants.FieldNetWeight:
		return r.NetWeight
	}
	return ""
}

// Lookup returns the value with its presence flag.
func (r ShipmentRecord) Lookup(f constants.Field) FieldValue {
	return FieldValue{Value: r.Value(f), Present: r.Found.Has(f)}
}
