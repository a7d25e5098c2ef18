package entity

// Column is one declared report column.
type Column struct {
	Key    string
	Header string
	Width  float64
}

var columns = []Column{
	{Key: "status", Header: "Estado Conciliación", Width: 30},
	{Key: "tracking_id", Header: "Tracking", Width: 18},
	{Key: "guide_ship_date", Header: "Fecha Guía", Width: 12},
	{Key: "form_ship_date", Header: "Fecha FMM", Width: 12},
	{Key: "guide_country", Header: "País Destino Guía", Width: 24},
	{Key: "form_country", Header: "País Destino FMM", Width: 24},
	{Key: "guide_form_reference", Header: "FMM Guía", Width: 14},
	{Key: "form_number", Header: "FMM Formulario", Width: 14},
	{Key: "guide_net_weight", Header: "Peso Neto Guía", Width: 12},
	{Key: "guide_sender", Header: "Remitente Guía", Width: 20},
	{Key: "form_user", Header: "Usuario FMM", Width: 20},
	{Key: "guide_invoices", Header: "Facturas Guía", Width: 30},
	{Key: "form_invoices", Header: "Facturas FMM", Width: 30},
	{Key: "carrier", Header: "Transportadora", Width: 12},
	{Key: "guide_file", Header: "Archivo Guía", Width: 30},
	{Key: "form_file", Header: "Archivo FMM", Width: 30},
}

// Columns returns the fixed report column set in display order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// ColumnKeys returns the column keys in display order.
func ColumnKeys() []string {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	return keys
}

// Values renders the row against Columns(); missing sides render as "".
func (r ReconciliationRow) Values() []string {
	g := ShipmentRecord{}
	if r.Guide != nil {
		g = *r.Guide
	}
	f := FormRecord{}
	if r.Form != nil {
		f = *r.Form
	}
	return []string{
		r.Status.Label(),
		r.TrackingID,
		g.ShipDate,
		f.ShipDate,
		g.DestinationCountry,
		f.DestinationCountry,
		g.FormReference,
		f.FormNumber,
		g.NetWeight,
		g.SenderName,
		f.UserName,
		g.Invoices,
		f.Invoices,
		string(g.Carrier),
		g.SourceFile,
		f.SourceFile,
	}
}

// Record renders the row as column key -> value; every key is always present.
func (r ReconciliationRow) Record() map[string]string {
	vals := r.Values()
	out := make(map[string]string, len(columns))
	for i, c := range columns {
		out[c.Key] = vals[i]
	}
	return out
}
