package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/waybill-recon/constants"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
		label  string
	}{
		{"ok", Status{Kind: constants.StatusOK}, "OK", "OK"},
		{"guide", Status{Kind: constants.StatusOnlyGuide}, "only-guide", "SOLO EN GUÍA"},
		{"form", Status{Kind: constants.StatusOnlyForm}, "only-form", "SOLO EN FMM"},
		{
			"diff",
			Status{Kind: constants.StatusDiscrepancy, Fields: []constants.Field{constants.FieldCountry, constants.FieldInvoices}},
			"discrepancy(destination_country,invoices)",
			"Diferencia en: País, Facturas",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
			assert.Equal(t, tt.label, tt.status.Label())
		})
	}
}

func TestRecordHasEveryColumn(t *testing.T) {
	rows := []ReconciliationRow{
		{TrackingID: "T1", Origin: constants.OriginGuideOnly, Guide: &ShipmentRecord{TrackingID: "T1"}, Status: Status{Kind: constants.StatusOnlyGuide}},
		{TrackingID: "T2", Origin: constants.OriginFormOnly, Form: &FormRecord{TrackingID: "T2"}, Status: Status{Kind: constants.StatusOnlyForm}},
		{TrackingID: "T3"},
	}
	for _, r := range rows {
		rec := r.Record()
		require.Len(t, rec, len(Columns()))
		for _, k := range ColumnKeys() {
			_, ok := rec[k]
			assert.True(t, ok, "missing column %s", k)
		}
		assert.Equal(t, r.TrackingID, rec["tracking_id"])
	}
}

func TestLookupPresence(t *testing.T) {
	rec := ShipmentRecord{TrackingID: "T1", DestinationCountry: "", Found: FieldSet(0).With(constants.FieldTrackingID)}
	assert.Equal(t, FieldValue{Value: "T1", Present: true}, rec.Lookup(constants.FieldTrackingID))
	assert.Equal(t, FieldValue{Value: "", Present: false}, rec.Lookup(constants.FieldCountry))

	form := FormRecord{FormNumber: "552233", Found: FieldSet(0).With(constants.FieldFormRef)}
	assert.Equal(t, "552233", form.Value(constants.FieldFormRef))
	assert.True(t, form.Lookup(constants.FieldFormRef).Present)
}
