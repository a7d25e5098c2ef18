package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
	"github.com/joseph-ayodele/waybill-recon/internal/normalize"
)

func guide(id string) entity.ShipmentRecord {
	return entity.ShipmentRecord{
		TrackingID:         id,
		ShipDate:           "2024-03-15",
		DestinationCountry: "US",
		FormReference:      "FMM552233",
		SenderName:         "SOLIDEO S.A.S.",
		Invoices:           "ZFFE100",
		Carrier:            constants.FedEx,
		SourceFile:         "a.pdf",
	}
}

func form(id string) entity.FormRecord {
	return entity.FormRecord{
		TrackingID:         id,
		ShipDate:           "2024-03-15",
		DestinationCountry: "ESTADOS UNIDOS",
		FormNumber:         "552233",
		UserName:           "SOLIDEO S.A.S.",
		Invoices:           "ZFFE100",
		SourceFile:         "a.csv",
	}
}

func TestReconcileMatchingRecords(t *testing.T) {
	e := NewEngine(nil)
	rows := e.Reconcile([]entity.ShipmentRecord{guide("T1")}, []entity.FormRecord{form("T1")})
	require.Len(t, rows, 1)
	assert.Equal(t, constants.OriginBoth, rows[0].Origin)
	assert.Equal(t, constants.StatusOK, rows[0].Status.Kind)
	assert.Empty(t, rows[0].FieldDiffs)
	assert.Equal(t, "OK", rows[0].Status.Label())
}

func TestReconcileCountryAliases(t *testing.T) {
	g := guide("T1")
	f := form("T1")
	f.DestinationCountry = "UNITED STATES OF AMERICA"
	rows := NewEngine(nil).Reconcile([]entity.ShipmentRecord{g}, []entity.FormRecord{f})
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0].FieldDiffs, constants.FieldCountry)
}

func TestReconcileOneSided(t *testing.T) {
	rows := NewEngine(nil).Reconcile([]entity.ShipmentRecord{guide("T2")}, []entity.FormRecord{form("T3")})
	require.Len(t, rows, 2)

	assert.Equal(t, "T2", rows[0].TrackingID)
	assert.Equal(t, constants.OriginGuideOnly, rows[0].Origin)
	assert.Equal(t, constants.StatusOnlyGuide, rows[0].Status.Kind)
	assert.Nil(t, rows[0].Form)
	assert.Equal(t, "SOLO EN GUÍA", rows[0].Status.Label())

	assert.Equal(t, "T3", rows[1].TrackingID)
	assert.Equal(t, constants.OriginFormOnly, rows[1].Origin)
	assert.Equal(t, constants.StatusOnlyForm, rows[1].Status.Kind)
	assert.Nil(t, rows[1].Guide)
}

func TestReconcileDiffOrder(t *testing.T) {
	g := guide("T1")
	g.Invoices = "ZFFE999"
	g.DestinationCountry = "JP"
	g.ShipDate = ""
	rows := NewEngine(nil).Reconcile([]entity.ShipmentRecord{g}, []entity.FormRecord{form("T1")})
	require.Len(t, rows, 1)
	assert.Equal(t, []constants.Field{constants.FieldShipDate, constants.FieldCountry, constants.FieldInvoices}, rows[0].FieldDiffs)
	assert.Equal(t, constants.StatusDiscrepancy, rows[0].Status.Kind)
	assert.Equal(t, "Diferencia en: Fecha, País, Facturas", rows[0].Status.Label())
	assert.Equal(t, "discrepancy(ship_date,destination_country,invoices)", rows[0].Status.String())
}

func TestReconcileOuterJoinIsComplete(t *testing.T) {
	guides := []entity.ShipmentRecord{guide("C"), guide("A"), guide("B")}
	forms := []entity.FormRecord{form("B"), form("D")}
	rows := NewEngine(nil).Reconcile(guides, forms)

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.TrackingID
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids)
}

func TestReconcileIsDeterministic(t *testing.T) {
	guides := []entity.ShipmentRecord{guide("B"), guide("A")}
	forms := []entity.FormRecord{form("A"), form("C")}
	e := NewEngine(nil)
	assert.Equal(t, e.Reconcile(guides, forms), e.Reconcile(guides, forms))
}

type compared struct {
	date, country, ref, sender, invoices string
}

func (c compared) guide() entity.ShipmentRecord {
	return entity.ShipmentRecord{TrackingID: "T1", ShipDate: c.date, DestinationCountry: c.country,
		FormReference: c.ref, SenderName: c.sender, Invoices: c.invoices}
}

func (c compared) form() entity.FormRecord {
	return entity.FormRecord{TrackingID: "T1", ShipDate: c.date, DestinationCountry: c.country,
		FormNumber: c.ref, UserName: c.sender, Invoices: c.invoices}
}

func TestDiffIsSymmetric(t *testing.T) {
	tests := []struct {
		name string
		a, b compared
		want []constants.Field
	}{
		{
			name: "normalized values match",
			a:    compared{"2024-03-15", "UNITED STATES OF AMERICA", "552233", "SOLIDEO S.A.S.", "ZFFE100"},
			b:    compared{"2024-03-15", "US", "FMM552233", "SOLIDEO S.A.S.", "ZFFE100"},
			want: []constants.Field{},
		},
		{
			name: "every field differs",
			a:    compared{"2024-03-15", "JP", "FMM1", "SOLIDEO S.A.S.", "ZFFE1"},
			b:    compared{"2024-03-16", "ESTADOS UNIDOS", "2", "ACME", "ZFFE2"},
			want: []constants.Field{constants.FieldShipDate, constants.FieldCountry, constants.FieldFormRef,
				constants.FieldSender, constants.FieldInvoices},
		},
		{
			name: "empty against value",
			a:    compared{"", "JAPON", "FMM7", "", "ZFFV9"},
			b:    compared{"2024-01-02", "JAPAN", "7", "SOLIDEO S.A.S.", "ZFFV9"},
			want: []constants.Field{constants.FieldShipDate, constants.FieldSender},
		},
	}
	e := NewEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward := e.Diff(tt.a.guide(), tt.b.form())
			backward := e.Diff(tt.b.guide(), tt.a.form())
			assert.ElementsMatch(t, tt.want, forward)
			assert.ElementsMatch(t, forward, backward)

			rows := e.Reconcile([]entity.ShipmentRecord{tt.b.guide()}, []entity.FormRecord{tt.a.form()})
			require.Len(t, rows, 1)
			assert.ElementsMatch(t, forward, rows[0].FieldDiffs)
		})
	}
}

func TestDiffIgnoresFieldsOutsideComparisonSet(t *testing.T) {
	g := guide("T1")
	g.NetWeight = "12.50"
	assert.Empty(t, NewEngine(nil).Diff(g, form("T1")))
}

func TestRunReportsDuplicates(t *testing.T) {
	second := guide("T1")
	second.SourceFile = "b.pdf"
	second.Invoices = "OTHER"
	dupForm := form("T1")
	dupForm.SourceFile = "b.csv"

	out := NewEngine(nil).Run(
		[]entity.ShipmentRecord{guide("T1"), second, guide("T2")},
		[]entity.FormRecord{form("T1"), dupForm},
	)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "a.pdf", out.Rows[0].Guide.SourceFile, "first record per key is kept")
	assert.Equal(t, constants.StatusOK, out.Rows[0].Status.Kind)
	require.Len(t, out.Summary.Duplicates, 2)
	assert.Equal(t, Duplicate{Side: SideGuide, TrackingID: "T1", KeptFile: "a.pdf", DupFile: "b.pdf"}, out.Summary.Duplicates[0])
	assert.Equal(t, SideForm, out.Summary.Duplicates[1].Side)
}

func TestSummarize(t *testing.T) {
	g := guide("T4")
	g.Invoices = "X"
	rows := NewEngine(normalize.DefaultCountries()).Reconcile(
		[]entity.ShipmentRecord{guide("T1"), guide("T2"), g},
		[]entity.FormRecord{form("T1"), form("T3"), form("T4")},
	)
	s := Summarize(rows)
	assert.Equal(t, Summary{
		Total:         4,
		OK:            1,
		Discrepancies: 1,
		OnlyGuide:     1,
		OnlyForm:      1,
		GuideRecords:  3,
		FormRecords:   3,
	}, s)
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestReconcileEmptyInputs(t *testing.T) {
	rows := NewEngine(nil).Reconcile(nil, nil)
	assert.Empty(t, rows)
}
