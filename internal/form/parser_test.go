package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/normalize"
)

const declaration = "ZONA FRANCA DE BOGOTA,,,\r\n" +
	"FORMULARIO No. No. 552233,,FECHA 2024/03/14\r\n" +
	"1. USUARIO: SOLIDEO SAS,NIT 900123,\r\n" +
	"22. País Destino:, ,249 ESTADOS UNIDOS,\r\n" +
	"FORMULARIO No. No. 999999\r\n" +
	"DETALLE DE LOS ANEXOS,,,\r\n" +
	"6,FACTURA COMERCIAL,ZFFE100,2024/03/10\r\n" +
	"6,FACTURA DE SERVICIO,ZFFV900,2024/03/11\r\n" +
	"6,FACTURA COMERCIAL,ZFFV200,2024/03/12\r\n" +
	"127,GUIAS DE TRAFICO POSTAL,883712345678,2024/03/15\r\n" +
	"127,GUIAS DE TRAFICO POSTAL,883700000001,\r\n" +
	"127,GUIAS DE TRAFICO POSTAL,12345,2024/03/15\r\n"

func TestParseHeader(t *testing.T) {
	h := ParseHeader(Lines(declaration))
	assert.Equal(t, "552233", h.FormNumber, "first form number wins")
	assert.Equal(t, normalize.SenderCanonical, h.UserName)
	assert.Equal(t, "ESTADOS UNIDOS", h.DestinationCountry)
	assert.True(t, h.Found.Has(constants.FieldCountry))
}

func TestParseHeaderEmptyValuesKeepLooking(t *testing.T) {
	lines := []string{
		"1. USUARIO: ,",
		"22. Pais Destino:, , ,",
		"1. USUARIO: ACME LTDA, NIT",
		"22. Pa\u00c3\u00ads Destino: 169 COLOMBIA", // UTF-8 read as latin-1
	}
	h := ParseHeader(lines)
	assert.Equal(t, "ACME LTDA", h.UserName)
	assert.Equal(t, "COLOMBIA", h.DestinationCountry)
	assert.Equal(t, "", h.FormNumber)
	assert.False(t, h.Found.Has(constants.FieldFormRef))
}

func TestParseInvoiceLastWins(t *testing.T) {
	assert.Equal(t, "ZFFV200", ParseInvoice(Lines(declaration)))

	before := []string{"6,FACTURA,ZFFE1", "DETALLE DE LOS ANEXOS"}
	assert.Equal(t, "", ParseInvoice(before), "rows before the attachment section are ignored")

	service := []string{"DETALLE DE LOS ANEXOS", "6,Servicio de transporte,ZFFE5"}
	assert.Equal(t, "", ParseInvoice(service))
}

func TestParse(t *testing.T) {
	recs := Parse(declaration, "fmm.csv")
	require.Len(t, recs, 2)

	first := recs[0]
	assert.Equal(t, "883712345678", first.TrackingID)
	assert.Equal(t, "552233", first.FormNumber)
	assert.Equal(t, "2024-03-15", first.ShipDate)
	assert.Equal(t, "ZFFV200", first.Invoices)
	assert.Equal(t, "ESTADOS UNIDOS", first.DestinationCountry)
	assert.Equal(t, "fmm.csv", first.SourceFile)
	assert.True(t, first.Lookup(constants.FieldShipDate).Present)

	second := recs[1]
	assert.Equal(t, "883700000001", second.TrackingID)
	assert.Equal(t, "", second.ShipDate)
	assert.False(t, second.Lookup(constants.FieldShipDate).Present)
}

func TestParseMinimalDeclaration(t *testing.T) {
	text := strings.Join([]string{
		"FORMULARIO No. No. 552233",
		"DETALLE DE LOS ANEXOS",
		"127,GUIAS DE TRAFICO POSTAL,883712345678,2024/03/15",
	}, "\n")
	recs := Parse(text, "")
	require.Len(t, recs, 1)
	assert.Equal(t, "552233", recs[0].FormNumber)
	assert.Equal(t, "883712345678", recs[0].TrackingID)
	assert.Equal(t, "2024-03-15", recs[0].ShipDate)
}

func TestParseWithoutRows(t *testing.T) {
	assert.Empty(t, Parse("FORMULARIO No. No. 1\nno attachments", "x.csv"))
	assert.Empty(t, Parse("", "x.csv"))
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "first-wins", FirstWins.String())
	assert.Equal(t, "last-wins", LastWins.String())
}
