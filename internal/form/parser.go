// Package form parses customs movement forms (FMM exports) into FormRecords.
package form

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
	"github.com/joseph-ayodele/waybill-recon/internal/normalize"
)

const (
	labelFormNumber  = "FORMULARIO No. No."
	labelUser        = "1. USUARIO:"
	labelAttachments = "DETALLE DE LOS ANEXOS"
	invoiceRowPrefix = "6,"
	waybillRowPrefix = "127,"
	serviceMarker    = "servicio"
	formDateLayout   = "2006/01/02"
)

var (
	reDigits        = regexp.MustCompile(`\d+`)
	reCountryLabel  = regexp.MustCompile(`22\..*Pa.{1,2}s Destino:`)
	reLeadingNumber = regexp.MustCompile(`^\d+\s*`)
	reInvoice       = regexp.MustCompile(`\b(ZFFE\d+|ZFFV\d+)\b`)
	reTracking      = regexp.MustCompile(`\b(8837\d{8})\b`)
	reRowDate       = regexp.MustCompile(`(\d{4}/\d{2}/\d{2})`)
)

// Header holds the document-level values shared by every row.
type Header struct {
	FormNumber         string
	UserName           string
	DestinationCountry string
	Found              entity.FieldSet
}

// Lines splits text into physical lines, tolerating CRLF and bare CR.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// ParseHeader folds the header lines first-wins per field.
func ParseHeader(lines []string) Header {
	number := fold{policy: FirstWins}
	user := fold{policy: FirstWins}
	country := fold{policy: FirstWins}

	for _, line := range lines {
		if !number.done() && strings.Contains(line, labelFormNumber) {
			number.offer(formNumber(line))
		}
		if !user.done() && strings.Contains(line, labelUser) {
			user.offer(userName(line))
		}
		if !country.done() && strings.Contains(line, "22.") && strings.Contains(line, "Destino:") {
			if v, ok := destinationCountry(line); ok {
				country.offer(v)
			}
		}
		if number.done() && user.done() && country.done() {
			break
		}
	}

	h := Header{FormNumber: number.value, UserName: user.value, DestinationCountry: country.value}
	if number.seen {
		h.Found = h.Found.With(constants.FieldFormRef)
	}
	if user.seen {
		h.Found = h.Found.With(constants.FieldSender)
	}
	if country.seen {
		h.Found = h.Found.With(constants.FieldCountry)
	}
	return h
}

func formNumber(line string) string {
	_, after, _ := strings.Cut(line, labelFormNumber)
	return reDigits.FindString(after)
}

// The value runs from the line's first colon to the next comma.
func userName(line string) string {
	_, after, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(after, ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return normalize.Sender(name)
}

func destinationCountry(line string) (string, bool) {
	loc := reCountryLabel.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	for _, part := range strings.Split(line[loc[1]:], ",") {
		if v := strings.TrimSpace(part); v != "" {
			return strings.TrimSpace(reLeadingNumber.ReplaceAllString(v, "")), true
		}
	}
	return "", true
}

// attachmentLines yields the trimmed lines from the first attachment-section
// marker onwards; the marker line itself is included.
func attachmentLines(lines []string) []string {
	for i, line := range lines {
		if strings.Contains(strings.TrimSpace(line), labelAttachments) {
			out := make([]string, 0, len(lines)-i)
			for _, l := range lines[i:] {
				out = append(out, strings.TrimSpace(l))
			}
			return out
		}
	}
	return nil
}

// ParseInvoice folds the attachment invoice rows last-wins. Rows that
// mention a service ("servicio") are not commercial invoices.
func ParseInvoice(lines []string) string {
	inv := fold{policy: LastWins}
	for _, line := range attachmentLines(lines) {
		if !strings.HasPrefix(line, invoiceRowPrefix) {
			continue
		}
		if strings.Contains(strings.ToLower(line), serviceMarker) {
			continue
		}
		if m := reInvoice.FindString(line); m != "" {
			inv.offer(m)
		}
	}
	return inv.value
}

// Parse reads one movement form. Every attached waybill row becomes a
// FormRecord carrying the header values and the form's invoice. A form with
// no rows yields nil.
func Parse(text, source string) []entity.FormRecord {
	lines := Lines(text)
	header := ParseHeader(lines)
	invoice := ParseInvoice(lines)

	var records []entity.FormRecord
	for _, line := range attachmentLines(lines) {
		if !strings.HasPrefix(line, waybillRowPrefix) {
			continue
		}
		tracking := reTracking.FindString(line)
		if tracking == "" {
			continue
		}
		rec := entity.FormRecord{
			TrackingID:         tracking,
			DestinationCountry: header.DestinationCountry,
			FormNumber:         header.FormNumber,
			UserName:           header.UserName,
			Invoices:           invoice,
			SourceFile:         source,
			Found:              header.Found.With(constants.FieldTrackingID),
		}
		if m := reRowDate.FindString(line); m != "" {
			rec.ShipDate = normalize.Date(m, formDateLayout)
		}
		if rec.ShipDate != "" {
			rec.Found = rec.Found.With(constants.FieldShipDate)
		}
		if invoice != "" {
			rec.Found = rec.Found.With(constants.FieldInvoices)
		}
		records = append(records, rec)
	}
	return records
}
