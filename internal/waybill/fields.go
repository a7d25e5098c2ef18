package waybill

import (
	"regexp"
	"sort"
	"strings"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/normalize"
)

const countryUSA = "UNITED STATES OF AMERICA"

var (
	reCountryCode = regexp.MustCompile(`\(([A-Z]{2})\)`)
	reInvoiceINV  = regexp.MustCompile(`INV[:\s]*([A-Z0-9]+)`)
	reInvoiceZF   = regexp.MustCompile(`\b(ZFFE\d+|ZFFV\d+)\b`)
	reDHLRef      = regexp.MustCompile(`#(\d{6,})`)
	reNetWeight   = regexp.MustCompile(`PN[:\s]*([\d.,]+)`)
	reFormRef     = regexp.MustCompile(`FMM(\d+)|FMM\s*No\.\s*(\d+)|F\.M\.M\.\s*(\d+)`)
)

// TrackingID applies the carrier's tracking rule. Unknown carriers yield "".
func TrackingID(text string, c constants.Carrier) string {
	r, ok := RulesFor(c)
	if !ok {
		return ""
	}
	return r.Tracking(text)
}

// ShipDate applies the carrier's date rule and renders YYYY-MM-DD.
func ShipDate(text string, c constants.Carrier) string {
	r, ok := RulesFor(c)
	if !ok {
		return ""
	}
	return r.ShipDate(text)
}

// DestinationCountry prefers the spelled-out US name over a bracketed code.
func DestinationCountry(text string) string {
	if strings.Contains(text, countryUSA) {
		return countryUSA
	}
	if m := reCountryCode.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// Invoices collects every invoice token in text plus masterRef (when set),
// sorted and de-duplicated, joined with ", ".
func Invoices(text, masterRef string) string {
	set := make(map[string]struct{})
	for _, m := range reInvoiceINV.FindAllStringSubmatch(text, -1) {
		set[m[1]] = struct{}{}
	}
	for _, m := range reInvoiceZF.FindAllStringSubmatch(text, -1) {
		set[m[1]] = struct{}{}
	}
	if masterRef != "" {
		set[masterRef] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for inv := range set {
		out = append(out, inv)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

// DHLReference returns the first "#<6+ digits>" reference in text.
func DHLReference(text string) string {
	if m := reDHLRef.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// NetWeight returns the "PN" weight formatted with two decimals when numeric.
func NetWeight(text string) string {
	if m := reNetWeight.FindStringSubmatch(text); m != nil {
		return normalize.Weight(m[1])
	}
	return ""
}

// FormReference returns the first movement-form reference as FMM<digits>.
func FormReference(text string) string {
	m := reFormRef.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	for _, digits := range m[1:] {
		if digits != "" {
			return "FMM" + digits
		}
	}
	return ""
}

// SenderName returns the canonical company name when text carries it.
func SenderName(text string) string {
	if normalize.IsSender(text) {
		return normalize.SenderCanonical
	}
	return ""
}
