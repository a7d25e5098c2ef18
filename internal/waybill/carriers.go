package waybill

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/normalize"
)

// Rules holds the carrier-specific parts of field extraction.
type Rules struct {
	Tracking func(text string) string
	ShipDate func(text string) string
	// MasterRef marks carriers whose invoice list includes the reference
	// carried forward from earlier blocks of the same document.
	MasterRef bool
}

var carrierRules = map[constants.Carrier]Rules{
	constants.FedEx: {Tracking: fedexTracking, ShipDate: fedexShipDate},
	constants.DHL:   {Tracking: dhlTracking, ShipDate: dhlShipDate, MasterRef: true},
	constants.UPS:   {Tracking: upsTracking, ShipDate: upsShipDate},
}

// RulesFor returns the rule set for c. Unknown carriers have none.
func RulesFor(c constants.Carrier) (Rules, bool) {
	r, ok := carrierRules[c]
	return r, ok
}

var (
	reFedexCandidate = regexp.MustCompile(`\b(?:\d{4}\s\d{4}\s\d{4}|\d{12})\b`)
	reFedexMaster    = regexp.MustCompile(`Mstr#\s*(\d{4}\s\d{4}\s\d{4}|\d{12})`)
	reDHLWaybill     = regexp.MustCompile(`WAYBILL\s+([\d\s]{10,})`)
	reUPSTracking    = regexp.MustCompile(`\b(COJE[A-Z0-9]{9,})\b`)
	reUPSService     = regexp.MustCompile(`SERVICE\s+([A-Z0-9]{10,})\b`)

	reFedexDate = regexp.MustCompile(`(?i)SHIP DATE:\s*(\d{2}[A-Z]{3}\d{2})`)
	reDHLDate   = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s+[A-Za-z]{3,}`)
	reUPSDate   = regexp.MustCompile(`Date\s+(\d{1,2}\s[A-Za-z]{3}\s\d{4})`)
)

// A multi-piece FedEx label lists the master id next to the piece id; the
// piece id is the first candidate that is not the master.
func fedexTracking(text string) string {
	candidates := reFedexCandidate.FindAllString(text, -1)
	if len(candidates) == 0 {
		return ""
	}
	for i, c := range candidates {
		candidates[i] = stripSpace(c)
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	if m := reFedexMaster.FindStringSubmatch(text); m != nil {
		master := stripSpace(m[1])
		for _, c := range candidates {
			if c != master {
				return c
			}
		}
	}
	return candidates[0]
}

func dhlTracking(text string) string {
	if m := reDHLWaybill.FindStringSubmatch(text); m != nil {
		return stripSpace(m[1])
	}
	return ""
}

func upsTracking(text string) string {
	if m := reUPSTracking.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := reUPSService.FindStringSubmatch(text); m != nil && strings.ContainsAny(m[1], "0123456789") {
		return m[1]
	}
	return ""
}

func fedexShipDate(text string) string { return firstDate(reFedexDate, text) }
func dhlShipDate(text string) string   { return firstDate(reDHLDate, text) }
func upsShipDate(text string) string   { return firstDate(reUPSDate, text) }

func firstDate(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return normalize.Date(m[1])
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
