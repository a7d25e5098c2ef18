package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const formRefPrefix = "FMM"

// FormRef strips the "FMM" prefix a waybill puts in front of the form number,
// so it compares against the digits-only value of the form side.
func FormRef(raw string) string {
	return strings.ReplaceAll(raw, formRefPrefix, "")
}

// Weight turns "12,5" into "12.50". Unparseable input is returned untouched.
func Weight(raw string) string {
	if raw == "" {
		return ""
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%.2f", f)
}

// Date layouts in fixed try-order: 15MAR24, 2024-03-15, 15 Mar 2024.
var DateLayouts = []string{"02Jan06", "2006-01-02", "2 Jan 2006"}

const isoDate = "2006-01-02"

// Date parses raw with the first matching layout and renders YYYY-MM-DD.
// With no layouts DateLayouts is used. A token no layout accepts yields "".
func Date(raw string, layouts ...string) string {
	if len(layouts) == 0 {
		layouts = DateLayouts
	}
	clean := strings.Join(strings.Fields(raw), " ")
	if clean == "" {
		return ""
	}
	// Casers are stateful; one per call.
	clean = cases.Title(language.English).String(strings.ToLower(clean))
	for _, layout := range layouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t.Format(isoDate)
		}
	}
	return ""
}

// SenderCanonical is the normalized name of the exporting company.
const SenderCanonical = "SOLIDEO S.A.S."

var reSender = regexp.MustCompile(`(?i)SOLIDEO\s*S\.?A?\.?S\.?`)

// IsSender reports whether raw contains the company name in any of its spellings.
func IsSender(raw string) bool { return reSender.MatchString(raw) }

// Sender maps any spelling of the company name to SenderCanonical and
// returns other names trimmed.
func Sender(raw string) string {
	if IsSender(raw) {
		return SenderCanonical
	}
	return strings.TrimSpace(raw)
}
