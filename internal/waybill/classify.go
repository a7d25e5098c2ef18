// Package waybill turns carrier waybill text into ShipmentRecords: it splits a
// document into per-shipment blocks, tags each block with its carrier and runs
// that carrier's field rules.
package waybill

import (
	"strings"

	"github.com/joseph-ayodele/waybill-recon/constants"
)

type signature struct {
	carrier constants.Carrier
	markers []string
}

// Checked in order; the first carrier with any marker present wins.
var signatures = []signature{
	{constants.FedEx, []string{"FEDEX", "TRK", "MPS#"}},
	{constants.DHL, []string{"EXPRESS WORLDWIDE", "WAYBILL"}},
	{constants.UPS, []string{"UPS WORLDWIDE SERVICE", "COJE"}},
}

// Classify returns the carrier whose signature occurs in text, or UnknownCarrier.
func Classify(text string) constants.Carrier {
	upper := strings.ToUpper(text)
	for _, sig := range signatures {
		for _, m := range sig.markers {
			if strings.Contains(upper, m) {
				return sig.carrier
			}
		}
	}
	return constants.UnknownCarrier
}
