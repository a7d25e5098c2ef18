package constants

import (
	"strings"
)

type Carrier string

const (
	FedEx          Carrier = "FedEx"
	DHL            Carrier = "DHL"
	UPS            Carrier = "UPS"
	UnknownCarrier Carrier = "Unknown"
)

// allCarriers is also the classification priority order.
var allCarriers = []Carrier{
	FedEx,
	DHL,
	UPS,
}

// Carriers returns the known carriers in classification priority order.
func Carriers() []Carrier {
	out := make([]Carrier, len(allCarriers))
	copy(out, allCarriers)
	return out
}

func CarrierNames() []string {
	result := make([]string, len(allCarriers))
	for i, c := range allCarriers {
		result[i] = string(c)
	}
	return result
}

// ParseCarrier maps a loose label ("fedex", "Federal Express", "dhl express") to a Carrier.
func ParseCarrier(input string) (Carrier, bool) {
	if input == "" {
		return UnknownCarrier, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]Carrier{
		"federal express": FedEx,
		"fed ex":          FedEx,
		"dhl express":     DHL,
		"ups worldwide":   UPS,
		"united parcel":   UPS,
	}

	if c, ok := synonyms[normalized]; ok {
		return c, true
	}

	for _, c := range allCarriers {
		if normalized == strings.ToLower(string(c)) {
			return c, true
		}
	}

	return UnknownCarrier, false
}
