package waybill

import "regexp"

// Each carrier label starts with one of these.
var reBlockStart = regexp.MustCompile(`ORIGIN ID:|EXPRESS WORLDWIDE|UPS WORLDWIDE SERVICE`)

// Block is a span of waybill text believed to describe one shipment.
type Block struct {
	Index int
	Start int
	End   int
	Text  string
}

// Segment splits text at every start marker. Text before the first marker is
// dropped; without markers the whole text is one block.
func Segment(text string) []Block {
	locs := reBlockStart.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Block{{Index: 0, Start: 0, End: len(text), Text: text}}
	}
	blocks := make([]Block, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, Block{Index: i, Start: loc[0], End: end, Text: text[loc[0]:end]})
	}
	return blocks
}
