package waybill

import (
	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
)

// Carry is the state threaded from one block to the next within a document.
type Carry struct {
	LastDHLRef string
}

// Result is the outcome of extracting one waybill document.
type Result struct {
	Records  []entity.ShipmentRecord
	Blocks   int
	Skipped  int
	Carriers map[constants.Carrier]int
}

// ExtractBlock extracts a record from b. ok is false when no tracking id was
// found. The returned Carry must be passed to the next block.
func ExtractBlock(b Block, carry Carry) (entity.ShipmentRecord, bool, Carry) {
	carrier := Classify(b.Text)
	rules, known := RulesFor(carrier)

	// The reference updates the carry before this block's invoices are read.
	if carrier == constants.DHL {
		if ref := DHLReference(b.Text); ref != "" {
			carry.LastDHLRef = ref
		}
	}
	if !known {
		return entity.ShipmentRecord{}, false, carry
	}
	tracking := rules.Tracking(b.Text)
	if tracking == "" {
		return entity.ShipmentRecord{}, false, carry
	}

	master := ""
	if rules.MasterRef {
		master = carry.LastDHLRef
	}
	rec := entity.ShipmentRecord{
		TrackingID:         tracking,
		ShipDate:           rules.ShipDate(b.Text),
		DestinationCountry: DestinationCountry(b.Text),
		FormReference:      FormReference(b.Text),
		NetWeight:          NetWeight(b.Text),
		SenderName:         SenderName(b.Text),
		Invoices:           Invoices(b.Text, master),
		Carrier:            carrier,
	}
	rec.Found = rec.Found.With(constants.FieldTrackingID)
	for _, f := range []constants.Field{
		constants.FieldShipDate, constants.FieldCountry, constants.FieldFormRef,
		constants.FieldNetWeight, constants.FieldSender, constants.FieldInvoices,
	} {
		if rec.Value(f) != "" {
			rec.Found = rec.Found.With(f)
		}
	}
	return rec, true, carry
}

// ExtractDocument segments text and folds ExtractBlock over the blocks in
// order. source is stamped on every record.
func ExtractDocument(text, source string) Result {
	blocks := Segment(text)
	res := Result{Blocks: len(blocks), Carriers: make(map[constants.Carrier]int)}
	var carry Carry
	for _, b := range blocks {
		var (
			rec entity.ShipmentRecord
			ok  bool
		)
		rec, ok, carry = ExtractBlock(b, carry)
		if !ok {
			res.Skipped++
			continue
		}
		rec.SourceFile = source
		res.Records = append(res.Records, rec)
		res.Carriers[rec.Carrier]++
	}
	return res
}
