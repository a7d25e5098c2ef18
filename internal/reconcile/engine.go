// Package reconcile joins waybill records with movement-form records on the
// tracking id and reports, per id, whether the two sides agree.
package reconcile

import (
	"slices"
	"strings"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
	"github.com/joseph-ayodele/waybill-recon/internal/normalize"
)

// Side names one input of the join.
type Side string

const (
	SideGuide Side = "guide"
	SideForm  Side = "form"
)

// Duplicate is a record dropped because an earlier record on the same side
// already used its tracking id.
type Duplicate struct {
	Side       Side   `json:"side" yaml:"side"`
	TrackingID string `json:"tracking_id" yaml:"tracking_id"`
	KeptFile   string `json:"kept_file" yaml:"kept_file"`
	DupFile    string `json:"duplicate_file" yaml:"duplicate_file"`
}

// Outcome bundles the joined rows with their summary.
type Outcome struct {
	Rows    []entity.ReconciliationRow
	Summary Summary
}

// Engine compares records. It holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	countries *normalize.Countries
}

// NewEngine returns an engine using countries for destination comparison.
// A nil table means the built-in aliases.
func NewEngine(countries *normalize.Countries) *Engine {
	if countries == nil {
		countries = normalize.DefaultCountries()
	}
	return &Engine{countries: countries}
}

// Reconcile full-outer-joins guides and forms on TrackingID. Rows are sorted
// by tracking id. Only the first record per id on each side takes part.
func (e *Engine) Reconcile(guides []entity.ShipmentRecord, forms []entity.FormRecord) []entity.ReconciliationRow {
	rows, _ := e.join(guides, forms)
	return rows
}

// Run reconciles and summarizes in one pass, reporting dropped duplicates.
func (e *Engine) Run(guides []entity.ShipmentRecord, forms []entity.FormRecord) Outcome {
	rows, dups := e.join(guides, forms)
	sum := Summarize(rows)
	sum.Duplicates = dups
	return Outcome{Rows: rows, Summary: sum}
}

func (e *Engine) join(guides []entity.ShipmentRecord, forms []entity.FormRecord) ([]entity.ReconciliationRow, []Duplicate) {
	var dups []Duplicate
	byID := make(map[string]*entity.ReconciliationRow, len(guides)+len(forms))

	for i := range guides {
		g := &guides[i]
		if row, ok := byID[g.TrackingID]; ok {
			dups = append(dups, Duplicate{Side: SideGuide, TrackingID: g.TrackingID, KeptFile: row.Guide.SourceFile, DupFile: g.SourceFile})
			continue
		}
		gc := *g
		byID[g.TrackingID] = &entity.ReconciliationRow{TrackingID: g.TrackingID, Guide: &gc}
	}
	for i := range forms {
		f := &forms[i]
		row, ok := byID[f.TrackingID]
		if ok && row.Form != nil {
			dups = append(dups, Duplicate{Side: SideForm, TrackingID: f.TrackingID, KeptFile: row.Form.SourceFile, DupFile: f.SourceFile})
			continue
		}
		if !ok {
			row = &entity.ReconciliationRow{TrackingID: f.TrackingID}
			byID[f.TrackingID] = row
		}
		fc := *f
		row.Form = &fc
	}

	rows := make([]entity.ReconciliationRow, 0, len(byID))
	for _, row := range byID {
		e.judge(row)
		rows = append(rows, *row)
	}
	slices.SortFunc(rows, func(a, b entity.ReconciliationRow) int {
		return strings.Compare(a.TrackingID, b.TrackingID)
	})
	return rows, dups
}

func (e *Engine) judge(row *entity.ReconciliationRow) {
	switch {
	case row.Form == nil:
		row.Origin = constants.OriginGuideOnly
		row.Status = entity.Status{Kind: constants.StatusOnlyGuide}
	case row.Guide == nil:
		row.Origin = constants.OriginFormOnly
		row.Status = entity.Status{Kind: constants.StatusOnlyForm}
	default:
		row.Origin = constants.OriginBoth
		row.FieldDiffs = e.Diff(*row.Guide, *row.Form)
		if len(row.FieldDiffs) == 0 {
			row.Status = entity.Status{Kind: constants.StatusOK}
		} else {
			row.Status = entity.Status{Kind: constants.StatusDiscrepancy, Fields: row.FieldDiffs}
		}
	}
	if row.FieldDiffs == nil {
		row.FieldDiffs = []constants.Field{}
	}
}

// Diff lists the compared fields whose normalized values differ, in
// comparison order.
func (e *Engine) Diff(g entity.ShipmentRecord, f entity.FormRecord) []constants.Field {
	var diffs []constants.Field
	for _, field := range constants.ComparedFields {
		if e.comparable(field, g.Value(field)) != e.comparable(field, f.Value(field)) {
			diffs = append(diffs, field)
		}
	}
	return diffs
}

func (e *Engine) comparable(f constants.Field, v string) string {
	switch f {
	case constants.FieldCountry:
		return e.countries.Normalize(v)
	case constants.FieldFormRef:
		return normalize.FormRef(v)
	}
	return v
}
