package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/waybill"
)

// AllowedExt checks if a file extension is in the allowed set (defaults to pdf/csv/txt).
func AllowedExt(ext string) bool {
	ext = constants.NormalizeExt(ext)
	_, ok := constants.AllowedExtensions[ext]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return base != "." && base != ".." && strings.HasPrefix(base, ".")
}

var formMarkers = []string{"FORMULARIO", "DETALLE DE LOS ANEXOS"}

// Classify decides whether a document is a waybill or a movement form. PDFs
// are waybills and CSVs are forms; other text is sniffed, form markers first.
func Classify(path, text string) constants.DocKind {
	if kind := constants.MapFormatToKind(constants.MapExtToFormat(filepath.Ext(path))); kind != constants.DocUnknown {
		return kind
	}
	for _, m := range formMarkers {
		if strings.Contains(text, m) {
			return constants.DocForm
		}
	}
	if waybill.Classify(text) != constants.UnknownCarrier {
		return constants.DocWaybill
	}
	return constants.DocUnknown
}
