package constants

import "strings"

// DocKind tells which pipeline a source document belongs to.
type DocKind string

const (
	DocWaybill DocKind = "WAYBILL"
	DocForm    DocKind = "FORM"
	DocUnknown DocKind = ""
)

const (
	PDF = "PDF"
	CSV = "CSV"
	TXT = "TXT"
)

// FileTypes holds the source formats the text extractor understands.
var FileTypes = []string{PDF, CSV, TXT}

// AllowedExtensions holds the default allowed file extensions for ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"csv": {},
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns PDF, CSV, TXT or "" for an extension.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "csv":
		return CSV
	case "txt":
		return TXT
	default:
		return ""
	}
}

// MapFormatToKind is the extension-only classification: waybills arrive as PDF,
// movement forms as CSV. TXT needs sniffing.
func MapFormatToKind(format string) DocKind {
	switch format {
	case PDF:
		return DocWaybill
	case CSV:
		return DocForm
	default:
		return DocUnknown
	}
}
