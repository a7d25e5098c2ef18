package textextract

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joseph-ayodele/waybill-recon/internal/extract"
)

const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "iso-8859-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns b as text. Valid UTF-8 is kept; anything else is read as
// ISO-8859-1, the encoding the customs portal exports in.
func Decode(b []byte) (string, string, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b), EncodingUTF8, nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", "", fmt.Errorf("decode latin-1: %w", err)
	}
	return string(out), EncodingLatin1, nil
}

func readPlain(path, format string) (extract.TextExtractionResult, error) {
	res := extract.TextExtractionResult{SourceType: format, Method: MethodPlain}
	b, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}
	text, enc, err := Decode(b)
	if err != nil {
		return res, err
	}
	text = Sanitize(text)
	res.Text = text
	res.PageTexts = []string{text}
	res.Pages = 1
	res.Encoding = enc
	return res, nil
}
