// Package extract declares the collaborator contracts of the reconciliation
// pipeline: document -> text.
package extract

import (
	"context"
	"time"
)

// TextExtractor turns a document on disk into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

// Checker is implemented by extractors that depend on an external tool and
// can report up front whether it is usable.
type Checker interface {
	Check(ctx context.Context) error
}

type TextExtractionResult struct {
	Text       string
	PageTexts  []string // per page; an unreadable page is ""
	Pages      int
	SourceType string // constants.PDF | constants.CSV | constants.TXT
	Method     string // "pdf-native" | "pdftotext" | "plain"
	Encoding   string // "utf-8" | "iso-8859-1"; empty for PDFs
	Duration   time.Duration
	Warnings   []string
}
