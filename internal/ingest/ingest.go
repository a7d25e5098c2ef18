package ingest

import (
	"context"

	"github.com/joseph-ayodele/waybill-recon/constants"
)

// Document is one source file selected for extraction.
type Document struct {
	Path    string
	Ext     string
	Kind    constants.DocKind // DocUnknown until sniffed for .txt files
	HashHex string
	Size    int64
}

// Skipped is a file that will not be processed, with the reason.
type Skipped struct {
	Path string
	// DuplicateOf is set when the file has the same content as an earlier one.
	DuplicateOf string
	Err         string
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// IngestionResult is the outcome of collecting one or more roots. Documents
// are sorted by path.
type IngestionResult struct {
	Documents []Document
	Skipped   []Skipped
	Stats     DirStats
}

// Ingestor is the behavior the pipeline depends on.
type Ingestor interface {
	// Collect gathers every matching file under the given files or directories.
	Collect(ctx context.Context, roots ...string) (IngestionResult, error)
}
