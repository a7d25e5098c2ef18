package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/waybill-recon/constants"
)

// FSIngestor reads from the local filesystem.
type FSIngestor struct {
	AllowedExts map[string]struct{} // lowercased sans '.'; nil -> default set
	SkipHidden  bool
	logger      *slog.Logger
}

var _ Ingestor = (*FSIngestor)(nil)

func NewFSIngestor(skipHidden bool, logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{SkipHidden: skipHidden, logger: logger}
}

func (i *FSIngestor) allowed(ext string) bool {
	if i.AllowedExts == nil {
		return AllowedExt(ext)
	}
	_, ok := i.AllowedExts[constants.NormalizeExt(ext)]
	return ok
}

// Collect walks every root, keeps allowed files, and drops files whose
// content hash was already seen. Files are hashed in path order so the
// first path of a duplicate set is the one kept.
func (i *FSIngestor) Collect(ctx context.Context, roots ...string) (IngestionResult, error) {
	var out IngestionResult
	if len(roots) == 0 {
		return out, errors.New("at least one input path is required")
	}

	var paths []string
	seenPath := make(map[string]struct{})
	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			return out, errors.New("input path is empty")
		}
		found, err := i.walk(ctx, root, &out)
		if err != nil {
			return out, err
		}
		for _, p := range found {
			if _, dup := seenPath[p]; !dup {
				seenPath[p] = struct{}{}
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)

	byHash := make(map[string]string, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		doc, err := describe(path)
		if err != nil {
			i.logger.Warn("ingest.file.failed", "path", path, "error", err)
			out.Skipped = append(out.Skipped, Skipped{Path: path, Err: err.Error()})
			out.Stats.Failed++
			continue
		}
		if first, ok := byHash[doc.HashHex]; ok {
			i.logger.Info("ingest.file.duplicate", "path", path, "duplicate_of", first)
			out.Skipped = append(out.Skipped, Skipped{Path: path, DuplicateOf: first})
			out.Stats.Deduplicated++
			continue
		}
		byHash[doc.HashHex] = path
		out.Documents = append(out.Documents, doc)
		out.Stats.Succeeded++
	}
	i.logger.Debug("ingest.done",
		"scanned", out.Stats.Scanned,
		"matched", out.Stats.Matched,
		"documents", len(out.Documents),
		"deduplicated", out.Stats.Deduplicated,
		"failed", out.Stats.Failed,
	)
	return out, nil
}

// walk returns the allowed files under root; root may itself be a file.
func (i *FSIngestor) walk(ctx context.Context, root string, out *IngestionResult) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out.Stats.Scanned++
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			out.Skipped = append(out.Skipped, Skipped{Path: path, Err: walkErr.Error()})
			out.Stats.Failed++
			return nil
		}
		// skip hidden dirs/files below the root if requested
		if i.SkipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !i.allowed(filepath.Ext(path)) {
			return nil
		}
		out.Stats.Matched++
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		found = append(found, abs)
		return nil
	})
	if err != nil {
		return found, fmt.Errorf("walk %s: %w", root, err)
	}
	return found, nil
}

func describe(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Document{}, fmt.Errorf("hash: %w", err)
	}
	ext := constants.NormalizeExt(filepath.Ext(path))
	return Document{
		Path:    path,
		Ext:     ext,
		Kind:    constants.MapFormatToKind(constants.MapExtToFormat(ext)),
		HashHex: hex.EncodeToString(h.Sum(nil)),
		Size:    n,
	}, nil
}
