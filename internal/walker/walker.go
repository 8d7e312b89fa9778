// Package walker implements recursive directory traversal for curator scans.
package walker

import (
	"context"
	"fmt"

	"github.com/harrison/curator/internal/models"
	"github.com/harrison/curator/internal/storage"
)

// TraversalError reports that a directory listing failed mid-scan. The scan
// is all-or-nothing: partial results are discarded and the caller sees only
// this error. No retry is attempted.
type TraversalError struct {
	Path string // root-relative path of the directory that failed to list
	Err  error
}

func (e *TraversalError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("scan failed while reading the root directory: %v", e.Err)
	}
	return fmt.Sprintf("scan failed while reading %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// Walker enumerates every file reachable from a storage root.
type Walker struct {
	root     *storage.Root
	excluded map[string]bool
}

// New creates a Walker over the given root. Entries whose own name exactly
// matches a member of the exclusion set are skipped at any depth, whether
// they are files or directories.
func New(root *storage.Root, exclusions []string) *Walker {
	excluded := make(map[string]bool, len(exclusions))
	for _, name := range exclusions {
		excluded[name] = true
	}
	return &Walker{root: root, excluded: excluded}
}

// Walk performs an unrestricted-depth recursive traversal and returns one
// FileRecord per discovered file, in traversal order. Directories contribute
// path segments but no records. Any listing error aborts the whole walk and
// surfaces as a TraversalError with all partial results discarded.
//
// The context is consulted before each directory read; per the session
// model, cancellation is only expected before work begins.
func (w *Walker) Walk(ctx context.Context) ([]models.FileRecord, error) {
	var records []models.FileRecord
	if err := w.walkDir(ctx, "", &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (w *Walker) walkDir(ctx context.Context, rel string, records *[]models.FileRecord) error {
	if err := ctx.Err(); err != nil {
		return &TraversalError{Path: rel, Err: err}
	}

	entries, err := w.root.List(rel)
	if err != nil {
		return &TraversalError{Path: rel, Err: err}
	}

	for _, entry := range entries {
		if w.excluded[entry.Name] {
			continue
		}

		childRel := entry.Name
		if rel != "" {
			childRel = rel + "/" + entry.Name
		}

		switch entry.Kind {
		case models.KindDirectory:
			if err := w.walkDir(ctx, childRel, records); err != nil {
				return err
			}
		case models.KindFile:
			*records = append(*records, models.NewFileRecord(entry.Name, childRel, entry.SizeBytes, entry.ModifiedAt))
		}
	}
	return nil
}
