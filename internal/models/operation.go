package models

import "fmt"

// MoveOperation describes one planned file move: the referenced file is
// copied into the target category's directory under the destination root and
// then deleted from its source location.
// Operations are only ever constructed for files that are selected and whose
// category is not Unknown.
type MoveOperation struct {
	Ref            FileRef
	SourcePath     string // root-relative path of the source file
	TargetCategory Category
}

// MoveSummary is the aggregate result of executing a move batch under the
// continue-on-error policy: counts only, no per-item error detail.
type MoveSummary struct {
	Attempted int
	Succeeded int
	Failed    int
}

// AllSucceeded reports whether every attempted operation completed.
func (s MoveSummary) AllSucceeded() bool {
	return s.Failed == 0
}

// String renders the summary as a single human-readable line.
func (s MoveSummary) String() string {
	return fmt.Sprintf("moved %d of %d file(s), %d failed", s.Succeeded, s.Attempted, s.Failed)
}
