package models

import "fmt"

// DuplicateGroup collects files that share an identical byte size.
// Grouping is a signature-only heuristic: no content comparison is performed,
// so members are probable duplicates, not verified ones.
type DuplicateGroup struct {
	ID        string   // deterministic, derived from the shared size
	SizeBytes int64    // the size every member shares
	Members   []string // member file names, input order preserved
	Resolved  bool     // caller-controlled, defaults to false
}

// DuplicateGroupID derives the deterministic group id for a shared size.
func DuplicateGroupID(sizeBytes int64) string {
	return fmt.Sprintf("size-%d", sizeBytes)
}
