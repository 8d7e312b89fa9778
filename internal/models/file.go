package models

import "strings"

// Kind distinguishes files from directories in storage references.
type Kind string

// Kinds of storage nodes.
const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// FileRef is an explicit reference to a storage node: a root-relative path
// plus the node's last-known kind. It deliberately carries no live handle;
// the node is resolved against a storage root at the moment it is needed.
type FileRef struct {
	RelativePath string // root-relative, slash-joined
	Kind         Kind
}

// FileRecord describes one file discovered during a scan.
type FileRecord struct {
	Name         string   // leaf name, unique within its directory
	RelativePath string   // root-relative, slash-joined, preserves traversal order
	Kind         Kind     // only KindFile records appear in scan output
	SizeBytes    int64    // non-negative
	ModifiedAt   int64    // last-modified time, epoch milliseconds
	Extension    string   // computed once at discovery, never recomputed
	Category     Category // assigned by the classifier, defaults to Unknown
	Ref          FileRef  // lazy storage reference for later resolution
}

// NewFileRecord builds a record for a discovered file. The extension is
// computed here, exactly once, and the category starts out Unknown.
func NewFileRecord(name, relativePath string, sizeBytes, modifiedAt int64) FileRecord {
	return FileRecord{
		Name:         name,
		RelativePath: relativePath,
		Kind:         KindFile,
		SizeBytes:    sizeBytes,
		ModifiedAt:   modifiedAt,
		Extension:    ExtensionOf(name),
		Category:     CategoryUnknown,
		Ref:          FileRef{RelativePath: relativePath, Kind: KindFile},
	}
}

// ExtensionOf returns the lowercase substring after the last '.' in name,
// or the empty string when the name contains no '.'.
// "Report.PDF" yields "pdf"; "README" yields "".
func ExtensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
