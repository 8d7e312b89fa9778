// Package storage provides the filesystem access layer for curator.
//
// Instead of holding live file handles, the rest of the system carries
// root-relative paths and resolves them through a Root at the moment an
// operation is performed. A Root is acquired once per session and owns all
// access beneath its directory.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/curator/internal/models"
)

// AccessError reports that a root directory could not be acquired with the
// required access. It is terminal: the caller must restart the flow with a
// usable root.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("access denied to %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// Entry describes one node observed while listing a directory.
type Entry struct {
	Name       string
	Kind       models.Kind
	SizeBytes  int64
	ModifiedAt int64 // epoch milliseconds
}

// Root is a handle to the directory tree a session operates on. All paths
// passed to its methods are root-relative and slash-joined; nothing outside
// the root is ever touched.
type Root struct {
	path string
}

// OpenRoot acquires a root directory with read-write access. The path must
// exist, be a directory, and be listable; anything else is an AccessError.
func OpenRoot(path string) (*Root, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &AccessError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return nil, &AccessError{Path: path, Err: fmt.Errorf("not a directory")}
	}
	// Verify the directory is actually listable up front so a scan does not
	// start against an unreadable root.
	if _, err := os.ReadDir(path); err != nil {
		return nil, &AccessError{Path: path, Err: err}
	}
	return &Root{path: path}, nil
}

// Path returns the root's filesystem path.
func (r *Root) Path() string {
	return r.path
}

// List enumerates the entries of the directory at the given root-relative
// path ("" lists the root itself). Sizes and modification times are read for
// file entries at listing time.
func (r *Root) List(rel string) ([]Entry, error) {
	abs, err := r.resolve(rel)
	if err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", displayPath(rel), err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entry := Entry{Name: de.Name()}
		if de.IsDir() {
			entry.Kind = models.KindDirectory
		} else {
			entry.Kind = models.KindFile
			info, err := de.Info()
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", displayPath(joinRel(rel, de.Name())), err)
			}
			entry.SizeBytes = info.Size()
			entry.ModifiedAt = info.ModTime().UnixMilli()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Open opens the file at the given root-relative path for reading.
func (r *Root) Open(rel string) (io.ReadCloser, error) {
	abs, err := r.resolve(rel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", displayPath(rel), err)
	}
	return f, nil
}

// Create opens the file at the given root-relative path for writing,
// creating it if absent and truncating it otherwise. The parent directory
// must already exist; Create never creates directories.
func (r *Root) Create(rel string) (io.WriteCloser, error) {
	dir, _ := splitRel(rel)
	absDir, err := r.resolve(dir)
	if err != nil {
		return nil, err
	}
	abs := filepath.Join(absDir, leafOf(rel))
	f, err := os.OpenFile(abs, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", displayPath(rel), err)
	}
	return f, nil
}

// Remove deletes the file at the given root-relative path. The path is
// resolved by walking its directory segments from the root; no directories
// are created along the way.
func (r *Root) Remove(rel string) error {
	abs, err := r.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("remove %s: %w", displayPath(rel), err)
	}
	return nil
}

// EnsureDir makes sure a directory with the given name exists directly under
// the root, creating it if absent.
func (r *Root) EnsureDir(name string) error {
	if err := validateSegment(name); err != nil {
		return err
	}
	abs := filepath.Join(r.path, name)
	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", name, err)
	}
	return nil
}

// resolve walks the relative path's directory segments from the root,
// verifying each intermediate segment exists and is a directory, and returns
// the absolute path of the final segment. No directories are created.
func (r *Root) resolve(rel string) (string, error) {
	if rel == "" {
		return r.path, nil
	}
	segments := strings.Split(rel, "/")
	abs := r.path
	for i, seg := range segments {
		if err := validateSegment(seg); err != nil {
			return "", err
		}
		abs = filepath.Join(abs, seg)
		// Intermediate segments must be existing directories; the final
		// segment is left to the caller's operation to stat.
		if i < len(segments)-1 {
			info, err := os.Stat(abs)
			if err != nil {
				return "", fmt.Errorf("resolve %s: %w", displayPath(rel), err)
			}
			if !info.IsDir() {
				return "", fmt.Errorf("resolve %s: %s is not a directory", displayPath(rel), seg)
			}
		}
	}
	return abs, nil
}

// validateSegment rejects path segments that would escape the root.
func validateSegment(seg string) error {
	if seg == "" || seg == "." || seg == ".." {
		return fmt.Errorf("invalid path segment %q", seg)
	}
	if strings.ContainsAny(seg, `/\`) {
		return fmt.Errorf("invalid path segment %q", seg)
	}
	return nil
}

// joinRel joins a root-relative directory path and a leaf name.
func joinRel(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// splitRel splits a root-relative path into its directory part and leaf.
func splitRel(rel string) (dir, name string) {
	idx := strings.LastIndex(rel, "/")
	if idx < 0 {
		return "", rel
	}
	return rel[:idx], rel[idx+1:]
}

func leafOf(rel string) string {
	_, name := splitRel(rel)
	return name
}

// displayPath renders a relative path for error messages, using "." for the
// root itself.
func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
