package models

import "fmt"

// Category is the closed set of labels a file can be organized under.
// The string values are stable wire values: they are persisted in the rule
// store, exchanged with the categorization oracle, and used as destination
// directory names.
type Category string

// All categories recognized by curator.
const (
	CategoryDocuments  Category = "Documents"
	CategoryImages     Category = "Images"
	CategoryVideos     Category = "Videos"
	CategoryArchives   Category = "Archives"
	CategoryInstallers Category = "Installers"
	CategoryCode       Category = "Code"
	CategoryAudio      Category = "Audio"
	CategoryUnknown    Category = "Unknown"
	CategoryJunk       Category = "Junk"
)

// AllCategories returns every valid category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryDocuments,
		CategoryImages,
		CategoryVideos,
		CategoryArchives,
		CategoryInstallers,
		CategoryCode,
		CategoryAudio,
		CategoryUnknown,
		CategoryJunk,
	}
}

// ParseCategory converts a label string into a Category.
// Returns an error for any value outside the closed set; callers that need
// lenient handling (e.g. oracle responses) should drop the entry instead of
// propagating the error.
func ParseCategory(label string) (Category, error) {
	c := Category(label)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", label)
	}
	return c, nil
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryDocuments, CategoryImages, CategoryVideos, CategoryArchives,
		CategoryInstallers, CategoryCode, CategoryAudio, CategoryUnknown, CategoryJunk:
		return true
	}
	return false
}

// String returns the stable wire value.
func (c Category) String() string {
	return string(c)
}
