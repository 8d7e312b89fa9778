package models

import "errors"

// CustomRule is a user-defined extension→category override. The extension is
// the unique key: at most one rule exists per extension, last write wins.
type CustomRule struct {
	Extension string
	Category  Category
}

// Validate checks that the rule is well-formed.
func (r *CustomRule) Validate() error {
	if r.Extension == "" {
		return errors.New("rule extension is required")
	}
	if !r.Category.Valid() {
		return errors.New("rule category is not a valid category")
	}
	return nil
}
