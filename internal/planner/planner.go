// Package planner turns a categorized file list plus a user selection into
// the ordered list of move operations the executor performs.
package planner

import "github.com/harrison/curator/internal/models"

// Plan filters the categorized records down to move operations. An operation
// is produced only for files that are both present in the selection and
// categorized as something other than Unknown; nothing is ever synthesized
// for unselected or Unknown files. Input order is preserved.
//
// The returned list is the sole contract boundary between what the user
// selected and what the executor will perform.
func Plan(records []models.FileRecord, selection []string) []models.MoveOperation {
	selected := make(map[string]bool, len(selection))
	for _, name := range selection {
		selected[name] = true
	}

	operations := make([]models.MoveOperation, 0, len(selection))
	for _, record := range records {
		if !selected[record.Name] {
			continue
		}
		if record.Category == models.CategoryUnknown {
			continue
		}
		operations = append(operations, models.MoveOperation{
			Ref:            record.Ref,
			SourcePath:     record.RelativePath,
			TargetCategory: record.Category,
		})
	}
	return operations
}
