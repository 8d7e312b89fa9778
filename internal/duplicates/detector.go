// Package duplicates groups scanned files that share an identical byte size.
//
// Detection is signature-only: two distinct files of equal size are flagged
// as probable duplicates without any content comparison. This is a known,
// documented limitation of the heuristic, not a defect to be patched with
// hashing.
package duplicates

import (
	"sort"

	"github.com/harrison/curator/internal/models"
)

// Detect partitions records by exact byte size and returns one group per
// size that has at least two members. Member order inside each group follows
// input order; groups are ordered by size for deterministic output.
func Detect(records []models.FileRecord) []models.DuplicateGroup {
	bySize := make(map[int64][]string)
	for _, record := range records {
		bySize[record.SizeBytes] = append(bySize[record.SizeBytes], record.Name)
	}

	sizes := make([]int64, 0, len(bySize))
	for size, members := range bySize {
		if len(members) < 2 {
			continue
		}
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	groups := make([]models.DuplicateGroup, 0, len(sizes))
	for _, size := range sizes {
		groups = append(groups, models.DuplicateGroup{
			ID:        models.DuplicateGroupID(size),
			SizeBytes: size,
			Members:   bySize[size],
		})
	}
	return groups
}
