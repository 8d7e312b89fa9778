package duplicates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/curator/internal/models"
)

func recordsWithSizes(names []string, sizes []int64) []models.FileRecord {
	records := make([]models.FileRecord, len(names))
	for i := range names {
		records[i] = models.NewFileRecord(names[i], names[i], sizes[i], 0)
	}
	return records
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		sizes []int64
		want  []models.DuplicateGroup
	}{
		{
			name:  "pairs and triples grouped, singletons ignored",
			names: []string{"a", "b", "c", "d", "e", "f"},
			sizes: []int64{100, 100, 200, 300, 300, 300},
			want: []models.DuplicateGroup{
				{ID: "size-100", SizeBytes: 100, Members: []string{"a", "b"}},
				{ID: "size-300", SizeBytes: 300, Members: []string{"d", "e", "f"}},
			},
		},
		{
			name:  "no duplicates yields no groups",
			names: []string{"a", "b"},
			sizes: []int64{1, 2},
			want:  []models.DuplicateGroup{},
		},
		{
			name:  "empty input",
			names: nil,
			sizes: nil,
			want:  []models.DuplicateGroup{},
		},
		{
			name:  "zero-size files still group",
			names: []string{"a", "b"},
			sizes: []int64{0, 0},
			want: []models.DuplicateGroup{
				{ID: "size-0", SizeBytes: 0, Members: []string{"a", "b"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(recordsWithSizes(tt.names, tt.sizes))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectMemberOrderFollowsInput(t *testing.T) {
	records := recordsWithSizes(
		[]string{"z.txt", "m.txt", "a.txt"},
		[]int64{50, 50, 50},
	)
	groups := Detect(records)

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"z.txt", "m.txt", "a.txt"}, groups[0].Members,
		"member order preserves input order, not name order")
}

func TestDetectResolvedDefaultsFalse(t *testing.T) {
	groups := Detect(recordsWithSizes([]string{"a", "b"}, []int64{7, 7}))
	require.Len(t, groups, 1)
	assert.False(t, groups[0].Resolved)
}
