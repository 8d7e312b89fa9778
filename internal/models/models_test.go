package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{
			name:     "uppercase extension is lowercased",
			fileName: "Report.PDF",
			want:     "pdf",
		},
		{
			name:     "no dot yields empty string",
			fileName: "README",
			want:     "",
		},
		{
			name:     "last dot wins",
			fileName: "archive.tar.gz",
			want:     "gz",
		},
		{
			name:     "trailing dot yields empty string",
			fileName: "weird.",
			want:     "",
		},
		{
			name:     "dotfile extension is the remainder",
			fileName: ".gitignore",
			want:     "gitignore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtensionOf(tt.fileName))
		})
	}
}

func TestNewFileRecord(t *testing.T) {
	record := NewFileRecord("Report.PDF", "docs/Report.PDF", 1234, 1700000000000)

	assert.Equal(t, "Report.PDF", record.Name)
	assert.Equal(t, "docs/Report.PDF", record.RelativePath)
	assert.Equal(t, KindFile, record.Kind)
	assert.Equal(t, int64(1234), record.SizeBytes)
	assert.Equal(t, int64(1700000000000), record.ModifiedAt)
	assert.Equal(t, "pdf", record.Extension, "extension computed at discovery")
	assert.Equal(t, CategoryUnknown, record.Category, "category defaults to Unknown")
	assert.Equal(t, FileRef{RelativePath: "docs/Report.PDF", Kind: KindFile}, record.Ref)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    Category
		wantErr bool
	}{
		{name: "valid category", label: "Documents", want: CategoryDocuments},
		{name: "valid junk category", label: "Junk", want: CategoryJunk},
		{name: "unknown label rejected", label: "Spreadsheets", wantErr: true},
		{name: "case sensitive wire values", label: "documents", wantErr: true},
		{name: "empty label rejected", label: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.label)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllCategoriesClosedSet(t *testing.T) {
	categories := AllCategories()
	require.Len(t, categories, 9)
	for _, c := range categories {
		assert.True(t, c.Valid(), "category %s must be valid", c)
	}
}

func TestCustomRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    CustomRule
		wantErr bool
	}{
		{name: "valid rule", rule: CustomRule{Extension: "pdf", Category: CategoryDocuments}},
		{name: "missing extension", rule: CustomRule{Category: CategoryDocuments}, wantErr: true},
		{name: "invalid category", rule: CustomRule{Extension: "pdf", Category: Category("Nope")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDuplicateGroupID(t *testing.T) {
	assert.Equal(t, "size-100", DuplicateGroupID(100))
	assert.Equal(t, "size-0", DuplicateGroupID(0))
}

func TestProcessingStateSetProgress(t *testing.T) {
	var state ProcessingState

	state.SetProgress(40)
	assert.Equal(t, 40, state.Progress)

	// Regressions are ignored to keep the sequence non-decreasing.
	state.SetProgress(20)
	assert.Equal(t, 40, state.Progress)

	state.SetProgress(100)
	assert.Equal(t, 100, state.Progress)

	// Out-of-range values are clamped.
	state.SetProgress(150)
	assert.Equal(t, 100, state.Progress)
}

func TestProcessingStateReset(t *testing.T) {
	state := ProcessingState{Scanning: true, Organizing: true, Progress: 50, LastError: assert.AnError}
	state.Reset()

	assert.False(t, state.Scanning)
	assert.False(t, state.Organizing)
	assert.Equal(t, 0, state.Progress)
	assert.NoError(t, state.LastError)
}

func TestMoveSummary(t *testing.T) {
	summary := MoveSummary{Attempted: 5, Succeeded: 4, Failed: 1}
	assert.False(t, summary.AllSucceeded())
	assert.Equal(t, "moved 4 of 5 file(s), 1 failed", summary.String())

	clean := MoveSummary{Attempted: 3, Succeeded: 3}
	assert.True(t, clean.AllSucceeded())
}
