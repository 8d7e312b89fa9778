package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/curator/internal/models"
	"github.com/harrison/curator/internal/storage"
)

func writeSource(t *testing.T, rootDir, rel, content string) {
	t.Helper()
	path := filepath.Join(rootDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func operation(rel string, category models.Category) models.MoveOperation {
	return models.MoveOperation{
		Ref:            models.FileRef{RelativePath: rel, Kind: models.KindFile},
		SourcePath:     rel,
		TargetCategory: category,
	}
}

func TestExecuteMovesFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "docs/report.pdf", "report body")
	writeSource(t, dir, "song.mp3", "audio")

	root, err := storage.OpenRoot(dir)
	require.NoError(t, err)

	operations := []models.MoveOperation{
		operation("docs/report.pdf", models.CategoryDocuments),
		operation("song.mp3", models.CategoryAudio),
	}

	summary := New(root, root, nil, nil).Execute(context.Background(), operations)

	assert.Equal(t, models.MoveSummary{Attempted: 2, Succeeded: 2, Failed: 0}, summary)

	// Destinations hold the full content.
	data, err := os.ReadFile(filepath.Join(dir, "Documents", "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "report body", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "Audio", "song.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "audio", string(data))

	// Originals are gone.
	_, err = os.Stat(filepath.Join(dir, "docs", "report.pdf"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "song.mp3"))
	assert.True(t, os.IsNotExist(err))
}

func TestExecuteContinueOnError(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		writeSource(t, dir, fmt.Sprintf("f%d.pdf", i), fmt.Sprintf("content-%d", i))
	}

	root, err := storage.OpenRoot(dir)
	require.NoError(t, err)

	operations := make([]models.MoveOperation, 0, 5)
	for i := 1; i <= 5; i++ {
		operations = append(operations, operation(fmt.Sprintf("f%d.pdf", i), models.CategoryDocuments))
	}

	// Operation 3's source disappears before execution, so its copy fails.
	require.NoError(t, os.Remove(filepath.Join(dir, "f3.pdf")))

	summary := New(root, root, nil, nil).Execute(context.Background(), operations)

	assert.Equal(t, models.MoveSummary{Attempted: 5, Succeeded: 4, Failed: 1}, summary)

	// Operations 1-2 and 4-5 all completed despite the failure in between.
	for _, i := range []int{1, 2, 4, 5} {
		_, err := os.Stat(filepath.Join(dir, "Documents", fmt.Sprintf("f%d.pdf", i)))
		assert.NoError(t, err, "f%d.pdf must be at destination", i)
		_, err = os.Stat(filepath.Join(dir, fmt.Sprintf("f%d.pdf", i)))
		assert.True(t, os.IsNotExist(err), "f%d.pdf must be gone from source", i)
	}
	_, err = os.Stat(filepath.Join(dir, "Documents", "f3.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestExecuteProgressMonotonicReaches100(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 3; i++ {
		writeSource(t, dir, fmt.Sprintf("f%d.txt", i), "x")
	}

	root, err := storage.OpenRoot(dir)
	require.NoError(t, err)

	operations := []models.MoveOperation{
		operation("f1.txt", models.CategoryDocuments),
		operation("f2.txt", models.CategoryDocuments),
		operation("f3.txt", models.CategoryDocuments),
	}

	var pcts []int
	progress := func(processed, total, pct int) {
		assert.Equal(t, 3, total)
		pcts = append(pcts, pct)
	}

	summary := New(root, root, progress, nil).Execute(context.Background(), operations)
	require.True(t, summary.AllSucceeded())

	require.Equal(t, []int{33, 67, 100}, pcts)
	for i := 1; i < len(pcts); i++ {
		assert.GreaterOrEqual(t, pcts[i], pcts[i-1], "progress must be non-decreasing")
	}
}

func TestExecuteProgressReported100EvenWithFailures(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "ok.txt", "x")

	root, err := storage.OpenRoot(dir)
	require.NoError(t, err)

	operations := []models.MoveOperation{
		operation("missing.txt", models.CategoryDocuments),
		operation("ok.txt", models.CategoryDocuments),
	}

	var last int
	summary := New(root, root, func(_, _, pct int) { last = pct }, nil).Execute(context.Background(), operations)

	assert.Equal(t, models.MoveSummary{Attempted: 2, Succeeded: 1, Failed: 1}, summary)
	assert.Equal(t, 100, last, "progress covers processed operations, failed or not")
}

func TestExecuteOverwritesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.pdf", "new content")
	writeSource(t, dir, "Documents/a.pdf", "old content")

	root, err := storage.OpenRoot(dir)
	require.NoError(t, err)

	summary := New(root, root, nil, nil).Execute(context.Background(), []models.MoveOperation{
		operation("a.pdf", models.CategoryDocuments),
	})
	require.True(t, summary.AllSucceeded())

	data, err := os.ReadFile(filepath.Join(dir, "Documents", "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data), "existing destination is silently overwritten")
}

func TestExecuteDifferentDestinationRoot(t *testing.T) {
	sourceDir := t.TempDir()
	destDir := t.TempDir()
	writeSource(t, sourceDir, "pics/photo.jpg", "jpeg bytes")

	source, err := storage.OpenRoot(sourceDir)
	require.NoError(t, err)
	dest, err := storage.OpenRoot(destDir)
	require.NoError(t, err)

	summary := New(source, dest, nil, nil).Execute(context.Background(), []models.MoveOperation{
		operation("pics/photo.jpg", models.CategoryImages),
	})
	require.True(t, summary.AllSucceeded())

	data, err := os.ReadFile(filepath.Join(destDir, "Images", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	_, err = os.Stat(filepath.Join(sourceDir, "pics", "photo.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestExecuteEmptyBatch(t *testing.T) {
	root, err := storage.OpenRoot(t.TempDir())
	require.NoError(t, err)

	called := false
	summary := New(root, root, func(_, _, _ int) { called = true }, nil).Execute(context.Background(), nil)

	assert.Equal(t, models.MoveSummary{}, summary)
	assert.False(t, called, "no progress events for an empty batch")
}
