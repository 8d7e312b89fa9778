// Package executor performs planned move operations against storage roots.
package executor

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/harrison/curator/internal/models"
	"github.com/harrison/curator/internal/storage"
)

// ProgressFunc receives progress updates after each processed operation.
// pct is round(processed/total*100); the sequence is non-decreasing and
// reaches exactly 100 after the final operation.
type ProgressFunc func(processed, total, pct int)

// Logger receives per-operation events. Failures are logged here and in the
// summary counts; no per-item error detail is surfaced beyond this.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Executor moves files into category directories with copy-then-delete
// semantics. Operations run strictly in order, one at a time, under a
// continue-on-error policy: a failed operation is recorded and the batch
// moves on. There is no cross-operation rollback and no collision check;
// an existing destination file of the same name is overwritten.
type Executor struct {
	source   *storage.Root
	dest     *storage.Root
	progress ProgressFunc
	log      Logger
}

// New creates an Executor moving files from source to dest. The roots may be
// the same handle; a different destination root is permitted. progress and
// log may be nil.
func New(source, dest *storage.Root, progress ProgressFunc, log Logger) *Executor {
	return &Executor{source: source, dest: dest, progress: progress, log: log}
}

// Execute processes the operation list in order and returns the aggregate
// summary. Once started the batch runs to completion; there is no mid-batch
// cancellation.
func (e *Executor) Execute(ctx context.Context, operations []models.MoveOperation) models.MoveSummary {
	summary := models.MoveSummary{Attempted: len(operations)}
	total := len(operations)

	for i, op := range operations {
		if err := e.moveOne(ctx, op); err != nil {
			summary.Failed++
			e.warnf("move %s failed: %v", op.SourcePath, err)
		} else {
			summary.Succeeded++
			e.infof("moved %s -> %s/", op.SourcePath, op.TargetCategory)
		}

		processed := i + 1
		if e.progress != nil {
			pct := int(math.Round(float64(processed) / float64(total) * 100))
			e.progress(processed, total, pct)
		}
	}
	return summary
}

// moveOne performs one copy-then-delete move. The original is deleted only
// after the destination write fully succeeded.
func (e *Executor) moveOne(ctx context.Context, op models.MoveOperation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	categoryDir := op.TargetCategory.String()
	if err := e.dest.EnsureDir(categoryDir); err != nil {
		return err
	}

	_, name := splitPath(op.SourcePath)
	destPath := categoryDir + "/" + name

	if err := e.copyFile(op.SourcePath, destPath); err != nil {
		return err
	}

	// The source is resolved by walking its stored relative path; nothing is
	// created along the way.
	if err := e.source.Remove(op.SourcePath); err != nil {
		return fmt.Errorf("copied but failed to delete original: %w", err)
	}
	return nil
}

func (e *Executor) copyFile(sourcePath, destPath string) error {
	src, err := e.source.Open(sourcePath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := e.dest.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		// Best-effort cleanup of the partial destination file.
		_ = e.dest.Remove(destPath)
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	if err := dst.Close(); err != nil {
		_ = e.dest.Remove(destPath)
		return fmt.Errorf("close %s: %w", destPath, err)
	}
	return nil
}

func (e *Executor) infof(format string, args ...interface{}) {
	if e.log != nil {
		e.log.Infof(format, args...)
	}
}

func (e *Executor) warnf(format string, args ...interface{}) {
	if e.log != nil {
		e.log.Warnf(format, args...)
	}
}

// splitPath splits a slash-joined relative path into directory and leaf.
func splitPath(rel string) (dir, name string) {
	for i := len(rel) - 1; i >= 0; i-- {
		if rel[i] == '/' {
			return rel[:i], rel[i+1:]
		}
	}
	return "", rel
}
