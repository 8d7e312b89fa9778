// Package session orchestrates the curator pipeline: scan → classify →
// plan → execute, with audit recording and processing state.
//
// A session exclusively owns its root and everything derived from it. The
// single-active-session rule is enforced across processes with a file lock
// under the state directory.
package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/harrison/curator/internal/auditlog"
	"github.com/harrison/curator/internal/classifier"
	"github.com/harrison/curator/internal/config"
	"github.com/harrison/curator/internal/duplicates"
	"github.com/harrison/curator/internal/executor"
	"github.com/harrison/curator/internal/filelock"
	"github.com/harrison/curator/internal/logger"
	"github.com/harrison/curator/internal/models"
	"github.com/harrison/curator/internal/planner"
	"github.com/harrison/curator/internal/rules"
	"github.com/harrison/curator/internal/storage"
	"github.com/harrison/curator/internal/walker"
)

// ScanResult is the outcome of one completed scan.
type ScanResult struct {
	Files      []models.FileRecord
	Duplicates []models.DuplicateGroup
}

// Session owns one scan-and-organize flow over a root directory.
type Session struct {
	cfg     *config.Config
	root    *storage.Root
	rules   *rules.Store
	class   *classifier.Classifier
	audit   *auditlog.Log
	console *logger.ConsoleLogger
	state   models.ProcessingState
	lock    *filelock.FileLock

	// OnProgress, when set, receives executor progress updates in addition
	// to the session's own state tracking.
	OnProgress executor.ProgressFunc

	// lastScan holds the records of the most recent successful scan, used by
	// Organize when planning.
	lastScan []models.FileRecord
}

// New creates a Session over the given root. oracle may be nil when the
// remote oracle is disabled; console may be nil to silence output.
func New(cfg *config.Config, root *storage.Root, ruleStore *rules.Store, oracle classifier.Oracle, console *logger.ConsoleLogger) *Session {
	audit := auditlog.New(cfg.AuditCapacity)
	// A nil *ConsoleLogger must not become a non-nil interface value.
	var debug classifier.DebugLogger
	if console != nil {
		debug = console
	}
	return &Session{
		cfg:     cfg,
		root:    root,
		rules:   ruleStore,
		class:   classifier.New(oracle, debug),
		audit:   audit,
		console: console,
		state:   models.ProcessingState{SessionID: uuid.NewString()},
	}
}

// Acquire takes the cross-process session lock under the state directory.
// It fails without blocking when another curator session is active; the
// caller must treat that as terminal, the same as a declined root.
func (s *Session) Acquire(stateDir string) error {
	lock := filelock.NewFileLock(filepath.Join(stateDir, "session.lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another curator session is active in %s", stateDir)
	}
	s.lock = lock
	return nil
}

// Release drops the session lock if held.
func (s *Session) Release() {
	if s.lock != nil {
		_ = s.lock.Unlock()
		s.lock = nil
	}
}

// State returns a copy of the current processing state.
func (s *Session) State() models.ProcessingState {
	return s.state
}

// Audit exposes the session's audit log.
func (s *Session) Audit() *auditlog.Log {
	return s.audit
}

// Scan walks the root, classifies every discovered file, and derives
// duplicate groups. A traversal failure discards all partial results and is
// returned as-is; oracle problems never surface here.
func (s *Session) Scan(ctx context.Context) (*ScanResult, error) {
	s.state.Reset()
	s.state.Scanning = true
	defer func() { s.state.Scanning = false }()

	s.audit.Appendf(auditlog.SeverityInfo, "scan started at %s", s.root.Path())

	w := walker.New(s.root, s.cfg.Exclusions)
	records, err := w.Walk(ctx)
	if err != nil {
		s.state.LastError = err
		s.audit.Appendf(auditlog.SeverityError, "scan aborted: %v", err)
		return nil, err
	}

	s.class.Classify(ctx, records, s.rules.Get())
	groups := duplicates.Detect(records)

	s.lastScan = records
	s.audit.Appendf(auditlog.SeverityInfo, "scan completed: %d file(s), %d duplicate group(s)", len(records), len(groups))
	return &ScanResult{Files: records, Duplicates: groups}, nil
}

// Organize plans and executes moves for the selected file names against the
// most recent scan. dest may be nil to organize into the scanned root, or a
// different root to move files elsewhere. The returned summary reports
// counts only; per the continue-on-error policy a partial failure does not
// abort the batch.
func (s *Session) Organize(ctx context.Context, selection []string, dest *storage.Root) (models.MoveSummary, error) {
	if s.lastScan == nil {
		return models.MoveSummary{}, fmt.Errorf("no scan results: run a scan before organizing")
	}
	if dest == nil {
		dest = s.root
	}

	operations := planner.Plan(s.lastScan, selection)
	if len(operations) == 0 {
		s.audit.Append(auditlog.SeverityInfo, "organize requested with nothing to move")
		return models.MoveSummary{}, nil
	}

	s.state.Reset()
	s.state.Organizing = true
	defer func() { s.state.Organizing = false }()

	s.audit.Appendf(auditlog.SeverityInfo, "organize started: %d operation(s)", len(operations))

	exec := executor.New(s.root, dest, s.trackProgress, &executorLog{console: s.console, audit: s.audit})
	summary := exec.Execute(ctx, operations)

	if summary.Failed > 0 {
		s.state.LastError = fmt.Errorf("%s", summary.String())
		s.audit.Appendf(auditlog.SeverityWarn, "organize finished with failures: %s", summary.String())
	} else {
		s.audit.Appendf(auditlog.SeverityInfo, "organize finished: %s", summary.String())
	}

	// Successfully moved files no longer exist at their old paths; retire
	// them from the scan snapshot.
	s.retireMoved(operations, summary)

	return summary, nil
}

// executorLog forwards executor events to the console and records failed
// operations in the audit log.
type executorLog struct {
	console *logger.ConsoleLogger
	audit   *auditlog.Log
}

func (l *executorLog) Infof(format string, args ...interface{}) {
	if l.console != nil {
		l.console.Infof(format, args...)
	}
}

func (l *executorLog) Warnf(format string, args ...interface{}) {
	if l.console != nil {
		l.console.Warnf(format, args...)
	}
	l.audit.Appendf(auditlog.SeverityWarn, format, args...)
}

// trackProgress records executor progress in the session state and forwards
// it to any registered callback.
func (s *Session) trackProgress(processed, total, pct int) {
	s.state.SetProgress(pct)
	if s.OnProgress != nil {
		s.OnProgress(processed, total, pct)
	}
}

// retireMoved drops records for source paths that were moved. When the batch
// had failures the snapshot is conservatively kept as is, since the summary
// carries no per-item detail.
func (s *Session) retireMoved(operations []models.MoveOperation, summary models.MoveSummary) {
	if summary.Failed > 0 || summary.Succeeded == 0 {
		return
	}
	moved := make(map[string]bool, len(operations))
	for _, op := range operations {
		moved[op.SourcePath] = true
	}
	kept := s.lastScan[:0]
	for _, record := range s.lastScan {
		if !moved[record.RelativePath] {
			kept = append(kept, record)
		}
	}
	s.lastScan = kept
}
