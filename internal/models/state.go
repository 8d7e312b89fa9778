package models

// ProcessingState is the transient state of one curator session. The pipeline
// is sequential, so the state is updated by exactly one goroutine at a time;
// progress is monotonic within a single operation and resets between them.
type ProcessingState struct {
	SessionID  string // uuid assigned when the session starts
	Scanning   bool
	Organizing bool
	Progress   int   // 0–100, non-decreasing within one scan or move batch
	LastError  error // nil when the last operation succeeded
}

// SetProgress clamps and records a progress percentage. Values below the
// current progress are ignored to keep the externally observable sequence
// non-decreasing.
func (s *ProcessingState) SetProgress(pct int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if pct < s.Progress {
		return
	}
	s.Progress = pct
}

// Reset clears per-operation state ahead of a new scan or move batch.
func (s *ProcessingState) Reset() {
	s.Scanning = false
	s.Organizing = false
	s.Progress = 0
	s.LastError = nil
}
