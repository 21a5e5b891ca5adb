package report

import (
	"sync"
	"time"

	"nvme-validator/pkg/types"
)

// Sink receives every recorded entry as it is created
type Sink interface {
	Write(entry types.Entry)
}

// Snapshot is a read-only view of the run counters
type Snapshot struct {
	Total     int
	Passed    int
	Failed    int
	Warnings  int
	Overall   types.Severity // SeverityPass or SeverityFail
	StartTime time.Time
	EndTime   time.Time
}

// Recorder owns the run state: counters and the ordered entry log.
// All mutation goes through Record, which is safe for concurrent use
// so checks may fan out across devices.
type Recorder struct {
	mu        sync.Mutex
	total     int
	passed    int
	failed    int
	warnings  int
	entries   []types.Entry
	startTime time.Time
	endTime   time.Time
	finalized bool
	sinks     []Sink

	now func() time.Time
}

// NewRecorder creates a recorder that forwards entries to the given sinks
func NewRecorder(sinks ...Sink) *Recorder {
	r := &Recorder{
		sinks: sinks,
		now:   time.Now,
	}
	r.startTime = r.now()
	return r
}

// Record classifies, timestamps and appends one entry.
// PASS and FAIL update the total plus their own counter; WARN only
// the warning counter; INFO touches no counter.
func (r *Recorder) Record(severity types.Severity, module, message string) types.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := types.Entry{
		Severity: severity,
		Time:     r.now(),
		Module:   module,
		Message:  message,
	}
	r.entries = append(r.entries, entry)

	switch severity {
	case types.SeverityPass:
		r.total++
		r.passed++
	case types.SeverityFail:
		r.total++
		r.failed++
	case types.SeverityWarn:
		r.warnings++
	}

	// Sinks are fed under the lock so the mirrored console and log
	// file order always matches the entry sequence
	for _, sink := range r.sinks {
		sink.Write(entry)
	}
	return entry
}

// Snapshot returns the current counters and overall result without
// mutating state
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Finalize stamps the end time exactly once and returns the final snapshot
func (r *Recorder) Finalize() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.finalized {
		r.endTime = r.now()
		r.finalized = true
	}
	return r.snapshotLocked()
}

// Entries returns a copy of the ordered entry log
func (r *Recorder) Entries() []types.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]types.Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

func (r *Recorder) snapshotLocked() Snapshot {
	overall := types.SeverityPass
	if r.failed > 0 {
		overall = types.SeverityFail
	}
	return Snapshot{
		Total:     r.total,
		Passed:    r.passed,
		Failed:    r.failed,
		Warnings:  r.warnings,
		Overall:   overall,
		StartTime: r.startTime,
		EndTime:   r.endTime,
	}
}
