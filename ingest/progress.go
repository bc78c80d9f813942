package ingest

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports catalog load progress as rows are written.
// When the total row count is known up front it prints a percentage;
// a zero or negative total switches to a plain running count.
type ProgressTracker struct {
	mu           sync.Mutex
	writer       io.Writer
	total        int
	current      int
	interval     int
	lastReported int
	startedAt    time.Time
	started      bool
}

// NewProgressTracker returns a tracker that writes one line per
// reportInterval rows to writer, usually os.Stderr. Pass total as 0
// when the row count is unknown.
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	return &ProgressTracker{
		writer:   writer,
		total:    total,
		interval: reportInterval,
	}
}

// Start resets the counters and begins timing. Update, Increment and
// Finish are silent until Start has run.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startedAt = time.Now()
	p.started = true
	p.current = 0
	p.lastReported = 0
}

// Update sets the row counter to current.
func (p *ProgressTracker) Update(current int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance(current)
}

// Increment adds delta to the row counter.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance(p.current + delta)
}

// advance moves the counter to current, capped at a known total, and
// reports once a full interval has passed since the last report.
// Callers hold mu.
func (p *ProgressTracker) advance(current int) {
	if !p.started {
		return
	}
	if p.total > 0 && current > p.total {
		current = p.total
	}
	p.current = current

	if p.current-p.lastReported < p.interval {
		return
	}
	p.report()
	p.lastReported = p.current
}

// Finish forces a final report and terminates the line. With a known
// total the counter is pinned to it first.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	if p.total > 0 {
		p.current = p.total
	}
	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time since Start, or zero before it.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}
	return time.Since(p.startedAt)
}

// report rewrites the progress line in place. Callers hold mu.
func (p *ProgressTracker) report() {
	rate := float64(p.current) / time.Since(p.startedAt).Seconds()

	if p.total > 0 {
		pct := 100 * float64(p.current) / float64(p.total)
		fmt.Fprintf(p.writer, "\rLoaded %d/%d rows (%.1f%%) at %.1f rows/s",
			p.current, p.total, pct, rate)
		return
	}
	fmt.Fprintf(p.writer, "\rLoaded %d rows at %.1f rows/s", p.current, rate)
}
