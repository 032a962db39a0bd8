package sim

import "time"

// FrameTimer keeps a ring of recent frame durations for FPS reporting.
type FrameTimer struct {
	samples []time.Duration
	next    int
	filled  bool
	last    time.Time
}

// NewFrameTimer averages over the last n frames.
func NewFrameTimer(n int) *FrameTimer {
	return &FrameTimer{samples: make([]time.Duration, max(1, n))}
}

// Tick records a frame boundary at now. It reports true each time the ring
// wraps, which frontends use to log at a steady cadence.
func (t *FrameTimer) Tick(now time.Time) bool {
	if t.last.IsZero() {
		t.last = now
		return false
	}
	t.samples[t.next] = now.Sub(t.last)
	t.last = now
	t.next++
	if t.next == len(t.samples) {
		t.next = 0
		t.filled = true
		return true
	}
	return false
}

// FPS returns the average frame rate over the recorded samples.
func (t *FrameTimer) FPS() float64 {
	n := t.next
	if t.filled {
		n = len(t.samples)
	}
	if n == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range t.samples[:n] {
		total += d
	}
	if total <= 0 {
		return 0
	}
	return float64(n) / total.Seconds()
}
