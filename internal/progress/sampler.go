package progress

import (
	"fmt"
	"sync"
	"time"
)

// DefaultInterval is the minimum time between rendered samples.
const DefaultInterval = 1500 * time.Millisecond

// Sampler converts a stream of byte-count deltas into periodic human-readable
// status text. It is safe for use from a transfer's callback goroutine while
// another goroutine polls Snapshot; it never blocks and performs no I/O.
type Sampler struct {
	caption  string
	footer   string
	total    int64
	interval time.Duration

	mu          sync.Mutex
	transferred int64
	startTime   time.Time
	lastSample  time.Time
	rendered    string
	hasRendered bool

	now func() time.Time
}

// NewSampler creates a sampler for a transfer of totalSize bytes. The caption
// and footer decorate every rendered status. A non-positive interval falls
// back to DefaultInterval.
func NewSampler(caption, footer string, totalSize int64, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Sampler{
		caption:  caption,
		footer:   footer,
		total:    totalSize,
		interval: interval,
		now:      time.Now,
	}
	s.startTime = s.now()
	return s
}

// Add records delta more transferred bytes. If the sampling interval has
// elapsed since the last render, or the transfer is complete, a new status
// string is rendered and stored.
func (s *Sampler) Add(delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transferred += delta
	if s.transferred > s.total {
		s.transferred = s.total
	}

	nowT := s.now()
	if nowT.Sub(s.lastSample) < s.interval && s.transferred < s.total {
		return
	}
	s.rendered = s.render(nowT)
	s.hasRendered = true
	s.lastSample = nowT
}

// Set records an absolute transferred count, for transports that report
// cumulative totals instead of deltas.
func (s *Sampler) Set(current int64) {
	s.mu.Lock()
	delta := current - s.transferred
	s.mu.Unlock()
	if delta < 0 {
		delta = 0
	}
	s.Add(delta)
}

// Snapshot returns the most recently rendered status text. The second return
// value is false until the first sample has fired.
func (s *Sampler) Snapshot() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rendered, s.hasRendered
}

// Transferred reports the accumulated byte count.
func (s *Sampler) Transferred() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transferred
}

// render must be called with s.mu held.
func (s *Sampler) render(nowT time.Time) string {
	percentage := 0.0
	if s.total > 0 {
		percentage = float64(s.transferred) / float64(s.total) * 100
	}

	elapsed := nowT.Sub(s.startTime).Seconds()
	speedMBps := 0.0
	eta := "--:--"
	if elapsed > 0 {
		speedBps := float64(s.transferred) / elapsed
		speedMBps = speedBps / (1024 * 1024)
		if speedBps > 0 && s.transferred > 0 {
			eta = FormatClock(float64(s.total-s.transferred) / speedBps)
		}
	}

	return fmt.Sprintf("%s\n\n%s\n📊 *%.1f%%* (%s / %s)\n🚀 *Speed:* %.2f MB/s\n⏱ *ETA:* %s\n%s",
		s.caption,
		Bar(percentage),
		percentage,
		FormatSize(s.transferred),
		FormatSize(s.total),
		speedMBps,
		eta,
		s.footer,
	)
}
