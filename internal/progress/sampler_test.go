package progress

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance the sampler's notion of time manually.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestSampler(total int64, interval time.Duration) (*Sampler, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewSampler("⚡ *Uploading* ⚡", "☁️ Cloud upload in progress...", total, interval)
	s.now = clock.now
	s.startTime = clock.now()
	return s, clock
}

func TestSamplerNoSnapshotBeforeFirstAdd(t *testing.T) {
	s, _ := newTestSampler(1000, time.Second)
	_, ok := s.Snapshot()
	assert.False(t, ok)
}

func TestSamplerRendersOnFirstDelta(t *testing.T) {
	s, clock := newTestSampler(1000, time.Second)
	clock.advance(100 * time.Millisecond)
	s.Add(100)

	text, ok := s.Snapshot()
	require.True(t, ok)
	assert.Contains(t, text, "10.0%")
	assert.Contains(t, text, "100 B / 1000 B")
}

func TestSamplerThrottlesWithinInterval(t *testing.T) {
	s, clock := newTestSampler(1000, time.Second)
	clock.advance(10 * time.Millisecond)
	s.Add(100)
	first, _ := s.Snapshot()

	// Within the interval nothing is re-rendered.
	clock.advance(200 * time.Millisecond)
	s.Add(300)
	text, _ := s.Snapshot()
	assert.Equal(t, first, text)

	// Past the interval the next delta re-renders.
	clock.advance(time.Second)
	s.Add(100)
	text, _ = s.Snapshot()
	assert.NotEqual(t, first, text)
	assert.Contains(t, text, "50.0%")
}

func TestSamplerCompletionBypassesInterval(t *testing.T) {
	s, clock := newTestSampler(1000, time.Hour)
	clock.advance(time.Millisecond)
	s.Add(500)
	clock.advance(time.Millisecond)
	s.Add(500)

	text, ok := s.Snapshot()
	require.True(t, ok)
	assert.Contains(t, text, "100.0%")
}

func TestSamplerArbitraryDeltasReachExactly100Percent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		total := int64(rng.Intn(1<<20) + 1)
		s, clock := newTestSampler(total, time.Second)

		remaining := total
		for remaining > 0 {
			delta := int64(rng.Intn(int(remaining))) + 1
			remaining -= delta
			clock.advance(time.Duration(rng.Intn(500)) * time.Millisecond)
			s.Add(delta)
		}

		text, ok := s.Snapshot()
		require.True(t, ok)
		assert.Contains(t, text, "100.0%")
		assert.Equal(t, total, s.Transferred())
	}
}

func TestSamplerClampsOvershoot(t *testing.T) {
	s, clock := newTestSampler(100, time.Second)
	clock.advance(time.Millisecond)
	s.Add(250)

	assert.Equal(t, int64(100), s.Transferred())
	text, _ := s.Snapshot()
	assert.Contains(t, text, "100.0%")
}

func TestSamplerSetUsesCumulativeTotals(t *testing.T) {
	s, clock := newTestSampler(1000, time.Second)
	clock.advance(time.Millisecond)
	s.Set(400)
	clock.advance(2 * time.Second)
	s.Set(1000)

	assert.Equal(t, int64(1000), s.Transferred())
	text, _ := s.Snapshot()
	assert.Contains(t, text, "100.0%")

	// Regressing cumulative totals never decreases the accumulator.
	s.Set(700)
	assert.Equal(t, int64(1000), s.Transferred())
}

func TestSamplerUnknownSpeedPlaceholder(t *testing.T) {
	s, _ := newTestSampler(1000, time.Second)
	// No time has passed, so speed is unknown and ETA shows the placeholder.
	s.Add(10)
	text, ok := s.Snapshot()
	require.True(t, ok)
	assert.Contains(t, text, "--:--")
	assert.Contains(t, text, "0.00 MB/s")
}

func TestSamplerConcurrentAdds(t *testing.T) {
	const workers = 8
	const deltasPerWorker = 1000
	total := int64(workers * deltasPerWorker)
	s, clock := newTestSampler(total, time.Millisecond)
	clock.advance(time.Millisecond)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < deltasPerWorker; i++ {
				s.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, total, s.Transferred())
	text, ok := s.Snapshot()
	require.True(t, ok)
	assert.Contains(t, text, "100.0%")
}
