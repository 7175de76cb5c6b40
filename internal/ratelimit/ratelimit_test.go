package ratelimit

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmediateAdmissionUnderRate(t *testing.T) {
	l := New(3, time.Second)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Acquire(ctx))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond,
		"admissions under the rate should not block")
}

func TestBlocksWhenRateExhausted(t *testing.T) {
	l := New(1, 300*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, l.Acquire(ctx))

	start := time.Now()
	require.NoError(t, l.Acquire(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 250*time.Millisecond,
		"second admission must wait for the trailing window")
}

func TestAcquireHonorsContextCancellation(t *testing.T) {
	l := New(1, time.Minute)
	require.NoError(t, l.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := l.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTrailingWindowPropertyUnderBurstyCallers(t *testing.T) {
	const rate = 5
	const period = 300 * time.Millisecond
	const callers = 40

	l := New(rate, period)
	rng := rand.New(rand.NewSource(42))

	var mu sync.Mutex
	var admissions []time.Time

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		delay := time.Duration(rng.Intn(200)) * time.Millisecond
		wg.Add(1)
		go func(delay time.Duration) {
			defer wg.Done()
			time.Sleep(delay)
			require.NoError(t, l.Acquire(context.Background()))
			mu.Lock()
			admissions = append(admissions, time.Now())
			mu.Unlock()
		}(delay)
	}
	wg.Wait()

	require.Len(t, admissions, callers)
	sort.Slice(admissions, func(i, j int) bool { return admissions[i].Before(admissions[j]) })

	// Timestamps are recorded slightly after the actual admission, so allow
	// a small scheduling tolerance.
	const tolerance = 50 * time.Millisecond
	for i := 0; i+rate < len(admissions); i++ {
		gap := admissions[i+rate].Sub(admissions[i])
		assert.GreaterOrEqual(t, gap, period-tolerance,
			"more than %d admissions inside one trailing window", rate)
	}
}

func TestFIFOAdmissionOrder(t *testing.T) {
	l := New(1, 100*time.Millisecond)
	require.NoError(t, l.Acquire(context.Background()))

	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			require.NoError(t, l.Acquire(context.Background()))
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}(i)
		// Stagger arrivals so each waiter is parked before the next arrives.
		time.Sleep(20 * time.Millisecond)
	}
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}
