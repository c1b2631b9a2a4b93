package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestIncrement_CountsWithinWindow(t *testing.T) {
	clock := newClock()
	s := New(WithClock(clock.Now))
	ctx := context.Background()
	start := clock.Now()

	for i := 1; i <= 3; i++ {
		state, err := s.Increment(ctx, "k", 3*time.Minute)
		require.NoError(t, err)
		assert.EqualValues(t, i, state.Count)
		assert.Equal(t, start, state.WindowStart)
		clock.Advance(time.Minute)
	}
}

func TestIncrement_ResetsWhenWindowExpires(t *testing.T) {
	clock := newClock()
	s := New(WithClock(clock.Now))
	ctx := context.Background()

	_, err := s.Increment(ctx, "k", 3*time.Minute)
	require.NoError(t, err)
	_, err = s.Increment(ctx, "k", 3*time.Minute)
	require.NoError(t, err)

	clock.Advance(3 * time.Minute)

	state, err := s.Increment(ctx, "k", 3*time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, state.Count)
	assert.Equal(t, clock.Now(), state.WindowStart)
}

func TestIncrement_KeysAreIndependent(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, _ = s.Increment(ctx, "a", time.Minute)
	_, _ = s.Increment(ctx, "a", time.Minute)
	state, err := s.Increment(ctx, "b", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, state.Count)
}

func TestIncrement_Concurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Increment(ctx, "k", time.Minute)
		}()
	}
	wg.Wait()

	state, err := s.Increment(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 51, state.Count)
}

func TestBlock(t *testing.T) {
	clock := newClock()
	s := New(WithClock(clock.Now))
	ctx := context.Background()

	blocked, err := s.IsBlocked(ctx, "k:block")
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, s.SetBlock(ctx, "k:block", time.Minute))
	blocked, _ = s.IsBlocked(ctx, "k:block")
	assert.True(t, blocked)

	clock.Advance(time.Minute)
	blocked, _ = s.IsBlocked(ctx, "k:block")
	assert.False(t, blocked)

	require.NoError(t, s.SetBlock(ctx, "k:block", time.Minute))
	require.NoError(t, s.SetBlock(ctx, "k:block", 0))
	blocked, _ = s.IsBlocked(ctx, "k:block")
	assert.False(t, blocked)
}
