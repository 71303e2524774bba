package guard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestGuard() (*Guard, *MemoryStore) {
	store := NewMemoryStore()
	return New(store, zap.NewNop()), store
}

func TestTryEnterRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGuard()

	assert.True(t, g.TryEnter(ctx, OpListingSubmission))
	assert.False(t, g.TryEnter(ctx, OpListingSubmission), "second attempt must be rejected while flags are set")

	g.Leave(ctx, OpListingSubmission)
	assert.True(t, g.TryEnter(ctx, OpListingSubmission), "guard must reopen after Leave")
}

func TestLeaveClearsAllFlags(t *testing.T) {
	ctx := context.Background()
	g, store := newTestGuard()

	g.TryEnter(ctx, OpListingSubmission)
	g.Leave(ctx, OpListingSubmission)

	for _, f := range []string{FlagSubmitting, FlagSubmissionInProgress} {
		v, err := store.Get(ctx, f)
		assert.NoError(t, err)
		assert.Empty(t, v, "flag %s must be cleared", f)
	}
}

func TestOperationsDoNotInterfere(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGuard()

	assert.True(t, g.TryEnter(ctx, OpListingSubmission))
	assert.True(t, g.TryEnter(ctx, OpPayment), "payment owns different flags")

	g.Leave(ctx, OpPayment)
	assert.False(t, g.TryEnter(ctx, OpListingSubmission), "submission is still in flight")
}

func TestInProgress(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGuard()

	assert.False(t, g.InProgress(ctx, OpListingSubmission))
	g.TryEnter(ctx, OpListingSubmission)
	assert.True(t, g.InProgress(ctx, OpListingSubmission))
}

func TestCriticalActive(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGuard()

	assert.False(t, g.CriticalActive(ctx))

	g.TryEnter(ctx, OpPayment)
	assert.True(t, g.CriticalActive(ctx), "payment flag is critical")

	g.Leave(ctx, OpPayment)
	assert.False(t, g.CriticalActive(ctx))
}

// laggyStore adds round-trip latency to every store call while keeping
// acquisition atomic, standing in for a remote flag store.
type laggyStore struct {
	inner *MemoryStore
	lag   time.Duration
}

func (s *laggyStore) Get(ctx context.Context, key string) (string, error) {
	time.Sleep(s.lag)
	return s.inner.Get(ctx, key)
}

func (s *laggyStore) Set(ctx context.Context, key, value string) error {
	time.Sleep(s.lag)
	return s.inner.Set(ctx, key, value)
}

func (s *laggyStore) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	time.Sleep(s.lag)
	return s.inner.SetIfAbsent(ctx, key, value)
}

func (s *laggyStore) Del(ctx context.Context, keys ...string) error {
	time.Sleep(s.lag)
	return s.inner.Del(ctx, keys...)
}

func TestConcurrentTryEnterAdmitsExactlyOne(t *testing.T) {
	ctx := context.Background()
	g := New(&laggyStore{inner: NewMemoryStore(), lag: 20 * time.Millisecond}, zap.NewNop())

	const attempts = 8
	results := make(chan bool, attempts)
	var gate sync.WaitGroup
	gate.Add(1)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gate.Wait()
			results <- g.TryEnter(ctx, OpListingSubmission)
		}()
	}
	gate.Done()
	wg.Wait()
	close(results)

	admitted := 0
	for ok := range results {
		if ok {
			admitted++
		}
	}
	assert.Equal(t, 1, admitted, "exactly one concurrent submit may proceed")
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestGuard()
	b, _ := newTestGuard()

	assert.True(t, a.TryEnter(ctx, OpListingSubmission))
	assert.True(t, b.TryEnter(ctx, OpListingSubmission), "a different session has its own flags")
}
