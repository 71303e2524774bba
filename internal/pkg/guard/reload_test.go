package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestPolicy(t *testing.T) (*ReloadPolicy, *Guard, *time.Time) {
	t.Helper()
	g := New(NewMemoryStore(), zap.NewNop())
	p := NewReloadPolicy(g, 5*time.Second, 100*time.Millisecond)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }
	return p, g, &now
}

func TestReloadAllowedOnce(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newTestPolicy(t)

	v := p.Check(ctx, ViewHome)
	assert.True(t, v.Allow)
	assert.Equal(t, 100*time.Millisecond, v.Debounce)

	v = p.Check(ctx, ViewHome)
	assert.False(t, v.Allow)
	assert.Equal(t, DenyTooFrequent, v.Reason, "second attempt lands inside the cooldown")
}

func TestReloadOncePerSession(t *testing.T) {
	ctx := context.Background()
	p, _, now := newTestPolicy(t)

	assert.True(t, p.Check(ctx, ViewHome).Allow)

	// Past the cooldown the once-per-session flag still denies.
	*now = now.Add(time.Minute)
	v := p.Check(ctx, ViewHome)
	assert.False(t, v.Allow)
	assert.Equal(t, DenyAlreadyReloaded, v.Reason)
}

func TestReloadDeniedDuringCriticalProcess(t *testing.T) {
	ctx := context.Background()
	p, g, _ := newTestPolicy(t)

	g.TryEnter(ctx, OpListingSubmission)

	v := p.Check(ctx, ViewHome)
	assert.False(t, v.Allow)
	assert.Equal(t, DenyCriticalProcess, v.Reason)

	g.Leave(ctx, OpListingSubmission)
	assert.True(t, p.Check(ctx, ViewHome).Allow)
}

func TestReloadDeniedOnEditViews(t *testing.T) {
	ctx := context.Background()
	p, g, _ := newTestPolicy(t)

	// Edit views are checked before anything else, even critical flags.
	g.TryEnter(ctx, OpPayment)
	for _, view := range []string{ViewCreateListing, ViewEditListing} {
		v := p.Check(ctx, view)
		assert.False(t, v.Allow)
		assert.Equal(t, DenyEditView, v.Reason)
	}
}

func TestReloadEligibleViews(t *testing.T) {
	ctx := context.Background()

	eligible := []string{ViewHome, ViewAdmin, ViewProfile, ViewListingDetail}
	for _, view := range eligible {
		p, _, _ := newTestPolicy(t)
		assert.True(t, p.Check(ctx, view).Allow, "view %s must be eligible", view)
	}

	p, _, _ := newTestPolicy(t)
	v := p.Check(ctx, "checkout")
	assert.False(t, v.Allow)
	assert.Equal(t, DenyViewNotEligible, v.Reason)
}

func TestReloadResetReopensSession(t *testing.T) {
	ctx := context.Background()
	p, _, now := newTestPolicy(t)

	assert.True(t, p.Check(ctx, ViewHome).Allow)
	*now = now.Add(time.Minute)
	assert.False(t, p.Check(ctx, ViewHome).Allow)

	p.Reset(ctx)
	assert.True(t, p.Check(ctx, ViewHome).Allow)
}
