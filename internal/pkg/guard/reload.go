// internal/pkg/guard/reload.go
package guard

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Views a client can report when asking whether it may refresh itself.
const (
	ViewHome          = "home"
	ViewProfile       = "profile"
	ViewListingDetail = "listing_detail"
	ViewAdmin         = "admin"
	ViewCreateListing = "create_listing"
	ViewEditListing   = "edit_listing"
)

// Denial reasons, surfaced to the client for diagnostics.
const (
	DenyCriticalProcess = "critical_process_in_progress"
	DenyEditView        = "on_listing_creation_or_edit_view"
	DenyViewNotEligible = "view_not_eligible"
	DenyTooFrequent     = "too_frequent"
	DenyAlreadyReloaded = "already_reloaded_this_session"
)

// Verdict is the reload policy's answer for one refresh attempt.
type Verdict struct {
	Allow    bool          `json:"allow"`
	Reason   string        `json:"reason,omitempty"`
	Debounce time.Duration `json:"-"`
}

// ReloadPolicy decides whether an automatic refresh (tab refocus,
// visibility change) may proceed. A refresh is suppressed while any
// critical operation is in flight, on the create/edit views, inside the
// cooldown window, and after one refresh has already happened in the
// current session.
type ReloadPolicy struct {
	guard    *Guard
	cooldown time.Duration
	debounce time.Duration
	now      func() time.Time
}

func NewReloadPolicy(g *Guard, cooldown, debounce time.Duration) *ReloadPolicy {
	if cooldown <= 0 {
		cooldown = 5 * time.Second
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &ReloadPolicy{guard: g, cooldown: cooldown, debounce: debounce, now: time.Now}
}

func eligibleView(view string) bool {
	switch {
	case view == ViewHome, view == ViewAdmin:
		return true
	case strings.HasPrefix(view, ViewProfile), strings.HasPrefix(view, ViewListingDetail):
		return true
	}
	return false
}

// Check evaluates one reload attempt. When the reload is allowed the
// reloaded/lastReload flags are recorded before the verdict is returned,
// so a racing second attempt inside the debounce window is already
// suppressed.
func (p *ReloadPolicy) Check(ctx context.Context, view string) Verdict {
	if view == ViewCreateListing || view == ViewEditListing {
		return Verdict{Reason: DenyEditView}
	}
	if p.guard.CriticalActive(ctx) {
		return Verdict{Reason: DenyCriticalProcess}
	}
	if !eligibleView(view) {
		return Verdict{Reason: DenyViewNotEligible}
	}

	now := p.now()
	if last, err := p.guard.store.Get(ctx, FlagLastReload); err == nil && last != "" {
		if ms, perr := strconv.ParseInt(last, 10, 64); perr == nil {
			if now.Sub(time.UnixMilli(ms)) < p.cooldown {
				return Verdict{Reason: DenyTooFrequent}
			}
		}
	}
	if reloaded, err := p.guard.store.Get(ctx, FlagReloaded); err == nil && reloaded == "true" {
		return Verdict{Reason: DenyAlreadyReloaded}
	}

	_ = p.guard.store.Set(ctx, FlagReloaded, "true")
	_ = p.guard.store.Set(ctx, FlagLastReload, strconv.FormatInt(now.UnixMilli(), 10))

	return Verdict{Allow: true, Debounce: p.debounce}
}

// Reset clears the once-per-session reload bookkeeping. Called when the
// shell view mounts fresh.
func (p *ReloadPolicy) Reset(ctx context.Context) {
	_ = p.guard.store.Del(ctx, FlagReloaded, FlagLastReload)
}
