// internal/pkg/guard/guard.go
package guard

import (
	"context"

	"go.uber.org/zap"
)

// Guard serializes critical operations against duplicate submits and
// against background refreshes. It is an explicit, injectable object:
// callers receive it by reference instead of reading ambient storage,
// which keeps the duplicate-submission protocol unit-testable.
//
// There is no server-side idempotency key anywhere in the system, so this
// guard is the only thing standing between a double-click and a duplicate
// listing. TryEnter is therefore checked twice on the submission path:
// once at the intent boundary (handler) via InProgress, and again inside
// the submission body via TryEnter itself.
type Guard struct {
	store  FlagStore
	logger *zap.Logger
}

func New(store FlagStore, logger *zap.Logger) *Guard {
	return &Guard{store: store, logger: logger}
}

// TryEnter attempts to begin a guarded operation. It returns false when
// the operation's in-progress flag is already set, in which case the
// caller must abandon the attempt without contacting the backend.
func (g *Guard) TryEnter(ctx context.Context, op Op) bool {
	flags := opFlags(op)

	// The last flag in the set is the in-progress marker checked for
	// duplicates; the others are informational. Acquisition is one atomic
	// check-and-set, so two submits racing through the store's round-trip
	// window can never both win the marker.
	inProgress := flags[len(flags)-1]
	ok, err := g.store.SetIfAbsent(ctx, inProgress, "true")
	if err != nil {
		g.logger.Warn("guard: flag acquire failed, rejecting entry",
			zap.String("op", string(op)), zap.Error(err))
		return false
	}
	if !ok {
		g.logger.Info("guard: duplicate attempt rejected", zap.String("op", string(op)))
		return false
	}

	for _, f := range flags[:len(flags)-1] {
		if err := g.store.Set(ctx, f, "true"); err != nil {
			g.logger.Warn("guard: flag write failed",
				zap.String("flag", f), zap.Error(err))
		}
	}
	return true
}

// Leave clears every flag owned by op. It must run on every exit path of
// a guarded operation, success or failure, so the system can never stay
// locked after a crash inside the body.
func (g *Guard) Leave(ctx context.Context, op Op) {
	if err := g.store.Del(ctx, opFlags(op)...); err != nil {
		g.logger.Warn("guard: flag clear failed",
			zap.String("op", string(op)), zap.Error(err))
	}
}

// InProgress reports whether op's in-progress flag is currently set. This
// is the advisory intent-boundary check; TryEnter holds the authoritative
// atomic one.
func (g *Guard) InProgress(ctx context.Context, op Op) bool {
	flags := opFlags(op)
	v, err := g.store.Get(ctx, flags[len(flags)-1])
	if err != nil {
		return false
	}
	return v == "true"
}

// CriticalActive reports whether any critical-process flag is set. Used
// by the reload policy: a refresh must never interrupt a submission or a
// payment.
func (g *Guard) CriticalActive(ctx context.Context) bool {
	for _, f := range criticalFlags {
		v, err := g.store.Get(ctx, f)
		if err != nil {
			continue
		}
		if v == "true" {
			return true
		}
	}
	return false
}
