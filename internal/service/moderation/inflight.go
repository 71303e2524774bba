// internal/service/moderation/inflight.go
package moderation

import "sync"

// inflight tracks listing IDs with a status change already running so a
// second click on the same row is rejected instead of queued. Changes on
// different rows proceed independently.
type inflight struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{ids: make(map[string]struct{})}
}

// acquire marks id busy. The returned release must be called exactly once;
// ok is false when the row is already being updated.
func (f *inflight) acquire(id string) (release func(), ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.ids[id]; busy {
		return nil, false
	}
	f.ids[id] = struct{}{}
	return func() {
		f.mu.Lock()
		delete(f.ids, id)
		f.mu.Unlock()
	}, true
}

func (f *inflight) busy(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, b := f.ids[id]
	return b
}
