package moderation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"motomarket-service/internal/domain/listing"
	xerrors "motomarket-service/internal/pkg/errors"
	"motomarket-service/internal/service/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// blockingRepo parks UpdateStatus calls on a channel so tests can hold a
// row mid-update.
type blockingRepo struct {
	mu        sync.Mutex
	rows      []listing.Listing
	updateErr error
	deleteErr error
	block     chan struct{}
	statusLog []string
}

func (r *blockingRepo) FetchAll(context.Context) ([]listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]listing.Listing, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *blockingRepo) FetchByID(_ context.Context, id string) (*listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.rows {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *blockingRepo) FetchBySeller(context.Context, string) ([]listing.Listing, error) {
	return nil, nil
}
func (r *blockingRepo) Create(context.Context, *listing.Listing) error      { return nil }
func (r *blockingRepo) Update(context.Context, string, listing.Patch) error { return nil }

func (r *blockingRepo) UpdateStatus(_ context.Context, id string, status listing.Status) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.statusLog = append(r.statusLog, id+":"+string(status))
	r.mu.Unlock()
	return r.updateErr
}

func (r *blockingRepo) Delete(context.Context, string) error { return r.deleteErr }

type recordingEvents struct {
	mu      sync.Mutex
	changed []string
	deleted []string
}

func (e *recordingEvents) ListingStatusChanged(id string, status listing.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.changed = append(e.changed, id+":"+string(status))
}

func (e *recordingEvents) ListingDeleted(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deleted = append(e.deleted, id)
}

func newModeration(t *testing.T, repo *blockingRepo) (*Service, *catalog.Store, *recordingEvents) {
	t.Helper()
	store := catalog.NewStore()
	events := &recordingEvents{}
	svc := NewService(repo, store, nil, events, nil, zap.NewNop())
	_, err := svc.LoadAll(context.Background())
	require.NoError(t, err)
	return svc, store, events
}

func pendingRows() []listing.Listing {
	return []listing.Listing{
		{ID: "a", Title: "Honda CBR", SellerName: "Ana", Brand: "Honda", Model: "CBR", Status: listing.StatusPending},
		{ID: "b", Title: "Yamaha MT-07", SellerName: "Bogdan", Brand: "Yamaha", Model: "MT-07", Status: listing.StatusPending},
	}
}

func TestUpdateStatusHappyPath(t *testing.T) {
	ctx := context.Background()
	svc, store, events := newModeration(t, &blockingRepo{rows: pendingRows()})

	updated, err := svc.UpdateStatus(ctx, "a", listing.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, listing.StatusActive, updated.Status)

	row, _ := store.Get("a")
	assert.Equal(t, listing.StatusActive, row.Status)
	assert.Equal(t, []string{"a:active"}, events.changed)
}

func TestUpdateStatusRejectsBusyRow(t *testing.T) {
	ctx := context.Background()
	repo := &blockingRepo{rows: pendingRows(), block: make(chan struct{})}
	svc, _, _ := newModeration(t, repo)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := svc.UpdateStatus(ctx, "a", listing.StatusActive)
		done <- err
	}()

	<-started
	// Give the goroutine time to take the row before the second attempt.
	time.Sleep(20 * time.Millisecond)

	_, err := svc.UpdateStatus(ctx, "a", listing.StatusRejected)
	assert.ErrorIs(t, err, xerrors.ErrRowBusy)

	// A different row proceeds while "a" is held.
	repoB := make(chan error, 1)
	go func() {
		_, err := svc.UpdateStatus(ctx, "b", listing.StatusActive)
		repoB <- err
	}()

	close(repo.block)
	assert.NoError(t, <-done)
	assert.NoError(t, <-repoB)

	// The released row accepts changes again.
	_, err = svc.UpdateStatus(ctx, "a", listing.StatusRejected)
	assert.NoError(t, err)
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := &blockingRepo{rows: pendingRows()}
	svc, _, events := newModeration(t, repo)

	updated, err := svc.UpdateStatus(ctx, "a", listing.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, listing.StatusPending, updated.Status)
	assert.Empty(t, repo.statusLog, "no backend call for an unchanged status")
	assert.Empty(t, events.changed)
}

func TestUpdateStatusInvalidStatus(t *testing.T) {
	svc, _, _ := newModeration(t, &blockingRepo{rows: pendingRows()})

	_, err := svc.UpdateStatus(context.Background(), "a", listing.Status("archived"))
	assert.ErrorIs(t, err, xerrors.ErrInvalidStatus)
}

func TestUpdateStatusBackendFailureLeavesMirrorUntouched(t *testing.T) {
	ctx := context.Background()
	repo := &blockingRepo{rows: pendingRows(), updateErr: errors.New("network error")}
	svc, store, events := newModeration(t, repo)

	_, err := svc.UpdateStatus(ctx, "a", listing.StatusActive)
	assert.Error(t, err)

	row, _ := store.Get("a")
	assert.Equal(t, listing.StatusPending, row.Status, "mirror only changes after the backend confirms")
	assert.Empty(t, events.changed)

	// The row is released after the failure.
	repo.updateErr = nil
	_, err = svc.UpdateStatus(ctx, "a", listing.StatusActive)
	assert.NoError(t, err)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	svc, store, events := newModeration(t, &blockingRepo{rows: pendingRows()})

	err := svc.Delete(ctx, "a", false)
	assert.ErrorIs(t, err, xerrors.ErrConfirmationRequired)
	assert.Equal(t, 2, store.Len())

	require.NoError(t, svc.Delete(ctx, "a", true))
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, []string{"a"}, events.deleted)
}

func TestModerationOutcomesReachPublicCatalog(t *testing.T) {
	ctx := context.Background()
	repo := &blockingRepo{rows: pendingRows()}

	pubStore := catalog.NewStore()
	public := catalog.NewService(repo, pubStore, nil, 10, zap.NewNop())
	require.NoError(t, public.Load(ctx))

	adminStore := catalog.NewStore()
	svc := NewService(repo, adminStore, public, &recordingEvents{}, nil, zap.NewNop())
	_, err := svc.LoadAll(ctx)
	require.NoError(t, err)

	// An approval becomes searchable on the public surface right away.
	_, err = svc.UpdateStatus(ctx, "a", listing.StatusActive)
	require.NoError(t, err)
	res := public.Search("", catalog.FilterSet{}, 1, true)
	require.Len(t, res.Listings, 1)
	assert.Equal(t, "a", res.Listings[0].ID)

	// A deletion disappears from the public surface right away.
	require.NoError(t, svc.Delete(ctx, "a", true))
	res = public.Search("", catalog.FilterSet{}, 1, true)
	assert.Empty(t, res.Listings)
}

func TestEnsureLoadedPopulatesEmptyMirror(t *testing.T) {
	ctx := context.Background()
	repo := &blockingRepo{rows: pendingRows()}
	svc := NewService(repo, catalog.NewStore(), nil, nil, nil, zap.NewNop())

	require.NoError(t, svc.EnsureLoaded(ctx))
	assert.Len(t, svc.Search("", "all"), 2)

	// A populated mirror is not refetched.
	repo.mu.Lock()
	repo.rows = nil
	repo.mu.Unlock()
	require.NoError(t, svc.EnsureLoaded(ctx))
	assert.Len(t, svc.Search("", "all"), 2)
}

func TestSearchFiltersTextAndStatus(t *testing.T) {
	rows := pendingRows()
	rows[1].Status = listing.StatusActive
	svc, _, _ := newModeration(t, &blockingRepo{rows: rows})

	assert.Len(t, svc.Search("", "all"), 2)
	assert.Len(t, svc.Search("", "pending"), 1)
	assert.Len(t, svc.Search("honda", "all"), 1)
	assert.Len(t, svc.Search("bogdan", "all"), 1, "seller name is searchable")
	assert.Empty(t, svc.Search("ducati", "all"))
}
