// internal/service/moderation/service.go
package moderation

import (
	"context"
	"strings"

	"motomarket-service/internal/domain/listing"
	xerrors "motomarket-service/internal/pkg/errors"
	"motomarket-service/internal/service/catalog"

	"go.uber.org/zap"
)

// Events receives moderation outcomes for fan-out to connected clients.
type Events interface {
	ListingStatusChanged(id string, status listing.Status)
	ListingDeleted(id string)
}

// Mailer notifies the seller after a moderation decision, best effort.
type Mailer interface {
	SendStatusChanged(to, sellerName, title string, status listing.Status) error
}

// PublicCatalog is the public browsing surface kept in step with
// moderation outcomes, so an approval shows up in search without waiting
// for a manual refresh.
type PublicCatalog interface {
	ApplyStatus(id string, status listing.Status)
	Drop(id string)
}

// Service drives the admin moderation table: a full mirror of the listing
// collection regardless of status, with per-row concurrency control on
// status changes.
type Service struct {
	repo     listing.Repository
	store    *catalog.Store
	public   PublicCatalog
	events   Events
	mail     Mailer
	inflight *inflight
	logger   *zap.Logger
}

func NewService(repo listing.Repository, store *catalog.Store, public PublicCatalog, events Events, mail Mailer, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		public:   public,
		events:   events,
		mail:     mail,
		inflight: newInflight(),
		logger:   logger,
	}
}

// LoadAll refreshes the moderation mirror from the backend and returns
// every listing, newest first. Also used as the retry action after a
// failed load.
func (s *Service) LoadAll(ctx context.Context) ([]listing.Listing, error) {
	rows, err := s.repo.FetchAll(ctx)
	if err != nil {
		s.logger.Error("moderation: load failed", zap.Error(err))
		return nil, xerrors.Wrap(err, "failed to load listings")
	}
	s.store.Replace(rows)
	return s.store.Snapshot(), nil
}

// EnsureLoaded populates the mirror on first use, so a console opened
// before any explicit reload is not served an empty collection.
func (s *Service) EnsureLoaded(ctx context.Context) error {
	if s.store.Len() > 0 {
		return nil
	}
	_, err := s.LoadAll(ctx)
	return err
}

// Search filters the mirror by free text over title, seller name, brand
// and model, and by moderation status. status "all" or "" disables the
// status filter.
func (s *Service) Search(query string, status string) []listing.Listing {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]listing.Listing, 0)
	for _, l := range s.store.Snapshot() {
		if status != "" && status != "all" && string(l.Status) != status {
			continue
		}
		if q != "" && !matchesAdminQuery(l, q) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matchesAdminQuery(l listing.Listing, q string) bool {
	for _, field := range []string{l.Title, l.SellerName, l.Brand, l.Model} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// UpdateStatus moves one listing to a new moderation state. A second
// change on the same row while one is running returns ErrRowBusy; a
// change to the status the row already has is a no-op. The mirror is
// touched only after the backend confirms.
func (s *Service) UpdateStatus(ctx context.Context, id string, status listing.Status) (*listing.Listing, error) {
	if !listing.ValidStatus(status) {
		return nil, xerrors.ErrInvalidStatus
	}

	release, ok := s.inflight.acquire(id)
	if !ok {
		s.logger.Info("moderation: row busy", zap.String("listing_id", id))
		return nil, xerrors.ErrRowBusy
	}
	defer release()

	current, err := s.current(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("moderation: status update failed",
			zap.String("listing_id", id),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return nil, xerrors.Wrap(err, "failed to update listing status")
	}

	s.store.SetStatus(id, status)
	if s.public != nil {
		s.public.ApplyStatus(id, status)
	}
	if s.events != nil {
		s.events.ListingStatusChanged(id, status)
	}
	s.notifySeller(current, status)

	s.logger.Info("moderation: status updated",
		zap.String("listing_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
	)
	updated := *current
	updated.Status = status
	return &updated, nil
}

// Delete removes a listing permanently. The caller must confirm the
// irreversible action explicitly.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return xerrors.ErrConfirmationRequired
	}

	release, ok := s.inflight.acquire(id)
	if !ok {
		return xerrors.ErrRowBusy
	}
	defer release()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("moderation: delete failed", zap.String("listing_id", id), zap.Error(err))
		return xerrors.Wrap(err, "failed to delete listing")
	}

	s.store.Remove(id)
	if s.public != nil {
		s.public.Drop(id)
	}
	if s.events != nil {
		s.events.ListingDeleted(id)
	}
	s.logger.Info("moderation: listing deleted", zap.String("listing_id", id))
	return nil
}

func (s *Service) current(ctx context.Context, id string) (*listing.Listing, error) {
	if l, ok := s.store.Get(id); ok {
		return &l, nil
	}
	return s.repo.FetchByID(ctx, id)
}

func (s *Service) notifySeller(l *listing.Listing, status listing.Status) {
	if s.mail == nil || l.Email == "" {
		return
	}
	// Mail delivery never blocks or fails the moderation action.
	go func(to, name, title string, st listing.Status) {
		if err := s.mail.SendStatusChanged(to, name, title, st); err != nil {
			s.logger.Warn("moderation: seller mail failed", zap.String("to", to), zap.Error(err))
		}
	}(l.Email, l.SellerName, l.Title, status)
}
