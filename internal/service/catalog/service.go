// internal/service/catalog/service.go
package catalog

import (
	"context"
	"fmt"

	"motomarket-service/internal/domain/listing"

	"go.uber.org/zap"
)

// Service owns the public browsing surface: one shared Store of active
// rows, the facet evaluator and the pagination slicer on top of it.
type Service struct {
	repo     listing.Repository
	store    *Store
	cache    *RowCache // optional
	pageSize int
	logger   *zap.Logger
}

func NewService(repo listing.Repository, store *Store, cache *RowCache, pageSize int, logger *zap.Logger) *Service {
	if pageSize < 1 {
		pageSize = 12
	}
	return &Service{
		repo:     repo,
		store:    store,
		cache:    cache,
		pageSize: pageSize,
		logger:   logger,
	}
}

// SearchResult is one page of the filtered view.
type SearchResult struct {
	Listings   []listing.Listing `json:"listings"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Total      int               `json:"total"`
}

// Load populates the store from the row cache, falling back to the
// backend. Called once per surface load and again on manual retry.
func (s *Service) Load(ctx context.Context) error {
	if s.cache != nil {
		rows, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("catalog: row cache read failed", zap.Error(err))
		} else if rows != nil {
			s.store.Replace(rows)
			return nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh bypasses the cache and reloads the whole set from the backend.
func (s *Service) Refresh(ctx context.Context) error {
	rows, err := s.repo.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load listings: %w", err)
	}
	s.store.Replace(rows)
	if s.cache != nil {
		if err := s.cache.Set(ctx, rows); err != nil {
			s.logger.Warn("catalog: row cache write failed", zap.Error(err))
		}
	}
	s.logger.Info("catalog: listings loaded", zap.Int("count", len(rows)))
	return nil
}

// Search runs the facet pass over the in-memory collection and slices the
// requested page. Public browsing sees only active rows; the evaluator
// itself never looks at status. When the requested page falls past the
// end of the filtered set (a filter change shrank it), the view resets to
// page 1 rather than showing an empty window.
func (s *Service) Search(query string, filters FilterSet, page int, onlyActive bool) SearchResult {
	snapshot := s.store.Snapshot()

	filtered := make([]listing.Listing, 0, len(snapshot))
	for _, l := range snapshot {
		if onlyActive && l.Status != listing.StatusActive {
			continue
		}
		if Matches(l, query, filters) {
			filtered = append(filtered, l)
		}
	}

	if page < 1 {
		page = 1
	}
	pageItems, totalPages := Paginate(filtered, s.pageSize, page)
	if page > totalPages && totalPages > 0 {
		page = 1
		pageItems, totalPages = Paginate(filtered, s.pageSize, page)
	}

	return SearchResult{
		Listings:   pageItems,
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
	}
}

// GetByID serves the detail view: the in-memory mirror first, then the
// backend for rows that are not in the current collection.
func (s *Service) GetByID(ctx context.Context, id string) (*listing.Listing, error) {
	if l, ok := s.store.Get(id); ok {
		return &l, nil
	}
	return s.repo.FetchByID(ctx, id)
}

// BySeller returns the seller's rows for the profile view.
func (s *Service) BySeller(ctx context.Context, sellerID string) ([]listing.Listing, error) {
	return s.repo.FetchBySeller(ctx, sellerID)
}

// Apply mirrors a successful remote mutation into the shared collection.
func (s *Service) Apply(l listing.Listing) {
	s.store.Upsert(l)
	if s.cache != nil {
		_ = s.cache.Invalidate(context.Background())
	}
}

// ApplyStatus mirrors a moderation outcome into the shared collection, so
// an approved row becomes searchable without a manual refresh.
func (s *Service) ApplyStatus(id string, status listing.Status) {
	s.store.SetStatus(id, status)
	if s.cache != nil {
		_ = s.cache.Invalidate(context.Background())
	}
}

// Drop removes a deleted row from the shared collection.
func (s *Service) Drop(id string) {
	s.store.Remove(id)
	if s.cache != nil {
		_ = s.cache.Invalidate(context.Background())
	}
}
