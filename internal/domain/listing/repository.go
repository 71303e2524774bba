package listing

import "context"

// Repository is the backend collaborator contract the marketplace core
// relies on. Rows come back ordered by created_at descending.
type Repository interface {
	FetchAll(ctx context.Context) ([]Listing, error)
	FetchByID(ctx context.Context, id string) (*Listing, error)
	FetchBySeller(ctx context.Context, sellerID string) ([]Listing, error)
	Create(ctx context.Context, l *Listing) error
	Update(ctx context.Context, id string, patch Patch) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
