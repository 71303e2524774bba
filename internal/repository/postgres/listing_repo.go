// internal/repository/postgres/listing_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motomarket-service/internal/domain/listing"
	xerrors "motomarket-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type ListingRepository struct {
	db *pgxpool.Pool
}

func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `
	id, title, brand, model, category, color, description, price, year,
	mileage, engine_capacity, fuel_type, transmission, condition, features,
	images, location, availability, status, seller_id, seller_name,
	seller_type, phone, email, created_at, updated_at
`

func scanListing(row pgx.Row) (*listing.Listing, error) {
	var l listing.Listing
	var features, images []string
	err := row.Scan(
		&l.ID, &l.Title, &l.Brand, &l.Model, &l.Category, &l.Color,
		&l.Description, &l.Price, &l.Year, &l.Mileage, &l.EngineCapacity,
		&l.FuelType, &l.Transmission, &l.Condition, pq.Array(&features),
		pq.Array(&images), &l.Location, &l.Availability, &l.Status,
		&l.SellerID, &l.SellerName, &l.SellerType, &l.Phone, &l.Email,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Features = features
	l.Images = images
	return &l, nil
}

// FetchAll returns every listing regardless of status, newest first.
func (r *ListingRepository) FetchAll(ctx context.Context) ([]listing.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings ORDER BY created_at DESC`, listingColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	defer rows.Close()

	var out []listing.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *ListingRepository) FetchByID(ctx context.Context, id string) (*listing.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE id = $1`, listingColumns)

	l, err := scanListing(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing %s: %w", id, err)
	}
	return l, nil
}

func (r *ListingRepository) FetchBySeller(ctx context.Context, sellerID string) ([]listing.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE seller_id = $1 ORDER BY created_at DESC`, listingColumns)

	rows, err := r.db.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller listings: %w", err)
	}
	defer rows.Close()

	var out []listing.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	query := `
		INSERT INTO listings (
			id, title, brand, model, category, color, description, price,
			year, mileage, engine_capacity, fuel_type, transmission,
			condition, features, images, location, availability, status,
			seller_id, seller_name, seller_type, phone, email
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		l.ID, l.Title, l.Brand, l.Model, l.Category, l.Color, l.Description,
		l.Price, l.Year, l.Mileage, l.EngineCapacity, l.FuelType,
		l.Transmission, l.Condition, pq.Array(l.Features), pq.Array(l.Images),
		l.Location, l.Availability, l.Status, l.SellerID, l.SellerName,
		l.SellerType, l.Phone, l.Email,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, id string, p listing.Patch) error {
	query := `
		UPDATE listings SET
			title = $1, category = $2, brand = $3, model = $4, year = $5,
			mileage = $6, engine_capacity = $7, fuel_type = $8,
			transmission = $9, color = $10, condition = $11, price = $12,
			location = $13, description = $14, features = $15, images = $16,
			availability = $17, status = $18, updated_at = $19
		WHERE id = $20
	`

	tag, err := r.db.Exec(ctx, query,
		p.Title, p.Category, p.Brand, p.Model, p.Year, p.Mileage,
		p.EngineCapacity, p.FuelType, p.Transmission, p.Color, p.Condition,
		p.Price, p.Location, p.Description, pq.Array(p.Features),
		pq.Array(p.Images), p.Availability, p.Status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id string, status listing.Status) error {
	query := `UPDATE listings SET status = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update listing status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
