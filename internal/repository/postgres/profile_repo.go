// internal/repository/postgres/profile_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"motomarket-service/internal/domain/profile"
	xerrors "motomarket-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, user_id, name, email, phone, seller_type, verified, created_at`

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE id = $1`, profileColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE user_id = $1`, profileColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

func (r *ProfileRepository) scanOne(row pgx.Row) (*profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone,
		&p.SellerType, &p.Verified, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &p, nil
}
