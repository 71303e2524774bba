// internal/repository/postgres/errorlog_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrorLogRepository writes submission failures to the error_logs table.
// Callers treat the insert as best effort.
type ErrorLogRepository struct {
	db *pgxpool.Pool
}

func NewErrorLogRepository(db *pgxpool.Pool) *ErrorLogRepository {
	return &ErrorLogRepository{db: db}
}

func (r *ErrorLogRepository) Insert(ctx context.Context, userID, message, fullError string) error {
	query := `
		INSERT INTO error_logs (user_id, error_message, full_error)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.Exec(ctx, query, userID, message, fullError); err != nil {
		return fmt.Errorf("failed to insert error log: %w", err)
	}
	return nil
}
