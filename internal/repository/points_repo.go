package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PointsRepo struct {
	db *sql.DB
}

func NewPointsRepo(db *sql.DB) *PointsRepo {
	return &PointsRepo{db: db}
}

// AvailablePoints reads the loyalty balance of userID. found is false when
// the user has no points account.
func (r *PointsRepo) AvailablePoints(ctx context.Context, userID string) (int64, bool, error) {
	query := `
		SELECT available_points
		FROM loyalty_points
		WHERE user_id = $1
	`
	var available int64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("load loyalty points: %w", err)
	}
	if available < 0 {
		available = 0
	}
	return available, true, nil
}
