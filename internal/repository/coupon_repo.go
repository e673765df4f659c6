package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Cheertaboi/cart-pricing-service/internal/catalog"
)

type CouponRepo struct {
	db *sql.DB
}

func NewCouponRepo(db *sql.DB) *CouponRepo {
	return &CouponRepo{db: db}
}

// ListCoupons returns every coupon definition ordered by code.
func (r *CouponRepo) ListCoupons(ctx context.Context) ([]catalog.CouponRecord, error) {
	query := `
		SELECT coupon_code, discount_type, discount_value, category, description
		FROM coupons
		ORDER BY coupon_code
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []catalog.CouponRecord
	for rows.Next() {
		var (
			rec         catalog.CouponRecord
			category    sql.NullString
			description sql.NullString
		)
		if err := rows.Scan(&rec.Code, &rec.Type, &rec.Amount, &category, &description); err != nil {
			return nil, err
		}
		rec.Category = category.String
		rec.Description = description.String
		coupons = append(coupons, rec)
	}
	return coupons, rows.Err()
}

// ActiveCampaign returns the most recent campaign row, or nil when none exists.
func (r *CouponRepo) ActiveCampaign(ctx context.Context) (*catalog.CampaignRecord, error) {
	query := `
		SELECT active, every_amount, discount_amount
		FROM campaigns
		ORDER BY updated_at DESC
		LIMIT 1
	`
	var rec catalog.CampaignRecord
	err := r.db.QueryRowContext(ctx, query).Scan(&rec.Active, &rec.Every, &rec.Discount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
