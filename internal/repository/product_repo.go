package repository

import (
	"context"
	"database/sql"

	"github.com/Cheertaboi/cart-pricing-service/internal/catalog"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) ListProducts(ctx context.Context) ([]catalog.ProductRecord, error) {
	query := `SELECT id, name, price, category FROM products ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []catalog.ProductRecord
	for rows.Next() {
		var rec catalog.ProductRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Price, &rec.Category); err != nil {
			return nil, err
		}
		products = append(products, rec)
	}
	return products, rows.Err()
}
