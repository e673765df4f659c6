package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Cheertaboi/cart-pricing-service/internal/cache"
	"github.com/Cheertaboi/cart-pricing-service/internal/catalog"
	"github.com/Cheertaboi/cart-pricing-service/internal/concurrency"
)

// CatalogSource loads the catalog document the service starts with.
type CatalogSource interface {
	Load(ctx context.Context) (catalog.Document, error)
}

// FileSource reads a YAML catalog; an empty path means the bundled default.
type FileSource struct {
	Path string
}

func (s FileSource) Load(context.Context) (catalog.Document, error) {
	if s.Path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(s.Path)
}

// PostgresSource reads coupons, products and the campaign from Postgres in parallel.
type PostgresSource struct {
	coupons  *CouponRepo
	products *ProductRepo
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{
		coupons:  NewCouponRepo(db),
		products: NewProductRepo(db),
	}
}

func (s *PostgresSource) Load(ctx context.Context) (catalog.Document, error) {
	var doc catalog.Document
	err := concurrency.RunAll(ctx, 3,
		func(ctx context.Context) error {
			coupons, err := s.coupons.ListCoupons(ctx)
			if err != nil {
				return fmt.Errorf("list coupons: %w", err)
			}
			doc.Coupons = coupons
			return nil
		},
		func(ctx context.Context) error {
			products, err := s.products.ListProducts(ctx)
			if err != nil {
				return fmt.Errorf("list products: %w", err)
			}
			doc.Products = products
			return nil
		},
		func(ctx context.Context) error {
			campaign, err := s.coupons.ActiveCampaign(ctx)
			if err != nil {
				return fmt.Errorf("load campaign: %w", err)
			}
			doc.Campaign = campaign
			return nil
		},
	)
	if err != nil {
		return catalog.Document{}, err
	}
	return doc, nil
}

const catalogCacheKey = "catalog:v1"

// CachedSource serves the catalog from a snapshot cache and falls back to
// the wrapped source on a miss. Cache failures are logged, never returned.
type CachedSource struct {
	source CatalogSource
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedSource(source CatalogSource, store cache.Store, ttl time.Duration, logger *zap.Logger) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{source: source, store: store, ttl: ttl, logger: logger}
}

func (s *CachedSource) Load(ctx context.Context) (catalog.Document, error) {
	data, ok, err := s.store.Get(ctx, catalogCacheKey)
	if err != nil {
		s.logger.Warn("catalog cache read failed", zap.Error(err))
	}
	if ok {
		var doc catalog.Document
		decodeErr := json.Unmarshal(data, &doc)
		if decodeErr == nil {
			s.logger.Debug("catalog served from cache")
			return doc, nil
		}
		s.logger.Warn("catalog cache entry unreadable", zap.Error(decodeErr))
	}

	doc, err := s.source.Load(ctx)
	if err != nil {
		return catalog.Document{}, err
	}

	if data, err := json.Marshal(doc); err == nil {
		if err := s.store.Set(ctx, catalogCacheKey, data, s.ttl); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return doc, nil
}
