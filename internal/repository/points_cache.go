package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/Cheertaboi/cart-pricing-service/internal/cache"
)

// PointsSource reads a user's loyalty balance; found is false when the user
// has no points account.
type PointsSource interface {
	AvailablePoints(ctx context.Context, userID string) (int64, bool, error)
}

type pointsEntry struct {
	Available int64 `json:"available"`
	Found     bool  `json:"found"`
}

// CachedPoints keeps loyalty balances in a Store so repeated sessions for the
// same user skip the database. Misses for unknown users are cached too.
type CachedPoints struct {
	source PointsSource
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedPoints(source PointsSource, store cache.Store, ttl time.Duration, logger *zap.Logger) *CachedPoints {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedPoints{source: source, store: store, ttl: ttl, logger: logger}
}

func pointsCacheKey(userID string) string {
	return "points:v1:" + userID
}

func (c *CachedPoints) AvailablePoints(ctx context.Context, userID string) (int64, bool, error) {
	key := pointsCacheKey(userID)
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("points cache read failed", zap.String("user_id", userID), zap.Error(err))
	}
	if ok {
		var entry pointsEntry
		decodeErr := json.Unmarshal(data, &entry)
		if decodeErr == nil {
			return entry.Available, entry.Found, nil
		}
		c.logger.Warn("points cache entry unreadable", zap.String("user_id", userID), zap.Error(decodeErr))
	}

	available, found, err := c.source.AvailablePoints(ctx, userID)
	if err != nil {
		return 0, false, err
	}

	if data, err := json.Marshal(pointsEntry{Available: available, Found: found}); err == nil {
		if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("points cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return available, found, nil
}
