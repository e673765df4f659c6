package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/cart-pricing-service/internal/cache"
	"github.com/Cheertaboi/cart-pricing-service/internal/catalog"
)

type countingSource struct {
	doc   catalog.Document
	err   error
	calls int
}

func (s *countingSource) Load(context.Context) (catalog.Document, error) {
	s.calls++
	return s.doc, s.err
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func sampleDocument() catalog.Document {
	return catalog.Document{
		Coupons:  []catalog.CouponRecord{{Code: "SAVE10", Type: catalog.KindPercentage, Amount: decimal.NewFromInt(10)}},
		Products: []catalog.ProductRecord{{ID: 1, Name: "Rice", Price: decimal.RequireFromString("299.95"), Category: "food"}},
		Campaign: &catalog.CampaignRecord{Active: true, Every: decimal.NewFromInt(300), Discount: decimal.NewFromInt(40)},
	}
}

func TestFileSourceDefault(t *testing.T) {
	doc, err := FileSource{}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Coupons, 8)
}

func TestFileSourceFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("coupons:\n  - {code: ONE, type: fixed, amount: 1}\n"), 0o644))

	doc, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Coupons, 1)
	assert.Equal(t, "ONE", doc.Coupons[0].Code)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background())
	assert.Error(t, err)
}

func TestCachedSourceServesFromCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingSource{doc: sampleDocument()}
	src := NewCachedSource(inner, cache.NewMemoryStore(), time.Minute, nil)

	first, err := src.Load(ctx)
	require.NoError(t, err)
	second, err := src.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	require.Len(t, second.Products, 1)
	assert.True(t, first.Products[0].Price.Equal(second.Products[0].Price))
	assert.Equal(t, "299.95", second.Products[0].Price.String())
	assert.Equal(t, first.Coupons[0].Code, second.Coupons[0].Code)
	assert.True(t, second.Campaign.Every.Equal(decimal.NewFromInt(300)))
}

func TestCachedSourceToleratesCacheFailures(t *testing.T) {
	inner := &countingSource{doc: sampleDocument()}
	src := NewCachedSource(inner, failingStore{}, time.Minute, nil)

	doc, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Coupons, 1)
}

func TestCachedSourceIgnoresCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(ctx, catalogCacheKey, []byte("not json"), 0))

	inner := &countingSource{doc: sampleDocument()}
	doc, err := NewCachedSource(inner, store, 0, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "SAVE10", doc.Coupons[0].Code)
}

func TestCachedSourcePropagatesSourceError(t *testing.T) {
	boom := errors.New("db unavailable")
	src := NewCachedSource(&countingSource{err: boom}, cache.NewMemoryStore(), time.Minute, nil)

	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}
