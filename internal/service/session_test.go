package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/cart-pricing-service/internal/catalog"
	"github.com/Cheertaboi/cart-pricing-service/internal/coupons"
	"github.com/Cheertaboi/cart-pricing-service/internal/models"
	"github.com/Cheertaboi/cart-pricing-service/internal/points"
)

var rice = models.Product{ID: 100, Name: "Rice", Price: decimal.NewFromInt(300), Category: models.CategoryFood}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	doc, err := catalog.Default()
	require.NoError(t, err)
	cat, err := doc.Build()
	require.NoError(t, err)
	return cat
}

func newSession(t *testing.T, cat *catalog.Catalog, available int64) *Session {
	t.Helper()
	s, err := NewSession(SessionDeps{ID: "test", Catalog: cat, AvailablePoints: available})
	require.NoError(t, err)
	return s
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestNewSessionRequiresCatalog(t *testing.T) {
	_, err := NewSession(SessionDeps{})
	assert.Error(t, err)
}

func TestSessionPercentageCoupon(t *testing.T) {
	cat := defaultCatalog(t).WithCampaign(models.CampaignConfig{})
	s := newSession(t, cat, 500)
	require.NoError(t, s.AddProduct(1))

	out := s.ApplyCoupon("playtorium1")
	require.True(t, out.Applied)
	assert.Equal(t, models.SlotPrimary, out.Slot)
	assert.False(t, out.PointsReset)

	q := s.Quote()
	requireAmount(t, "350", q.Subtotal)
	requireAmount(t, "35", q.PrimaryDiscount)
	requireAmount(t, "315", q.Total)
}

func TestSessionOnTopWithCampaign(t *testing.T) {
	s := newSession(t, defaultCatalog(t), 500)
	s.AddToCart(rice)

	require.True(t, s.ApplyCoupon("PLAYTORIUM5").Applied)

	q := s.Quote()
	requireAmount(t, "60", q.OnTopDiscount)
	requireAmount(t, "0", q.CampaignDiscount)
	requireAmount(t, "240", q.Total)
}

func TestSessionPointsCap(t *testing.T) {
	s := newSession(t, defaultCatalog(t), 500)
	s.AddToCart(rice)

	out := s.ApplyPoints(100)
	assert.False(t, out.Applied)
	assert.ErrorIs(t, out.Reason, points.ErrPointsExceedCap)
	assert.Equal(t, int64(0), s.Points().Used)

	require.True(t, s.ApplyPoints(60).Applied)
	assert.Equal(t, int64(60), s.Points().Used)
	requireAmount(t, "240", s.Quote().Total)
}

func TestSessionPointsCapUsesAmountAfterPrimary(t *testing.T) {
	s := newSession(t, defaultCatalog(t), 500)
	s.AddToCart(rice)
	require.True(t, s.ApplyCoupon("PLAYTORIUM4").Applied)

	// 300 - 100 = 200, cap 40
	assert.ErrorIs(t, s.ApplyPoints(41).Reason, points.ErrPointsExceedCap)
	assert.True(t, s.ApplyPoints(40).Applied)
}

func TestSessionPointsExceedBalance(t *testing.T) {
	s := newSession(t, defaultCatalog(t), 10)
	s.AddToCart(rice)

	assert.ErrorIs(t, s.ApplyPoints(20).Reason, points.ErrPointsExceedAvailable)
	assert.Equal(t, int64(0), s.Points().Used)
}

func TestSessionCategoryCouponResetsPoints(t *testing.T) {
	s := newSession(t, defaultCatalog(t), 500)
	s.AddToCart(rice)
	require.True(t, s.ApplyPoints(50).Applied)
	assert.False(t, s.CanUseCategoryCoupon())

	out := s.ApplyCoupon("PLAYTORIUM5")
	require.True(t, out.Applied)
	assert.True(t, out.PointsReset)
	assert.Equal(t, models.SlotCategoryOnTop, out.Slot)
	assert.Equal(t, int64(0), s.Points().Used)
	assert.Equal(t, int64(500), s.Points().Available)
	assert.False(t, s.CanUsePoints())
}

func TestSessionPointsRejectedWithCategoryCoupon(t *testing.T) {
	s := newSession(t, defaultCatalog(t), 500)
	s.AddToCart(rice)
	require.True(t, s.ApplyCoupon("PLAYTORIUM5").Applied)

	out := s.ApplyPoints(10)
	assert.False(t, out.Applied)
	assert.ErrorIs(t, out.Reason, points.ErrPointsWithCategoryCoupon)

	s.RemoveCoupon(models.SlotCategoryOnTop)
	assert.True(t, s.ApplyPoints(10).Applied)
}

func TestSessionCouponRejections(t *testing.T) {
	s := newSession(t, defaultCatalog(t), 500)
	s.AddToCart(rice)

	out := s.ApplyCoupon("WELCOME")
	assert.False(t, out.Applied)
	assert.ErrorIs(t, out.Reason, coupons.ErrUnknownCoupon)

	require.True(t, s.ApplyCoupon("PLAYTORIUM1").Applied)
	assert.ErrorIs(t, s.ApplyCoupon("PLAYTORIUM1").Reason, coupons.ErrDuplicateCoupon)

	require.True(t, s.ApplyCoupon("PLAYTORIUM5").Applied)
	assert.ErrorIs(t, s.ApplyCoupon("PLAYTORIUM2").Reason, coupons.ErrCouponSlotsFull)

	slots := s.Slots()
	require.NotNil(t, slots.Primary)
	assert.Equal(t, "PLAYTORIUM1", slots.Primary.Code)
}

func TestSessionPrimaryCouponReplaced(t *testing.T) {
	s := newSession(t, defaultCatalog(t).WithCampaign(models.CampaignConfig{}), 500)
	s.AddToCart(rice)

	require.True(t, s.ApplyCoupon("PLAYTORIUM1").Applied)
	require.True(t, s.ApplyCoupon("PLAYTORIUM3").Applied)

	q := s.Quote()
	requireAmount(t, "50", q.PrimaryDiscount)
	requireAmount(t, "250", q.Total)
}

func TestSessionAvailableOnTopCouponsFollowCart(t *testing.T) {
	s := newSession(t, defaultCatalog(t), 500)
	assert.Empty(t, s.AvailableOnTopCoupons())

	require.NoError(t, s.AddProduct(3))
	require.NoError(t, s.AddProduct(3))
	available := s.AvailableOnTopCoupons()
	require.Len(t, available, 1)
	assert.Equal(t, "PLAYTORIUM6", available[0].Code)

	s.UpdateQuantity(3, 1)
	assert.Len(t, s.AvailableOnTopCoupons(), 1)

	s.UpdateQuantity(3, 0)
	assert.Empty(t, s.AvailableOnTopCoupons())
}

func TestSessionAddUnknownProduct(t *testing.T) {
	s := newSession(t, defaultCatalog(t), 500)
	assert.ErrorIs(t, s.AddProduct(404), ErrProductNotFound)
}

func TestSessionView(t *testing.T) {
	s := newSession(t, defaultCatalog(t), 500)
	require.NoError(t, s.AddProduct(1))
	s.RemoveFromCart(1)
	require.NoError(t, s.AddProduct(2))

	v := s.View()
	assert.Equal(t, "test", v.ID)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, int64(2), v.Lines[0].Product.ID)
	requireAmount(t, "700", v.Quote.Subtotal)
	requireAmount(t, "620", v.Quote.Total)
	assert.True(t, v.CanUsePoints)
	assert.True(t, v.CanUseCategoryCoupon)
	require.Len(t, v.AvailableOnTopCoupons, 1)
	assert.Equal(t, "PLAYTORIUM7", v.AvailableOnTopCoupons[0].Code)
}
