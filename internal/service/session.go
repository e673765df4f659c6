package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Cheertaboi/cart-pricing-service/internal/cart"
	"github.com/Cheertaboi/cart-pricing-service/internal/catalog"
	"github.com/Cheertaboi/cart-pricing-service/internal/coupons"
	"github.com/Cheertaboi/cart-pricing-service/internal/models"
	"github.com/Cheertaboi/cart-pricing-service/internal/points"
	"github.com/Cheertaboi/cart-pricing-service/internal/pricing"
)

// ErrProductNotFound is returned when a product id is not in the catalog.
var ErrProductNotFound = errors.New("session: product not found")

// Session is one shopper's cart, coupon slots and points ledger. It is not
// safe for concurrent use; the Registry serializes access per session.
type Session struct {
	id      string
	catalog *catalog.Catalog
	cart    *cart.Ledger
	slots   *coupons.Slots
	points  *points.Ledger
	logger  *zap.Logger
}

type SessionDeps struct {
	ID              string
	Catalog         *catalog.Catalog
	AvailablePoints int64
	Logger          *zap.Logger
}

func NewSession(deps SessionDeps) (*Session, error) {
	if deps.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		id:      deps.ID,
		catalog: deps.Catalog,
		cart:    cart.NewLedger(),
		slots:   coupons.NewSlots(),
		points:  points.NewLedger(deps.AvailablePoints),
		logger:  logger.With(zap.String("session_id", deps.ID)),
	}, nil
}

// CouponOutcome describes the result of ApplyCoupon. Applied is false when
// the coupon was rejected, in which case Reason says why and nothing changed.
type CouponOutcome struct {
	Applied     bool
	Coupon      models.Coupon
	Slot        models.Slot
	PointsReset bool
	Reason      error
}

// PointsOutcome describes the result of ApplyPoints.
type PointsOutcome struct {
	Applied bool
	Reason  error
}

func (s *Session) ID() string { return s.id }

func (s *Session) AddToCart(product models.Product) {
	s.cart.AddItem(product)
	s.logger.Debug("item added", zap.Int64("product_id", product.ID))
}

// AddProduct adds the catalog product with the given id.
func (s *Session) AddProduct(productID int64) error {
	product, ok := s.catalog.Product(productID)
	if !ok {
		return ErrProductNotFound
	}
	s.AddToCart(product)
	return nil
}

func (s *Session) RemoveFromCart(productID int64) {
	s.cart.RemoveItem(productID)
	s.logger.Debug("item removed", zap.Int64("product_id", productID))
}

func (s *Session) UpdateQuantity(productID int64, qty int) {
	s.cart.SetQuantity(productID, qty)
	s.logger.Debug("quantity updated", zap.Int64("product_id", productID), zap.Int("quantity", qty))
}

// ApplyCoupon places the coupon named by code into its slot. A category
// coupon applied while points are in use resets the points to zero; the
// outcome reports that with PointsReset.
func (s *Session) ApplyCoupon(code string) CouponOutcome {
	coupon, ok := s.catalog.Coupon(code)
	if !ok {
		return s.rejectCoupon(code, coupons.ErrUnknownCoupon)
	}
	if err := s.slots.Check(coupon); err != nil {
		return s.rejectCoupon(coupon.Code, err)
	}

	out := CouponOutcome{Applied: true, Coupon: coupon}
	if coupon.Slot() == models.SlotCategoryOnTop && s.points.Used() > 0 {
		s.points.Reset()
		out.PointsReset = true
	}
	out.Slot = s.slots.Place(coupon)

	s.logger.Debug("coupon applied",
		zap.String("code", coupon.Code),
		zap.String("slot", string(out.Slot)),
		zap.Bool("points_reset", out.PointsReset),
	)
	return out
}

func (s *Session) rejectCoupon(code string, reason error) CouponOutcome {
	s.logger.Debug("coupon rejected", zap.String("code", code), zap.Error(reason))
	return CouponOutcome{Reason: reason}
}

func (s *Session) RemoveCoupon(slot models.Slot) {
	s.slots.Remove(slot)
	s.logger.Debug("coupon removed", zap.String("slot", string(slot)))
}

// ApplyPoints redeems n points. The request is rejected, leaving the ledger
// unchanged, when a category coupon is applied or n exceeds the balance or
// the cap for the amount left after the primary coupon.
func (s *Session) ApplyPoints(n int64) PointsOutcome {
	base := pricing.RemainingAfterPrimary(s.cart.Lines(), s.slots.Snapshot().Primary)
	if err := s.points.Apply(n, base, s.slots.HasCategoryOnTop()); err != nil {
		s.logger.Debug("points rejected", zap.Int64("points", n), zap.Error(err))
		return PointsOutcome{Reason: err}
	}
	s.logger.Debug("points applied", zap.Int64("points", n))
	return PointsOutcome{Applied: true}
}

func (s *Session) ResetPoints() {
	s.points.Reset()
	s.logger.Debug("points reset")
}

// Quote runs the discount pipeline over the current state.
func (s *Session) Quote() models.Quote {
	return pricing.Calculate(pricing.Input{
		Lines:    s.cart.Lines(),
		Slots:    s.slots.Snapshot(),
		Points:   s.Points(),
		Campaign: s.catalog.Campaign(),
	})
}

func (s *Session) Lines() []models.CartLine { return s.cart.Lines() }

func (s *Session) Slots() models.CouponSlots { return s.slots.Snapshot() }

func (s *Session) Points() models.PointsLedger {
	return models.PointsLedger{Available: s.points.Available(), Used: s.points.Used()}
}

// AvailableOnTopCoupons lists the category coupons matching a category in the cart.
func (s *Session) AvailableOnTopCoupons() []models.Coupon {
	return pricing.AvailableOnTopCoupons(s.catalog.OnTopCoupons(), s.cart.Lines())
}

// CanUseCategoryCoupon is false while points are redeemed.
func (s *Session) CanUseCategoryCoupon() bool { return s.points.Used() == 0 }

// CanUsePoints is false while a category coupon is applied.
func (s *Session) CanUsePoints() bool { return !s.slots.HasCategoryOnTop() }

// View is a consistent snapshot of everything a caller can read.
type View struct {
	ID                    string
	Lines                 []models.CartLine
	Slots                 models.CouponSlots
	Points                models.PointsLedger
	Quote                 models.Quote
	AvailableOnTopCoupons []models.Coupon
	CanUseCategoryCoupon  bool
	CanUsePoints          bool
}

func (s *Session) View() View {
	return View{
		ID:                    s.id,
		Lines:                 s.Lines(),
		Slots:                 s.Slots(),
		Points:                s.Points(),
		Quote:                 s.Quote(),
		AvailableOnTopCoupons: s.AvailableOnTopCoupons(),
		CanUseCategoryCoupon:  s.CanUseCategoryCoupon(),
		CanUsePoints:          s.CanUsePoints(),
	}
}
