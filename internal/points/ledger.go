package points

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrPointsExceedAvailable rejects a request larger than the loyalty balance.
	ErrPointsExceedAvailable = errors.New("points: request exceeds available balance")
	// ErrPointsExceedCap rejects a request larger than the redeemable share of the order.
	ErrPointsExceedCap = errors.New("points: request exceeds redemption cap")
	// ErrPointsWithCategoryCoupon rejects points while a category coupon is applied.
	ErrPointsWithCategoryCoupon = errors.New("points: cannot combine with a category coupon")
	// ErrPointsNegative rejects a negative request.
	ErrPointsNegative = errors.New("points: request must not be negative")
)

var (
	capRate = decimal.New(20, -2)
	maxCap  = decimal.NewFromInt(math.MaxInt64)
)

// Cap is the largest number of points redeemable against base, i.e.
// floor(base × 0.20). A non-positive base yields 0; the result saturates at
// math.MaxInt64.
func Cap(base decimal.Decimal) int64 {
	if !base.IsPositive() {
		return 0
	}
	c := base.Mul(capRate).Floor()
	if c.GreaterThan(maxCap) {
		return math.MaxInt64
	}
	return c.IntPart()
}

// Ledger tracks the loyalty balance of one cart. One point is worth one
// unit of currency.
type Ledger struct {
	available int64
	used      int64
}

func NewLedger(available int64) *Ledger {
	if available < 0 {
		available = 0
	}
	return &Ledger{available: available}
}

// Apply sets the used points to requested when it fits both the balance
// and the cap computed from base. On rejection the ledger is unchanged and
// the reason is returned.
func (l *Ledger) Apply(requested int64, base decimal.Decimal, categoryCouponApplied bool) error {
	switch {
	case categoryCouponApplied:
		return ErrPointsWithCategoryCoupon
	case requested < 0:
		return ErrPointsNegative
	case requested > l.available:
		return ErrPointsExceedAvailable
	case requested > Cap(base):
		return ErrPointsExceedCap
	}
	l.used = requested
	return nil
}

func (l *Ledger) Reset() {
	l.used = 0
}

func (l *Ledger) Available() int64 { return l.available }

func (l *Ledger) Used() int64 { return l.used }
