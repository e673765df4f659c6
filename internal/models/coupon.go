package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Discount is the kind-specific payload of a coupon. The set of
// implementations is closed: Percentage, Fixed and CategoryOnTop.
type Discount interface {
	isDiscount()
}

// Percentage takes Value percent (0-100) off its base amount.
type Percentage struct {
	Value decimal.Decimal
}

// Fixed subtracts an absolute currency amount.
type Fixed struct {
	Value decimal.Decimal
}

// CategoryOnTop takes Value percent off the lines of one category.
type CategoryOnTop struct {
	Value    decimal.Decimal
	Category Category
}

func (Percentage) isDiscount()    {}
func (Fixed) isDiscount()         {}
func (CategoryOnTop) isDiscount() {}

type Coupon struct {
	Code        string
	Description string
	Discount    Discount
}

// Slot returns the coupon slot the coupon occupies when applied.
func (c Coupon) Slot() Slot {
	if _, ok := c.Discount.(CategoryOnTop); ok {
		return SlotCategoryOnTop
	}
	return SlotPrimary
}

// NormalizeCode returns the canonical form used for catalog lookups.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Slot names one of the two coupon positions in a cart.
type Slot string

const (
	SlotPrimary       Slot = "primary"
	SlotCategoryOnTop Slot = "categoryOnTop"
)

func (s Slot) Valid() bool {
	return s == SlotPrimary || s == SlotCategoryOnTop
}

// CouponSlots holds at most one primary and one category coupon.
type CouponSlots struct {
	Primary       *Coupon
	CategoryOnTop *Coupon
}
