package coupons

import (
	"errors"

	"github.com/Cheertaboi/cart-pricing-service/internal/models"
)

var (
	// ErrUnknownCoupon is returned when the code is not in the catalog.
	ErrUnknownCoupon = errors.New("coupons: unknown coupon code")
	// ErrCouponSlotsFull is returned when both slots already hold a coupon.
	ErrCouponSlotsFull = errors.New("coupons: both coupon slots are occupied")
	// ErrDuplicateCoupon is returned when the coupon already sits in its slot.
	ErrDuplicateCoupon = errors.New("coupons: coupon already applied")
)

// Slots stores the primary and category coupon of one cart.
type Slots struct {
	primary       *models.Coupon
	categoryOnTop *models.Coupon
}

func NewSlots() *Slots {
	return &Slots{}
}

// Check reports whether coupon may be placed, without changing state.
func (s *Slots) Check(coupon models.Coupon) error {
	if s.primary != nil && s.categoryOnTop != nil {
		return ErrCouponSlotsFull
	}
	if held := s.get(coupon.Slot()); held != nil && held.Code == coupon.Code {
		return ErrDuplicateCoupon
	}
	return nil
}

// Place puts coupon into its slot, replacing whatever was there.
func (s *Slots) Place(coupon models.Coupon) models.Slot {
	c := coupon
	slot := coupon.Slot()
	if slot == models.SlotCategoryOnTop {
		s.categoryOnTop = &c
	} else {
		s.primary = &c
	}
	return slot
}

// Remove clears slot. Unknown slot names are ignored.
func (s *Slots) Remove(slot models.Slot) {
	switch slot {
	case models.SlotPrimary:
		s.primary = nil
	case models.SlotCategoryOnTop:
		s.categoryOnTop = nil
	}
}

func (s *Slots) HasCategoryOnTop() bool {
	return s.categoryOnTop != nil
}

// Snapshot returns a copy of both slots.
func (s *Slots) Snapshot() models.CouponSlots {
	var out models.CouponSlots
	if s.primary != nil {
		c := *s.primary
		out.Primary = &c
	}
	if s.categoryOnTop != nil {
		c := *s.categoryOnTop
		out.CategoryOnTop = &c
	}
	return out
}

func (s *Slots) get(slot models.Slot) *models.Coupon {
	if slot == models.SlotCategoryOnTop {
		return s.categoryOnTop
	}
	return s.primary
}
