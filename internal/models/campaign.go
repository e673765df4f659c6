package models

import "github.com/shopspring/decimal"

// CampaignConfig grants Discount for every full multiple of Every left in
// the cart after coupons and points.
type CampaignConfig struct {
	Active   bool
	Every    decimal.Decimal
	Discount decimal.Decimal
}

// PointsLedger is a read-only view of the loyalty balance in a cart.
type PointsLedger struct {
	Available int64
	Used      int64
}
