package models

import "github.com/shopspring/decimal"

// Quote is the output of one pricing run. Every amount is >= 0.
type Quote struct {
	Subtotal         decimal.Decimal
	PrimaryDiscount  decimal.Decimal
	OnTopDiscount    decimal.Decimal
	PointsDiscount   decimal.Decimal
	CampaignDiscount decimal.Decimal
	Total            decimal.Decimal
}
