// Package pricing computes cart totals from the current cart, coupon slots,
// loyalty points and campaign rule. Every function here is pure.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/cart-pricing-service/internal/cart"
	"github.com/Cheertaboi/cart-pricing-service/internal/models"
	"github.com/Cheertaboi/cart-pricing-service/internal/points"
)

var hundred = decimal.NewFromInt(100)

// Input is the full state a quote is computed from.
type Input struct {
	Lines    []models.CartLine
	Slots    models.CouponSlots
	Points   models.PointsLedger
	Campaign models.CampaignConfig
}

// Calculate runs the discount stages in order: primary coupon, category
// coupon, points, campaign. Each stage only reads the results of earlier ones.
func Calculate(in Input) models.Quote {
	subtotal := cart.Subtotal(in.Lines)

	primary := PrimaryDiscount(subtotal, in.Slots.Primary)
	afterPrimary := subtotal.Sub(primary)

	onTop := OnTopDiscount(in.Lines, in.Slots.Primary, in.Slots.CategoryOnTop)

	pointsDiscount := decimal.NewFromInt(min(in.Points.Used, points.Cap(afterPrimary)))
	if pointsDiscount.IsNegative() {
		pointsDiscount = decimal.Zero
	}

	afterOnTopAndPoints := afterPrimary.Sub(onTop).Sub(pointsDiscount)
	campaign := CampaignDiscount(afterOnTopAndPoints, in.Campaign)

	total := afterOnTopAndPoints.Sub(campaign)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return models.Quote{
		Subtotal:         subtotal,
		PrimaryDiscount:  primary,
		OnTopDiscount:    onTop,
		PointsDiscount:   pointsDiscount,
		CampaignDiscount: campaign,
		Total:            total,
	}
}

// PrimaryDiscount is the whole-order discount of the primary coupon. Fixed
// amounts are not clamped to the subtotal here; the final total is.
func PrimaryDiscount(subtotal decimal.Decimal, primary *models.Coupon) decimal.Decimal {
	if primary == nil {
		return decimal.Zero
	}
	switch d := primary.Discount.(type) {
	case models.Percentage:
		return subtotal.Mul(d.Value).Div(hundred)
	case models.Fixed:
		return d.Value
	default:
		return decimal.Zero
	}
}

// RemainingAfterPrimary is the base the points cap is computed from.
func RemainingAfterPrimary(lines []models.CartLine, primary *models.Coupon) decimal.Decimal {
	subtotal := cart.Subtotal(lines)
	return subtotal.Sub(PrimaryDiscount(subtotal, primary))
}

// OnTopDiscount applies the category coupon to the category's share of the
// cart after that share has been reduced by the primary coupon's effect:
// a percentage primary reduces it by the same percentage, a fixed primary
// by floor(value / total quantity) per unit in the category.
func OnTopDiscount(lines []models.CartLine, primary, onTop *models.Coupon) decimal.Decimal {
	if onTop == nil {
		return decimal.Zero
	}
	d, ok := onTop.Discount.(models.CategoryOnTop)
	if !ok {
		return decimal.Zero
	}

	categorySubtotal := decimal.Zero
	categoryQty, totalQty := decimal.Zero, decimal.Zero
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		totalQty = totalQty.Add(qty)
		if line.Product.Category == d.Category {
			categorySubtotal = categorySubtotal.Add(line.Amount())
			categoryQty = categoryQty.Add(qty)
		}
	}
	if !categoryQty.IsPositive() {
		return decimal.Zero
	}

	adjusted := categorySubtotal
	if primary != nil {
		switch p := primary.Discount.(type) {
		case models.Percentage:
			adjusted = adjusted.Sub(adjusted.Mul(p.Value).Div(hundred))
		case models.Fixed:
			if totalQty.IsPositive() {
				perUnit := p.Value.Div(totalQty).Floor()
				adjusted = adjusted.Sub(perUnit.Mul(categoryQty))
			}
		}
	}
	if adjusted.IsNegative() {
		return decimal.Zero
	}

	return adjusted.Mul(d.Value).Div(hundred)
}

// CampaignDiscount grants campaign.Discount for every full campaign.Every
// contained in remaining.
func CampaignDiscount(remaining decimal.Decimal, campaign models.CampaignConfig) decimal.Decimal {
	if !campaign.Active || !campaign.Every.IsPositive() || !remaining.IsPositive() {
		return decimal.Zero
	}
	multiples, _ := remaining.QuoRem(campaign.Every, 0)
	return multiples.Mul(campaign.Discount)
}
