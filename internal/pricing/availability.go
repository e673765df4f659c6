package pricing

import "github.com/Cheertaboi/cart-pricing-service/internal/models"

// AvailableOnTopCoupons filters onTop down to the category coupons whose
// category is present in lines. Catalog order is preserved.
func AvailableOnTopCoupons(onTop []models.Coupon, lines []models.CartLine) []models.Coupon {
	present := make(map[models.Category]struct{}, len(lines))
	for _, line := range lines {
		present[line.Product.Category] = struct{}{}
	}

	out := make([]models.Coupon, 0, len(onTop))
	for _, coupon := range onTop {
		d, ok := coupon.Discount.(models.CategoryOnTop)
		if !ok {
			continue
		}
		if _, ok := present[d.Category]; ok {
			out = append(out, coupon)
		}
	}
	return out
}
