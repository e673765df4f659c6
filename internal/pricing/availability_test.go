package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cheertaboi/cart-pricing-service/internal/models"
)

func codes(coupons []models.Coupon) []string {
	out := make([]string, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, c.Code)
	}
	return out
}

func TestAvailableOnTopCoupons(t *testing.T) {
	catalog := []models.Coupon{
		*onTop("PLAYTORIUM5", 20, models.CategoryFood),
		*onTop("PLAYTORIUM6", 15, models.CategoryElectronics),
		*onTop("PLAYTORIUM7", 25, models.CategoryClothing),
		*percentage("PLAYTORIUM1", 10),
	}

	assert.Empty(t, AvailableOnTopCoupons(catalog, nil))

	lines := []models.CartLine{
		line(1, "350", 1, models.CategoryClothing),
		line(7, "300", 2, models.CategoryElectronics),
	}
	assert.Equal(t, []string{"PLAYTORIUM6", "PLAYTORIUM7"}, codes(AvailableOnTopCoupons(catalog, lines)))

	assert.Equal(t, []string{"PLAYTORIUM7"}, codes(AvailableOnTopCoupons(catalog, lines[:1])))
}
