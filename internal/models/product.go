package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the fixed set of product categories a category coupon can target.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryAccessories Category = "accessories"
	CategoryFood        Category = "food"
)

var knownCategories = map[Category]struct{}{
	CategoryElectronics: {},
	CategoryClothing:    {},
	CategoryAccessories: {},
	CategoryFood:        {},
}

// ParseCategory normalizes s and reports whether it names a known category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	_, ok := knownCategories[c]
	return ok
}

type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Category Category
}
