package models

import "github.com/shopspring/decimal"

// CartLine is a product held in the cart. Quantity is always >= 1; a line
// that would drop below 1 is removed instead.
type CartLine struct {
	Product  Product
	Quantity int
}

// Amount returns price × quantity for the line.
func (l CartLine) Amount() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
