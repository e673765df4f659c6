package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/cart-pricing-service/internal/models"
)

// MaxQuantity is the largest quantity a single cart line can hold.
const MaxQuantity = 9999

// Ledger holds the lines of a single cart in insertion order.
type Ledger struct {
	lines []models.CartLine
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// AddItem increments the quantity of product, inserting it with quantity 1
// when it is not in the cart yet. A line already at MaxQuantity is left as is.
func (l *Ledger) AddItem(product models.Product) {
	if i := l.index(product.ID); i >= 0 {
		if l.lines[i].Quantity < MaxQuantity {
			l.lines[i].Quantity++
		}
		return
	}
	l.lines = append(l.lines, models.CartLine{Product: product, Quantity: 1})
}

func (l *Ledger) RemoveItem(productID int64) {
	i := l.index(productID)
	if i < 0 {
		return
	}
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
}

// SetQuantity replaces the quantity of a line; qty < 1 removes the line and
// qty above MaxQuantity is clamped. Unknown products are ignored.
func (l *Ledger) SetQuantity(productID int64, qty int) {
	if qty < 1 {
		l.RemoveItem(productID)
		return
	}
	qty = min(qty, MaxQuantity)
	if i := l.index(productID); i >= 0 {
		l.lines[i].Quantity = qty
	}
}

func (l *Ledger) Subtotal() decimal.Decimal {
	return Subtotal(l.lines)
}

// Lines returns a copy of the cart lines.
func (l *Ledger) Lines() []models.CartLine {
	out := make([]models.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Ledger) Len() int {
	return len(l.lines)
}

func (l *Ledger) index(productID int64) int {
	for i, line := range l.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Subtotal sums price × quantity over lines.
func Subtotal(lines []models.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Amount())
	}
	return sum
}
