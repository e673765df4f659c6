package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/cart-pricing-service/internal/models"
)

var (
	shirt = models.Product{ID: 1, Name: "T-Shirt", Price: decimal.NewFromInt(350), Category: models.CategoryClothing}
	mouse = models.Product{ID: 7, Name: "Wireless Mouse", Price: decimal.NewFromInt(300), Category: models.CategoryElectronics}
)

func TestLedgerAddItem(t *testing.T) {
	l := NewLedger()
	l.AddItem(shirt)
	l.AddItem(mouse)
	l.AddItem(shirt)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, "1000", l.Subtotal().String())
}

func TestLedgerSetQuantity(t *testing.T) {
	l := NewLedger()
	l.AddItem(shirt)
	l.AddItem(mouse)

	l.SetQuantity(shirt.ID, 3)
	assert.Equal(t, "1350", l.Subtotal().String())

	l.SetQuantity(shirt.ID, 3)
	assert.Equal(t, "1350", l.Subtotal().String(), "repeating the call leaves the same state")

	l.SetQuantity(99, 5)
	assert.Equal(t, 2, l.Len())

	l.SetQuantity(mouse.ID, 0)
	require.Equal(t, 1, l.Len())
	assert.Equal(t, shirt.ID, l.Lines()[0].Product.ID)

	l.SetQuantity(shirt.ID, -4)
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Subtotal().IsZero())
}

func TestLedgerQuantityIsBounded(t *testing.T) {
	l := NewLedger()
	l.AddItem(shirt)

	l.SetQuantity(shirt.ID, MaxQuantity*1000)
	assert.Equal(t, MaxQuantity, l.Lines()[0].Quantity)

	l.AddItem(shirt)
	assert.Equal(t, MaxQuantity, l.Lines()[0].Quantity)
}

func TestLedgerRemoveItem(t *testing.T) {
	l := NewLedger()
	l.AddItem(shirt)
	l.AddItem(mouse)

	l.RemoveItem(shirt.ID)
	l.RemoveItem(shirt.ID)

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, mouse.ID, lines[0].Product.ID)
}

func TestLinesReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.AddItem(shirt)

	lines := l.Lines()
	lines[0].Quantity = 10

	assert.Equal(t, 1, l.Lines()[0].Quantity)
}
