package models_test

import (
	"testing"

	"gerai/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestProductCurrentPrice(t *testing.T) {
	// No discount set
	p := models.Product{Price: dec("100.00")}
	assert.True(t, p.CurrentPrice().Equal(dec("100.00")))
	assert.EqualValues(t, 0, p.DiscountPercentage())

	// Discount lower than base price
	p.DiscountPrice = decPtr("75.00")
	assert.True(t, p.CurrentPrice().Equal(dec("75.00")))
	assert.EqualValues(t, 25, p.DiscountPercentage())

	// A discount that is not lower is ignored, not rejected
	p.DiscountPrice = decPtr("120.00")
	assert.True(t, p.CurrentPrice().Equal(dec("100.00")))
	assert.EqualValues(t, 0, p.DiscountPercentage())

	// Equal discount is also ignored
	p.DiscountPrice = decPtr("100.00")
	assert.True(t, p.CurrentPrice().Equal(dec("100.00")))
	assert.EqualValues(t, 0, p.DiscountPercentage())
}

func TestProductDiscountPercentageRounds(t *testing.T) {
	p := models.Product{Price: dec("30.00"), DiscountPrice: decPtr("20.00")}
	// 10/30 = 33.33..%, rounded
	assert.EqualValues(t, 33, p.DiscountPercentage())
}

func TestCartTotals(t *testing.T) {
	cart := models.Cart{
		Items: []models.CartItem{
			{Quantity: 2, Product: models.Product{Price: dec("10.00")}},
			{Quantity: 1, Product: models.Product{Price: dec("50.00"), DiscountPrice: decPtr("40.00")}},
		},
	}
	assert.True(t, cart.TotalPrice().Equal(dec("60.00")))
	assert.Equal(t, 3, cart.TotalItems())
}

func TestOrderItemTotalPriceUsesFrozenPrice(t *testing.T) {
	item := models.OrderItem{
		Quantity: 3,
		Price:    dec("15.00"),
		Product:  models.Product{Price: dec("99.00")}, // current price must not matter
	}
	assert.True(t, item.TotalPrice().Equal(dec("45.00")))
}
