package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is created lazily on first access, exactly one per user. The row
// itself survives checkout; only its items are cleared.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"-"`
}

// CartItem is one (cart, product) line. The pair is unique; repeated adds
// increment Quantity on the existing line.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string    `json:"-" gorm:"type:varchar(36);uniqueIndex:idx_cart_product"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_product"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TotalPrice is quantity times the product's current price, computed live.
// Requires Product to be preloaded.
func (ci *CartItem) TotalPrice() decimal.Decimal {
	return ci.Product.CurrentPrice().Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// TotalPrice sums the line totals of all items.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice())
	}
	return total
}

// TotalItems sums the quantities of all items.
func (c *Cart) TotalItems() int {
	n := 0
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}
