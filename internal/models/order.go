package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot created at checkout. TotalAmount and the
// item prices are frozen at creation; later product price changes never
// affect an existing order. Status is a free-form field updated externally.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user_id" gorm:"type:varchar(36);index"`
	OrderNumber     string          `json:"order_number" gorm:"uniqueIndex;type:varchar(32)"`
	Status          string          `json:"status" gorm:"type:varchar(32)"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2)"`
	ShippingAddress string          `json:"shipping_address" gorm:"type:text"`
	PhoneNumber     string          `json:"phone_number" gorm:"type:varchar(32)"`
	Notes           string          `json:"notes" gorm:"type:text"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem references a product but owns its own frozen price.
type OrderItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"-" gorm:"type:varchar(36);index"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36)"`
	Product   Product         `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"` // price at order time
}

// OrderStatusPending is the status assigned to every new order.
const OrderStatusPending = "pending"

// TotalPrice is quantity times the frozen price.
func (oi *OrderItem) TotalPrice() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
