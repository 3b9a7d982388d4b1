package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product belongs to exactly one category. Prices are stored as decimals to
// avoid float drift on money arithmetic.
type Product struct {
	ID            string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CategoryID    string           `json:"category_id" gorm:"type:varchar(36);index"`
	Category      Category         `json:"-" gorm:"foreignKey:CategoryID"`
	Name          string           `json:"name" gorm:"type:varchar(255)"`
	Slug          string           `json:"slug" gorm:"uniqueIndex;type:varchar(255)"`
	Description   string           `json:"description" gorm:"type:text"`
	Price         decimal.Decimal  `json:"price" gorm:"type:decimal(10,2)"`
	DiscountPrice *decimal.Decimal `json:"discount_price" gorm:"type:decimal(10,2)"`
	StockQuantity int              `json:"stock_quantity"`
	IsActive      bool             `json:"is_active"`
	IsFeatured    bool             `json:"is_featured"`
	Images        []ProductImage   `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductImage is one of a product's images; at most one should be primary.
type ProductImage struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"-" gorm:"type:varchar(36);index"`
	Image     string `json:"image" gorm:"type:varchar(255)"`
	AltText   string `json:"alt_text" gorm:"type:varchar(255)"`
	IsPrimary bool   `json:"is_primary"`
}

// CurrentPrice returns the discount price when one is set and strictly lower
// than the base price, otherwise the base price. A discount that is not
// lower is ignored rather than rejected.
func (p *Product) CurrentPrice() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price) {
		return *p.DiscountPrice
	}
	return p.Price
}

// DiscountPercentage returns the rounded percentage saved at the current
// price, or 0 when no effective discount applies.
func (p *Product) DiscountPercentage() int64 {
	if p.DiscountPrice == nil || !p.DiscountPrice.LessThan(p.Price) || p.Price.IsZero() {
		return 0
	}
	saved := p.Price.Sub(*p.DiscountPrice)
	return saved.Div(p.Price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
