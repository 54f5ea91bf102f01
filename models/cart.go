package models

import (
	"time"

	"github.com/lib/pq"
)

// CartLine is one product-quantity purchase intent. Server-held lines carry the
// owning UserID; lines living only in the storefront's local cache leave it empty.
// Name, price and images are snapshots taken when the product was added to the
// cart and are not refreshed against the catalog afterwards.
//
// The partial unique index keeps the live cart at one line per (user, product);
// confirmed lines are exempt so the purchase history can accumulate.
type CartLine struct {
	ID            uint           `gorm:"primaryKey" json:"_id"`
	UserID        string         `gorm:"uniqueIndex:idx_cart_user_product,where:confirmed = false" json:"userId,omitempty"`
	ProductID     uint           `gorm:"uniqueIndex:idx_cart_user_product,where:confirmed = false" json:"productId"`
	OrderQuantity int            `json:"orderQuantity"`
	ProductName   string         `json:"productName"`
	ProductPrice  float64        `json:"productPrice"`
	ProductImages pq.StringArray `gorm:"type:text[]" json:"productImages"`
	Confirmed     bool           `gorm:"default:false" json:"confirmed"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// LineTotal is the snapshot price times the ordered quantity.
func (l CartLine) LineTotal() float64 {
	return l.ProductPrice * float64(l.OrderQuantity)
}
