// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// Cart is a user's pending collection of line items. A user has at most
// one cart; it is created lazily on the first add and never deleted by
// the user-facing flow (clearing only empties its items).
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one product-and-quantity row within a cart. A cart holds
// at most one row per product; repeated adds merge into it. Quantity is
// always >= 1 while the row exists.
type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CartID     uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"product_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  int64     `gorm:"not null" json:"unit_price"`  // Price in cents at last mutation
	LineAmount int64     `gorm:"not null" json:"line_amount"` // UnitPrice * Quantity
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides
func (Cart) TableName() string     { return "carts" }
func (CartItem) TableName() string { return "cart_items" }

// ItemFor returns the line item for the given product, or nil.
func (c *Cart) ItemFor(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Snapshot is the flat read-model of a cart produced by the query path.
type Snapshot struct {
	CartID      uint           `json:"cart_id"`
	Items       []SnapshotItem `json:"items"`
	TotalAmount int64          `json:"total_amount"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// SnapshotItem is one line of a cart snapshot.
type SnapshotItem struct {
	ProductID  uint  `json:"product_id"`
	Quantity   int   `json:"quantity"`
	LineAmount int64 `json:"line_amount"`
}
