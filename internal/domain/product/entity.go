// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents the product entity. StockCount is the live upper
// bound the cart engine checks against; it is consumed at checkout,
// never by cart mutations.
type Product struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null;size:255" json:"name"`
	Content    string         `gorm:"type:text" json:"content"`
	Price      int64          `gorm:"not null" json:"price"` // Price in cents
	StockCount int            `gorm:"not null;default:0" json:"stock_count"`
	CategoryID uint           `gorm:"not null;index" json:"category_id"`
	OwnerID    uint           `gorm:"not null;index" json:"owner_id"` // Seller user id
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
}

// Category represents a node in the self-referencing category tree.
// Parent and children are resolved through identifier references, not
// embedded pointers.
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	ParentID  *uint          `gorm:"index" json:"parent_id"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }

// IsInStock returns true while any units remain.
func (p *Product) IsInStock() bool {
	return p.StockCount > 0
}

// GetFormattedPrice returns the price in currency units.
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}
