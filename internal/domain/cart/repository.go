// internal/domain/cart/repository.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on top of gorm/postgres. Inside a
// transaction FindByOwner issues SELECT ... FOR UPDATE on the cart row,
// which gives the per-cart mutual exclusion the mutation engine relies on.
type GormStore struct {
	db      *gorm.DB
	locking bool
}

// NewGormStore creates a cart store backed by the given database handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// InTransaction runs fn inside a database transaction.
func (s *GormStore) InTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, locking: true})
	})
}

// FindByOwner returns the owner's cart with items preloaded.
func (s *GormStore) FindByOwner(ctx context.Context, ownerID uint) (*Cart, error) {
	query := s.db.WithContext(ctx).Preload("Items")
	if s.locking {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var c Cart
	if err := query.Where("user_id = ?", ownerID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &c, nil
}

// Create persists a new cart row.
func (s *GormStore) Create(ctx context.Context, c *Cart) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// SaveItem inserts or updates a line item row.
func (s *GormStore) SaveItem(ctx context.Context, item *CartItem) error {
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

// DeleteItem removes a single line item row.
func (s *GormStore) DeleteItem(ctx context.Context, item *CartItem) error {
	if err := s.db.WithContext(ctx).Delete(item).Error; err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

// DeleteItems removes every line item belonging to the cart.
func (s *GormStore) DeleteItems(ctx context.Context, cartID uint) error {
	if err := s.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	return nil
}

// Touch sets the cart's updated_at to the given timestamp.
func (s *GormStore) Touch(ctx context.Context, cartID uint, at time.Time) error {
	if err := s.db.WithContext(ctx).Model(&Cart{}).Where("id = ?", cartID).
		UpdateColumn("updated_at", at).Error; err != nil {
		return fmt.Errorf("failed to touch cart: %w", err)
	}
	return nil
}

// GormProductLookup resolves products from the catalog tables.
type GormProductLookup struct {
	db *gorm.DB
}

// NewGormProductLookup creates a catalog-backed product lookup.
func NewGormProductLookup(db *gorm.DB) *GormProductLookup {
	return &GormProductLookup{db: db}
}

// FindByID returns the stock count and unit price for a product.
func (l *GormProductLookup) FindByID(ctx context.Context, productID uint) (*ProductInfo, error) {
	var p product.Product
	err := l.db.WithContext(ctx).Where("id = ? AND is_active = ?", productID, true).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	return &ProductInfo{
		ID:        p.ID,
		Stock:     p.StockCount,
		UnitPrice: p.Price,
	}, nil
}

// GormUserLookup validates user identifiers against the users table.
type GormUserLookup struct {
	db *gorm.DB
}

// NewGormUserLookup creates a database-backed user lookup.
func NewGormUserLookup(db *gorm.DB) *GormUserLookup {
	return &GormUserLookup{db: db}
}

// Exists reports whether an active user with the given ID exists.
func (l *GormUserLookup) Exists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ? AND is_active = ?", userID, true).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	return count > 0, nil
}
