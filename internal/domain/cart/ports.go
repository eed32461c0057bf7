// internal/domain/cart/ports.go
package cart

import (
	"context"
	"time"
)

// ProductInfo is the read-only view of a product the engine needs: the
// live stock count and the current unit price. Stock is an upper bound
// owned elsewhere; the engine never decrements it.
type ProductInfo struct {
	ID        uint
	Stock     int
	UnitPrice int64 // cents
}

// ProductLookup resolves product identifiers. Implementations return
// ErrProductNotFound for unknown identifiers.
type ProductLookup interface {
	FindByID(ctx context.Context, productID uint) (*ProductInfo, error)
}

// UserLookup validates owner identifiers.
type UserLookup interface {
	Exists(ctx context.Context, userID uint) (bool, error)
}

// Store is the cart persistence port. Mutations run through
// InTransaction, which must serialize operations on the same cart:
// inside a transaction FindByOwner holds the cart row until commit or
// rollback, so two concurrent adds cannot both read the same quantity.
type Store interface {
	// InTransaction runs fn against a transactional view of the store.
	// The transaction commits when fn returns nil and rolls back on error.
	InTransaction(ctx context.Context, fn func(tx Store) error) error

	// FindByOwner returns the cart for the owner with its items loaded,
	// or ErrCartNotFound.
	FindByOwner(ctx context.Context, ownerID uint) (*Cart, error)

	// Create persists a new cart row.
	Create(ctx context.Context, c *Cart) error

	// SaveItem inserts or updates a line item.
	SaveItem(ctx context.Context, item *CartItem) error

	// DeleteItem removes a single line item row.
	DeleteItem(ctx context.Context, item *CartItem) error

	// DeleteItems removes every line item belonging to the cart.
	DeleteItems(ctx context.Context, cartID uint) error

	// Touch sets the cart's updated_at timestamp.
	Touch(ctx context.Context, cartID uint, at time.Time) error
}
