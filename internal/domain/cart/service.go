// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
)

// Service is the sole write path into a user's cart. It enforces the
// two cart invariants: one line item per product per cart, and a line's
// quantity never exceeding the product's stock count observed at add
// time. The stock check is advisory admission control, not a
// reservation; stock is consumed at checkout, outside this service.
type Service struct {
	store    Store
	products ProductLookup
	users    UserLookup
	config   *config.Config
}

// NewService creates a new cart service. Lookups are injected so tests
// can supply fakes.
func NewService(store Store, products ProductLookup, users UserLookup, cfg *config.Config) *Service {
	return &Service{
		store:    store,
		products: products,
		users:    users,
		config:   cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// RemoveFromCartRequest represents remove from cart request
type RemoveFromCartRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetOrCreateCart returns the user's cart, creating an empty one on the
// first call for a user who has none.
func (s *Service) GetOrCreateCart(ctx context.Context, ownerID uint) (*Cart, error) {
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}

	var result *Cart
	err := s.store.InTransaction(ctx, func(tx Store) error {
		c, err := s.findOrCreate(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddItem adds the requested quantity of a product to the user's cart,
// merging into an existing line item for the same product. The whole
// operation is one transaction: if the cumulative quantity would exceed
// the product's stock count, it fails with ErrOutOfStock and nothing is
// mutated.
func (s *Service) AddItem(ctx context.Context, ownerID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return err
	}

	return s.store.InTransaction(ctx, func(tx Store) error {
		prod, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		c, err := s.findOrCreate(ctx, tx, ownerID)
		if err != nil {
			return err
		}

		item := c.ItemFor(productID)
		currentQuantity := 0
		if item != nil {
			currentQuantity = item.Quantity
		}

		if currentQuantity+quantity > prod.Stock {
			return ErrOutOfStock
		}

		if item == nil {
			item = &CartItem{
				CartID:    c.ID,
				ProductID: productID,
			}
		}
		item.Quantity = currentQuantity + quantity
		item.UnitPrice = prod.UnitPrice
		item.LineAmount = prod.UnitPrice * int64(item.Quantity)
		item.UpdatedAt = time.Now().UTC()

		if err := tx.SaveItem(ctx, item); err != nil {
			return err
		}

		// The cart's modification timestamp follows the item's.
		return tx.Touch(ctx, c.ID, item.UpdatedAt)
	})
}

// RemoveItem removes the requested quantity of a product from the
// user's cart. A larger line quantity is decremented in place; a
// quantity that would drop to zero or below deletes the line item.
// Removing a product that is not in the cart is a no-op, not an error.
func (s *Service) RemoveItem(ctx context.Context, ownerID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return err
	}

	return s.store.InTransaction(ctx, func(tx Store) error {
		c, err := tx.FindByOwner(ctx, ownerID)
		if err != nil {
			return err
		}

		item := c.ItemFor(productID)
		if item == nil {
			return nil
		}

		now := time.Now().UTC()
		if item.Quantity > quantity {
			item.Quantity -= quantity
			item.LineAmount = item.UnitPrice * int64(item.Quantity)
			item.UpdatedAt = now
			if err := tx.SaveItem(ctx, item); err != nil {
				return err
			}
		} else {
			if err := tx.DeleteItem(ctx, item); err != nil {
				return err
			}
		}

		return tx.Touch(ctx, c.ID, now)
	})
}

// ClearCart deletes every line item from the user's cart. The cart row
// itself persists, so clearing twice succeeds both times.
func (s *Service) ClearCart(ctx context.Context, ownerID uint) error {
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return err
	}

	return s.store.InTransaction(ctx, func(tx Store) error {
		c, err := tx.FindByOwner(ctx, ownerID)
		if err != nil {
			return err
		}

		if err := tx.DeleteItems(ctx, c.ID); err != nil {
			return err
		}

		return tx.Touch(ctx, c.ID, time.Now().UTC())
	})
}

// GetCart projects the user's cart into a flat snapshot. Pure read: no
// mutation, no stock check. A user with no cart gets ErrCartNotFound
// rather than an empty snapshot, matching the lazy-creation write path.
func (s *Service) GetCart(ctx context.Context, ownerID uint) (*Snapshot, error) {
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}

	c, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		CartID:    c.ID,
		Items:     make([]SnapshotItem, len(c.Items)),
		UpdatedAt: c.UpdatedAt,
	}
	for i, item := range c.Items {
		snapshot.Items[i] = SnapshotItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			LineAmount: item.LineAmount,
		}
		snapshot.TotalAmount += item.LineAmount
	}

	return snapshot, nil
}

func (s *Service) ensureUser(ctx context.Context, ownerID uint) error {
	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func (s *Service) findOrCreate(ctx context.Context, tx Store, ownerID uint) (*Cart, error) {
	c, err := tx.FindByOwner(ctx, ownerID)
	if errors.Is(err, ErrCartNotFound) {
		c = &Cart{UserID: ownerID}
		if err := tx.Create(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}
	return c, err
}
