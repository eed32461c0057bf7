// internal/domain/cart/errors.go
package cart

import "errors"

// Domain errors returned by the cart service. Callers distinguish them
// from infrastructure failures with errors.Is; anything not listed here
// is a persistence fault and surfaces as a server-side error.
var (
	// ErrUserNotFound means the owner identifier does not resolve to a user.
	ErrUserNotFound = errors.New("user not found")

	// ErrProductNotFound means the product identifier does not resolve.
	ErrProductNotFound = errors.New("product not found")

	// ErrOutOfStock means the cumulative requested quantity exceeds the
	// product's available stock. The cart is left untouched.
	ErrOutOfStock = errors.New("requested quantity exceeds available stock")

	// ErrCartNotFound means the user has no cart yet. Adding an item
	// creates one.
	ErrCartNotFound = errors.New("cart not found")

	// ErrInvalidQuantity means the requested quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
