// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-backend/internal/domain/cart"
)

// respondCartError maps cart domain errors onto HTTP status codes and
// stable machine-readable error codes
func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":  "USER_NOT_FOUND",
			"error": err.Error(),
		})
	case errors.Is(err, cart.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":  "PRODUCT_NOT_FOUND",
			"error": err.Error(),
		})
	case errors.Is(err, cart.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":  "CART_NOT_FOUND",
			"error": err.Error(),
		})
	case errors.Is(err, cart.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{
			"code":  "OUT_OF_STOCK",
			"error": err.Error(),
		})
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "INVALID_QUANTITY",
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":  "INTERNAL_SERVER_ERROR",
			"error": "Internal server error",
		})
	}
}
