// internal/interfaces/http/handlers/image.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/image"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// ImageHandler handles product image endpoints
type ImageHandler struct {
	imageService *image.Service
	config       *config.Config
}

// NewImageHandler creates a new image handler
func NewImageHandler(db *gorm.DB, cfg *config.Config) *ImageHandler {
	return &ImageHandler{
		imageService: image.NewService(db, cfg),
		config:       cfg,
	}
}

// Upload handles POST /admin/products/:id/images
func (h *ImageHandler) Upload(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image file required",
		})
		return
	}

	img, err := h.imageService.Attach(c, uint(productID), file)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"code":  "PRODUCT_NOT_FOUND",
				"error": "Product not found",
			})
		case errors.Is(err, image.ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unsupported file type",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to upload image",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"data":    img,
	})
}

// ListByProduct handles GET /products/:id/images
func (h *ImageHandler) ListByProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	images, err := h.imageService.ListByProduct(uint(productID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve images",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Images retrieved successfully",
		"data":    images,
	})
}

// Delete handles DELETE /admin/images/:id
func (h *ImageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid image ID",
		})
		return
	}

	if err := h.imageService.Delete(uint(id)); err != nil {
		if errors.Is(err, image.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Image not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete image",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image deleted successfully",
	})
}
