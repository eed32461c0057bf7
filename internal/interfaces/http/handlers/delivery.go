// internal/interfaces/http/handlers/delivery.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/delivery"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// DeliveryHandler handles delivery endpoints
type DeliveryHandler struct {
	deliveryService *delivery.Service
	config          *config.Config
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(db *gorm.DB, cfg *config.Config) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: delivery.NewService(db, cfg),
		config:          cfg,
	}
}

// Create handles POST /deliveries
func (h *DeliveryHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req delivery.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	d, err := h.deliveryService.Create(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create delivery",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Delivery created successfully",
		"data":    d,
	})
}

// List handles GET /deliveries
func (h *DeliveryHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	deliveries, err := h.deliveryService.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve deliveries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deliveries retrieved successfully",
		"data":    deliveries,
	})
}

// Get handles GET /deliveries/:id
func (h *DeliveryHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid delivery ID",
		})
		return
	}

	d, err := h.deliveryService.Get(uint(id))
	if err != nil {
		if errors.Is(err, delivery.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Delivery not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve delivery",
		})
		return
	}

	// Owners see their own deliveries, admins see all
	if d.UserID != userID && !middleware.IsAdminFromContext(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery retrieved successfully",
		"data":    d,
	})
}

// UpdateStatus handles PUT /admin/deliveries/:id/status
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid delivery ID",
		})
		return
	}

	var req delivery.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	d, err := h.deliveryService.UpdateStatus(uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Delivery not found",
			})
		case errors.Is(err, delivery.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Invalid delivery status transition",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update delivery status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery status updated successfully",
		"data":    d,
	})
}
