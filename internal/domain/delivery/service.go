// internal/domain/delivery/service.go
package delivery

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a delivery identifier does not resolve.
var ErrNotFound = errors.New("delivery not found")

// ErrInvalidTransition is returned for a status change that skips or
// reverses the lifecycle.
var ErrInvalidTransition = errors.New("invalid delivery status transition")

// Service handles delivery tracking records
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new delivery service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateDeliveryRequest represents delivery creation data
type CreateDeliveryRequest struct {
	Address string `json:"address" binding:"required,max=500"`
}

// UpdateStatusRequest represents a delivery status change
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

// Create records a new pending delivery for the user
func (s *Service) Create(userID uint, req *CreateDeliveryRequest) (*Delivery, error) {
	d := &Delivery{
		UserID:  userID,
		Address: req.Address,
		Status:  StatusPending,
	}

	if err := s.db.Create(d).Error; err != nil {
		return nil, fmt.Errorf("failed to create delivery: %w", err)
	}

	return d, nil
}

// ListByUser returns the user's deliveries, newest first
func (s *Service) ListByUser(userID uint) ([]Delivery, error) {
	var deliveries []Delivery
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&deliveries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve deliveries: %w", err)
	}
	return deliveries, nil
}

// Get returns a single delivery by ID
func (s *Service) Get(id uint) (*Delivery, error) {
	var d Delivery
	if err := s.db.Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve delivery: %w", err)
	}
	return &d, nil
}

// UpdateStatus advances a delivery along its lifecycle
func (s *Service) UpdateStatus(id uint, req *UpdateStatusRequest) (*Delivery, error) {
	d, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !d.Status.CanTransitionTo(req.Status) {
		return nil, ErrInvalidTransition
	}

	if err := s.db.Model(d).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update delivery status: %w", err)
	}

	d.Status = req.Status
	return d, nil
}
