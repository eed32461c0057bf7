// internal/domain/delivery/entity.go
package delivery

import (
	"time"
)

// Status represents the delivery lifecycle state
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
)

// Delivery represents a delivery tracking record
type Delivery struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Address   string    `gorm:"not null;size:500" json:"address"`
	Status    Status    `gorm:"not null;size:20;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Delivery) TableName() string {
	return "deliveries"
}

// CanTransitionTo reports whether the status may move to next. The
// lifecycle only moves forward: pending -> processing -> processed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusProcessed
	default:
		return false
	}
}
