// internal/domain/user/admin_service.go
package user

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// AdminService handles admin user management operations
type AdminService struct {
	db     *gorm.DB
	config *config.Config
}

// NewAdminService creates a new admin user service
func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{
		db:     db,
		config: cfg,
	}
}

// UserListRequest represents user list query parameters
type UserListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Search    string `form:"search"`
	Status    string `form:"status"` // active, inactive, all
	Role      string `form:"role"`   // admin, user, all
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
}

// UserListResponse represents user list with pagination
type UserListResponse struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// UserStatusUpdateRequest represents user status update data
type UserStatusUpdateRequest struct {
	IsActive bool   `json:"is_active"`
	Reason   string `json:"reason,omitempty"`
}

// GetUsers retrieves users with filtering and pagination
func (s *AdminService) GetUsers(req *UserListRequest) (*UserListResponse, error) {
	var users []User
	var total int64

	query := s.db.Model(&User{})

	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where(
			"LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ?",
			searchTerm, searchTerm, searchTerm, "%"+req.Search+"%",
		)
	}

	switch req.Status {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	switch req.Role {
	case "admin":
		query = query.Where("is_admin = ?", true)
	case "user":
		query = query.Where("is_admin = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	sortBy := req.SortBy
	switch sortBy {
	case "email", "first_name", "last_name", "created_at", "last_login_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(req.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	offset := (req.Page - 1) * req.Limit

	err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).Limit(req.Limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}

	for i := range users {
		users[i].Password = ""
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &UserListResponse{
		Users:      users,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateUserStatus activates or deactivates a user account
func (s *AdminService) UpdateUserStatus(userID uint, req *UserStatusUpdateRequest) (*User, error) {
	var user User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ErrNotFound
	}

	if err := s.db.Model(&user).Update("is_active", req.IsActive).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	user.IsActive = req.IsActive
	user.Password = ""
	return &user, nil
}
