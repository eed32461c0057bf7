// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a product identifier does not resolve.
var ErrNotFound = errors.New("product not found")

// Service handles product catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name       string `json:"name" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Price      int64  `json:"price" binding:"required,min=0"`
	StockCount int    `json:"stock_count" binding:"min=0"`
	CategoryID uint   `json:"category_id" binding:"required"`
}

// UpdateProductRequest represents product update data
type UpdateProductRequest struct {
	Name       *string `json:"name"`
	Content    *string `json:"content"`
	Price      *int64  `json:"price"`
	StockCount *int    `json:"stock_count"`
	CategoryID *uint   `json:"category_id"`
	IsActive   *bool   `json:"is_active"`
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
	SortBy     string `form:"sort_by,default=created_at"`
	SortOrder  string `form:"sort_order,default=desc"`
}

// ProductListResponse represents product list with pagination
type ProductListResponse struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductListResponse, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{}).Where("is_active = ?", true)

	if req.CategoryID != 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(content) LIKE ?", searchTerm, searchTerm)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	sortBy := req.SortBy
	switch sortBy {
	case "name", "price", "created_at":
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

	err := query.Preload("Category").
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).Limit(req.Limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ProductListResponse{
		Products:   products,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var p Product
	err := s.db.Preload("Category").Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &p, nil
}

// CreateProduct creates a new product owned by the given seller
func (s *Service) CreateProduct(ownerID uint, req *CreateProductRequest) (*Product, error) {
	var category Category
	if err := s.db.Where("id = ?", req.CategoryID).First(&category).Error; err != nil {
		return nil, fmt.Errorf("category %d: %w", req.CategoryID, ErrCategoryNotFound)
	}

	p := &Product{
		Name:       req.Name,
		Content:    req.Content,
		Price:      req.Price,
		StockCount: req.StockCount,
		CategoryID: req.CategoryID,
		OwnerID:    ownerID,
		IsActive:   true,
	}

	if err := s.db.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return p, nil
}

// UpdateProduct updates an existing product
func (s *Service) UpdateProduct(id uint, req *UpdateProductRequest) (*Product, error) {
	p, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.StockCount != nil {
		updates["stock_count"] = *req.StockCount
	}
	if req.CategoryID != nil {
		var category Category
		if err := s.db.Where("id = ?", *req.CategoryID).First(&category).Error; err != nil {
			return nil, fmt.Errorf("category %d: %w", *req.CategoryID, ErrCategoryNotFound)
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(p).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.GetProduct(id)
}

// DeleteProduct soft-deletes a product
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock sets a product's stock count
func (s *Service) AdjustStock(id uint, stockCount int) (*Product, error) {
	if stockCount < 0 {
		return nil, fmt.Errorf("stock count cannot be negative")
	}

	p, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(p).Update("stock_count", stockCount).Error; err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	p.StockCount = stockCount
	return p, nil
}
