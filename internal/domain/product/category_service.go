// internal/domain/product/category_service.go
package product

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// ErrCategoryNotFound is returned when a category identifier does not resolve.
var ErrCategoryNotFound = errors.New("category not found")

// ErrCategoryInUse is returned when deleting a category that still has
// children or products attached.
var ErrCategoryInUse = errors.New("category has children or products")

// CategoryService handles category business logic
type CategoryService struct {
	db     *gorm.DB
	config *config.Config
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB, cfg *config.Config) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
	}
}

// CategoryCreateRequest represents category creation data
type CategoryCreateRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

// CategoryUpdateRequest represents category update data
type CategoryUpdateRequest struct {
	Name      *string `json:"name"`
	ParentID  *uint   `json:"parent_id"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// CategoryTree represents the hierarchical category structure
type CategoryTree struct {
	Category
	Children []CategoryTree `json:"children,omitempty"`
}

// GetCategories retrieves all categories as a flat list
func (s *CategoryService) GetCategories(includeInactive bool) ([]Category, error) {
	var categories []Category

	query := s.db.Model(&Category{}).Order("sort_order ASC, name ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}

	return categories, nil
}

// GetCategoryTree retrieves categories assembled into a tree
func (s *CategoryService) GetCategoryTree(includeInactive bool) ([]CategoryTree, error) {
	categories, err := s.GetCategories(includeInactive)
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(categories), nil
}

// BuildCategoryTree assembles a flat category list into a tree. Parent
// and child links are resolved through identifier lookups rather than
// embedded pointers; a node whose parent is missing from the list is
// treated as a root.
func BuildCategoryTree(categories []Category) []CategoryTree {
	present := make(map[uint]bool, len(categories))
	for _, cat := range categories {
		present[cat.ID] = true
	}

	childrenOf := make(map[uint][]Category)
	var roots []Category
	for _, cat := range categories {
		cat.Parent = nil
		cat.Children = nil
		if cat.ParentID == nil || !present[*cat.ParentID] {
			roots = append(roots, cat)
		} else {
			childrenOf[*cat.ParentID] = append(childrenOf[*cat.ParentID], cat)
		}
	}

	var build func(cat Category) CategoryTree
	build = func(cat Category) CategoryTree {
		node := CategoryTree{Category: cat}
		for _, child := range childrenOf[cat.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	result := make([]CategoryTree, 0, len(roots))
	for _, root := range roots {
		result = append(result, build(root))
	}
	return result
}

// GetCategory retrieves a single category by ID
func (s *CategoryService) GetCategory(id uint) (*Category, error) {
	var category Category
	err := s.db.Preload("Children").Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}
	return &category, nil
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(req *CategoryCreateRequest) (*Category, error) {
	if req.ParentID != nil {
		var parent Category
		if err := s.db.Where("id = ?", *req.ParentID).First(&parent).Error; err != nil {
			return nil, fmt.Errorf("parent category %d not found", *req.ParentID)
		}
	}

	category := &Category{
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// UpdateCategory updates an existing category
func (s *CategoryService) UpdateCategory(id uint, req *CategoryUpdateRequest) (*Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, fmt.Errorf("category cannot be its own parent")
		}
		var parent Category
		if err := s.db.Where("id = ?", *req.ParentID).First(&parent).Error; err != nil {
			return nil, fmt.Errorf("parent category %d not found", *req.ParentID)
		}
		updates["parent_id"] = *req.ParentID
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	return s.GetCategory(id)
}

// DeleteCategory deletes a category that has no children or products
func (s *CategoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}

	var childCount int64
	if err := s.db.Model(&Category{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
		return fmt.Errorf("failed to count child categories: %w", err)
	}

	var productCount int64
	if err := s.db.Model(&Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count category products: %w", err)
	}

	if childCount > 0 || productCount > 0 {
		return ErrCategoryInUse
	}

	if err := s.db.Delete(&Category{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
