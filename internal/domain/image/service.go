// internal/domain/image/service.go
package image

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an image identifier does not resolve.
var ErrNotFound = errors.New("image not found")

// ErrUnsupportedType is returned for file extensions outside the
// configured allow-list.
var ErrUnsupportedType = errors.New("unsupported file type")

// Service handles product image attachment
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new image service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Attach stores an uploaded file under the configured upload directory
// and records its metadata against the product.
func (s *Service) Attach(c *gin.Context, productID uint, file *multipart.FileHeader) (*Image, error) {
	var p product.Product
	if err := s.db.Where("id = ?", productID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, product.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !s.isAllowedExtension(ext) {
		return nil, ErrUnsupportedType
	}

	if file.Size > s.config.Upload.MaxSize {
		return nil, fmt.Errorf("file exceeds maximum size of %d bytes", s.config.Upload.MaxSize)
	}

	fileUUID := uuid.New().String()
	uploadPath := filepath.Join(s.config.Upload.LocalPath, fmt.Sprintf("%s.%s", fileUUID, ext))

	if err := os.MkdirAll(s.config.Upload.LocalPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := c.SaveUploadedFile(file, uploadPath); err != nil {
		return nil, fmt.Errorf("failed to save uploaded file: %w", err)
	}

	img := &Image{
		ProductID:  productID,
		OriginName: file.Filename,
		FileUUID:   fileUUID,
		UploadPath: uploadPath,
	}

	if err := s.db.Create(img).Error; err != nil {
		// Don't leave an orphaned file behind.
		os.Remove(uploadPath)
		return nil, fmt.Errorf("failed to record image: %w", err)
	}

	return img, nil
}

// ListByProduct returns all images attached to a product
func (s *Service) ListByProduct(productID uint) ([]Image, error) {
	var images []Image
	if err := s.db.Where("product_id = ?", productID).Order("created_at ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve images: %w", err)
	}
	return images, nil
}

// Delete removes an image record and its file
func (s *Service) Delete(id uint) error {
	var img Image
	if err := s.db.Where("id = ?", id).First(&img).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to retrieve image: %w", err)
	}

	if err := s.db.Delete(&img).Error; err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	if err := os.Remove(img.UploadPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	if img.ThumbnailPath != "" {
		os.Remove(img.ThumbnailPath)
	}

	return nil
}

func (s *Service) isAllowedExtension(ext string) bool {
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}
