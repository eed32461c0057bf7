// internal/domain/image/entity.go
package image

import (
	"time"
)

// Image is the stored metadata for a product image upload. The file on
// disk is named by the generated UUID so original filenames never
// collide or leak into paths.
type Image struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     uint      `gorm:"not null;index" json:"product_id"`
	OriginName    string    `gorm:"not null;size:255" json:"origin_name"`
	FileUUID      string    `gorm:"uniqueIndex;not null;size:36" json:"file_uuid"`
	UploadPath    string    `gorm:"not null;size:500" json:"upload_path"`
	ThumbnailPath string    `gorm:"size:500" json:"thumbnail_path"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Image) TableName() string {
	return "images"
}
