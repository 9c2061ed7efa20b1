package model

import (
	"time"

	"gorm.io/gorm"
)

// MaxImagesPerProduct caps the total image count (existing plus newly
// attached) for a product.
const MaxImagesPerProduct = 5

type ProductImage struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	ProductID    uint           `gorm:"index;not null" json:"product_id"`
	ImageURL     string         `gorm:"not null" json:"image_url"`
	AltText      string         `json:"alt_text"`
	IsPrimary    bool           `gorm:"default:false" json:"is_primary"`
	DisplayOrder int            `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
