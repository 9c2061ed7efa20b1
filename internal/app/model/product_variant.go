package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductVariant struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ProductID       uint           `gorm:"index;not null" json:"product_id"`
	VariantName     string         `gorm:"not null" json:"variant_name"`
	Size            string         `gorm:"type:varchar(50)" json:"size,omitempty"`
	Color           string         `gorm:"type:varchar(50)" json:"color,omitempty"`
	MaterialVariant string         `gorm:"type:varchar(100)" json:"material_variant,omitempty"`
	Price           float64        `gorm:"not null" json:"price"`
	Stock           int            `gorm:"default:0" json:"stock"`
	SKU             string         `gorm:"type:varchar(100)" json:"sku,omitempty"`
	IsDefault       bool           `gorm:"default:false" json:"is_default"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
