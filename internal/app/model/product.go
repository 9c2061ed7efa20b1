package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryApparel ProductCategory = "apparel"
	CategoryJewelry ProductCategory = "jewelry"
	CategoryBeauty  ProductCategory = "beauty"
)

// ValidCategory reports whether c is a member of the category enum.
func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryApparel, CategoryJewelry, CategoryBeauty:
		return true
	}
	return false
}

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusDraft    ProductStatus = "draft"
)

// ValidProductStatus reports whether s is a member of the status enum.
func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDraft:
		return true
	}
	return false
}

type Product struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	Name             string          `gorm:"not null" json:"name"`
	Category         ProductCategory `gorm:"type:varchar(50);not null;index" json:"category"`
	Subcategory      string          `gorm:"type:varchar(100);index" json:"subcategory"`
	BasePrice        float64         `gorm:"default:0" json:"base_price"`
	Description      string          `gorm:"type:text" json:"description"`
	Brand            string          `json:"brand"`
	Material         string          `json:"material"`
	CareInstructions string          `gorm:"type:text" json:"care_instructions"`
	IsFeatured       bool            `gorm:"default:false" json:"is_featured"`
	Status           ProductStatus   `gorm:"type:varchar(20);default:'active';index" json:"status"`

	// Legacy flat columns. Rows created before variants/images existed
	// carry these instead; every read path falls back to them when the
	// child lists are empty.
	LegacyPrice    float64 `gorm:"column:price;default:0" json:"price,omitempty"`
	LegacyStock    int     `gorm:"column:stock;default:0" json:"stock,omitempty"`
	LegacyImageURL string  `gorm:"column:image_url" json:"image_url,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// DefaultVariant returns the variant flagged is_default, else the first
// variant in list order. Nil when the product has no variants.
func (p *Product) DefaultVariant() *ProductVariant {
	if len(p.Variants) == 0 {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].IsDefault {
			return &p.Variants[i]
		}
	}
	return &p.Variants[0]
}

// MinVariantPrice returns the cheapest variant price, 0 without variants.
func (p *Product) MinVariantPrice() float64 {
	if len(p.Variants) == 0 {
		return 0
	}
	min := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price < min {
			min = v.Price
		}
	}
	return min
}

// MaxVariantPrice returns the costliest variant price, 0 without variants.
func (p *Product) MaxVariantPrice() float64 {
	if len(p.Variants) == 0 {
		return 0
	}
	max := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price > max {
			max = v.Price
		}
	}
	return max
}

// EffectivePrice is the price used for range filtering: the minimum
// variant price when variants exist, else base price, else legacy price.
func (p *Product) EffectivePrice() float64 {
	if len(p.Variants) > 0 {
		return p.MinVariantPrice()
	}
	if p.BasePrice > 0 {
		return p.BasePrice
	}
	return p.LegacyPrice
}

// DisplayPriceRange returns the [min, max] display price pair. The two
// collapse to one value for single-variant, equal-priced and legacy rows.
func (p *Product) DisplayPriceRange() (float64, float64) {
	if len(p.Variants) > 1 {
		return p.MinVariantPrice(), p.MaxVariantPrice()
	}
	price := p.EffectivePrice()
	return price, price
}

// DisplayStock is the sum of variant stocks when variants exist, else the
// legacy flat stock.
func (p *Product) DisplayStock() int {
	if len(p.Variants) > 0 {
		total := 0
		for _, v := range p.Variants {
			total += v.Stock
		}
		return total
	}
	return p.LegacyStock
}

// UnitPrice resolves the price charged for one unit, in priority order:
// selected variant price, base price, legacy price, zero. Cart and order
// lines must use the same resolution the product views display.
func (p *Product) UnitPrice(variant *ProductVariant) float64 {
	if variant != nil {
		return variant.Price
	}
	if p.BasePrice > 0 {
		return p.BasePrice
	}
	if p.LegacyPrice > 0 {
		return p.LegacyPrice
	}
	return 0
}

// PrimaryImageURL picks the image flagged primary, else the first image by
// display order, else the legacy flat URL.
func (p *Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].ImageURL
	}
	return p.LegacyImageURL
}
