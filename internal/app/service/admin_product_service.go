package service

import (
	"errors"
	"strings"

	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidCategory    = errors.New("invalid product category")
	ErrInvalidSubcategory = errors.New("subcategory does not belong to category")
	ErrInvalidStatus      = errors.New("invalid product status")
	ErrVariantRequired    = errors.New("at least one variant is required")
	ErrImageRequired      = errors.New("at least one image is required")
	ErrTooManyImages      = errors.New("too many images")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidStock       = errors.New("stock must not be negative")
)

// VariantInput is one variant row from the admin editor.
type VariantInput struct {
	VariantName     string  `json:"variant_name"`
	Size            string  `json:"size"`
	Color           string  `json:"color"`
	MaterialVariant string  `json:"material_variant"`
	Price           float64 `json:"price"`
	Stock           int     `json:"stock"`
	SKU             string  `json:"sku"`
	IsDefault       bool    `json:"is_default"`
}

// ImageInput is one image row from the admin editor, ordered by position.
type ImageInput struct {
	ImageURL  string `json:"image_url"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
}

// ProductInput is the full admin editor payload. Saving replaces the
// product's variant and image sets wholesale with what is submitted.
type ProductInput struct {
	Name             string                `json:"name"`
	Category         model.ProductCategory `json:"category"`
	Subcategory      string                `json:"subcategory"`
	BasePrice        float64               `json:"base_price"`
	Description      string                `json:"description"`
	Brand            string                `json:"brand"`
	Material         string                `json:"material"`
	CareInstructions string                `json:"care_instructions"`
	Status           model.ProductStatus   `json:"status"`
	IsFeatured       bool                  `json:"is_featured"`
	Variants         []VariantInput        `json:"variants"`
	Images           []ImageInput          `json:"images"`
}

// AdminProductService is the write side of the catalog.
type AdminProductService interface {
	ListProducts() ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
}

type adminProductService struct {
	productRepo repository.ProductRepository
}

func NewAdminProductService(productRepo repository.ProductRepository) AdminProductService {
	return &adminProductService{productRepo: productRepo}
}

func (s *adminProductService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll(true)
}

func (s *adminProductService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *adminProductService) CreateProduct(input ProductInput) (*model.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	product := buildProduct(0, &input)
	if err := s.productRepo.SaveWithChildren(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return s.GetProduct(product.ID)
}

func (s *adminProductService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	if _, err := s.GetProduct(id); err != nil {
		return nil, err
	}
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	product := buildProduct(id, &input)
	if err := s.productRepo.SaveWithChildren(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
		"name":       product.Name,
	})
	return s.GetProduct(id)
}

func (s *adminProductService) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func validateProductInput(input *ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.New("product name is required")
	}
	if !model.ValidCategory(input.Category) {
		return ErrInvalidCategory
	}
	if !model.ValidSubcategory(input.Category, input.Subcategory) {
		return ErrInvalidSubcategory
	}
	if input.Status != "" && !model.ValidProductStatus(input.Status) {
		return ErrInvalidStatus
	}
	if input.BasePrice < 0 {
		return ErrInvalidPrice
	}
	if len(input.Variants) == 0 {
		return ErrVariantRequired
	}
	if len(input.Images) == 0 {
		return ErrImageRequired
	}
	if len(input.Images) > model.MaxImagesPerProduct {
		return ErrTooManyImages
	}
	for i := range input.Variants {
		if input.Variants[i].Price < 0 {
			return ErrInvalidPrice
		}
		if input.Variants[i].Stock < 0 {
			return ErrInvalidStock
		}
	}
	return nil
}

func buildProduct(id uint, input *ProductInput) *model.Product {
	status := input.Status
	if status == "" {
		status = model.ProductStatusActive
	}

	product := &model.Product{
		Name:             strings.TrimSpace(input.Name),
		Category:         input.Category,
		Subcategory:      input.Subcategory,
		BasePrice:        input.BasePrice,
		Description:      input.Description,
		Brand:            input.Brand,
		Material:         input.Material,
		CareInstructions: input.CareInstructions,
		Status:           status,
		IsFeatured:       input.IsFeatured,
	}
	product.ID = id

	for _, v := range input.Variants {
		product.Variants = append(product.Variants, model.ProductVariant{
			ProductID:       id,
			VariantName:     v.VariantName,
			Size:            v.Size,
			Color:           v.Color,
			MaterialVariant: v.MaterialVariant,
			Price:           v.Price,
			Stock:           v.Stock,
			SKU:             v.SKU,
			IsDefault:       v.IsDefault,
		})
	}

	for i, img := range input.Images {
		product.Images = append(product.Images, model.ProductImage{
			ProductID:    id,
			ImageURL:     img.ImageURL,
			AltText:      img.AltText,
			IsPrimary:    img.IsPrimary,
			DisplayOrder: i,
		})
	}

	return product
}
