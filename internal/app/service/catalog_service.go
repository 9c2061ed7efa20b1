package service

import (
	"errors"

	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// CatalogService serves the storefront read side: active products only,
// filtered in memory so the filter semantics stay in one place.
type CatalogService interface {
	ListProducts(filter FilterState) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetFeaturedProducts(limit int) ([]model.Product, error)
	GetCategories() []model.ProductCategory
	GetCategoryOptions(category model.ProductCategory) (map[string]model.SubcategoryOptions, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) ListProducts(filter FilterState) ([]model.Product, error) {
	logger.Debug("Listing storefront products", map[string]interface{}{
		"category":      filter.Category,
		"subcategories": filter.Subcategories,
		"min_price":     filter.MinPrice,
		"max_price":     filter.MaxPrice,
		"search":        filter.Search,
	})

	products, err := s.productRepo.FindAll(false)
	if err != nil {
		logger.Error("Failed to list storefront products", err, nil)
		return nil, err
	}

	filtered := FilterProducts(products, filter)

	logger.Debug("Storefront products listed", map[string]interface{}{
		"total":    len(products),
		"filtered": len(filtered),
	})
	return filtered, nil
}

func (s *catalogService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to get product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetFeaturedProducts(limit int) ([]model.Product, error) {
	products, err := s.productRepo.FindFeatured(limit)
	if err != nil {
		logger.Error("Failed to get featured products", err, map[string]interface{}{
			"limit": limit,
		})
		return nil, err
	}
	return products, nil
}

func (s *catalogService) GetCategories() []model.ProductCategory {
	return model.Categories()
}

func (s *catalogService) GetCategoryOptions(category model.ProductCategory) (map[string]model.SubcategoryOptions, error) {
	options, ok := model.CategoryOptions(category)
	if !ok {
		return nil, ErrInvalidCategory
	}
	return options, nil
}
