package repository

import (
	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindAll(includeInactive bool) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindFeatured(limit int) ([]model.Product, error)
	SaveWithChildren(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.display_order ASC")
		})
}

// FindAll returns the catalog in stable order (newest first). Storefront
// callers exclude inactive/draft rows; the admin console sees everything.
func (r *productRepository) FindAll(includeInactive bool) ([]model.Product, error) {
	logger.Debug("Finding all products in database", map[string]interface{}{
		"include_inactive": includeInactive,
	})

	query := r.baseQuery().Order("products.created_at DESC")
	if !includeInactive {
		query = query.Where("products.status = ?", model.ProductStatusActive)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products in database", err, map[string]interface{}{
			"include_inactive": includeInactive,
		})
		return nil, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.baseQuery().First(&product, id).Error; err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Debug("Product found by ID in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return &product, nil
}

func (r *productRepository) FindFeatured(limit int) ([]model.Product, error) {
	logger.Debug("Finding featured products in database", map[string]interface{}{
		"limit": limit,
	})

	query := r.baseQuery().
		Where("products.is_featured = ? AND products.status = ?", true, model.ProductStatusActive).
		Order("products.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find featured products in database", err, nil)
		return nil, err
	}

	logger.Debug("Featured products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

// SaveWithChildren persists a product together with its full variant and
// image sets in one transaction. The previous child rows are replaced
// wholesale, and the one-default-variant invariant is enforced here at
// the point of persistence, not trusted to the caller.
func (r *productRepository) SaveWithChildren(product *model.Product) error {
	logger.Debug("Saving product with variants and images", map[string]interface{}{
		"product_id":    product.ID,
		"name":          product.Name,
		"variant_count": len(product.Variants),
		"image_count":   len(product.Images),
	})

	normalizeDefaultVariant(product.Variants)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if product.ID != 0 {
			if err := tx.Where("product_id = ?", product.ID).Delete(&model.ProductVariant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&model.ProductImage{}).Error; err != nil {
				return err
			}
		}
		return tx.Save(product).Error
	})
	if err != nil {
		logger.Error("Failed to save product with children", err, map[string]interface{}{
			"product_id": product.ID,
			"name":       product.Name,
		})
		return err
	}

	logger.Debug("Product saved with children", map[string]interface{}{
		"product_id":    product.ID,
		"name":          product.Name,
		"variant_count": len(product.Variants),
		"image_count":   len(product.Images),
	})
	return nil
}

// normalizeDefaultVariant clears surplus default flags, keeping the first
// flagged variant; when none is flagged the first variant becomes default.
func normalizeDefaultVariant(variants []model.ProductVariant) {
	defaultSeen := false
	for i := range variants {
		if variants[i].IsDefault {
			if defaultSeen {
				variants[i].IsDefault = false
			}
			defaultSeen = true
		}
	}
	if !defaultSeen && len(variants) > 0 {
		variants[0].IsDefault = true
	}
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
