package service

import (
	"testing"

	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogServiceTest(t *testing.T) (CatalogService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	return NewCatalogService(productRepo), testDB
}

func TestCatalogService_ListProducts_ActiveOnly(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)

	require.NoError(t, testDB.Create(&model.Product{
		Name:        "Active Saree",
		Category:    model.CategoryApparel,
		Subcategory: "saree",
		Status:      model.ProductStatusActive,
		BasePrice:   3000,
	}).Error)
	require.NoError(t, testDB.Create(&model.Product{
		Name:        "Hidden Saree",
		Category:    model.CategoryApparel,
		Subcategory: "saree",
		Status:      model.ProductStatusInactive,
		BasePrice:   3000,
	}).Error)
	require.NoError(t, testDB.Create(&model.Product{
		Name:        "Draft Saree",
		Category:    model.CategoryApparel,
		Subcategory: "saree",
		Status:      model.ProductStatusDraft,
		BasePrice:   3000,
	}).Error)

	products, err := catalogService.ListProducts(FilterState{})
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Active Saree", products[0].Name)
}

func TestCatalogService_ListProducts_AppliesFilter(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)

	require.NoError(t, testDB.Create(&model.Product{
		Name:        "Gold Ring",
		Category:    model.CategoryJewelry,
		Subcategory: "ring",
		Status:      model.ProductStatusActive,
		BasePrice:   1500,
	}).Error)
	require.NoError(t, testDB.Create(&model.Product{
		Name:        "Face Serum",
		Category:    model.CategoryBeauty,
		Subcategory: "skincare",
		Status:      model.ProductStatusActive,
		BasePrice:   850,
	}).Error)

	products, err := catalogService.ListProducts(FilterState{
		Category: model.CategoryJewelry,
	})
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Gold Ring", products[0].Name)
}

func TestCatalogService_GetProductByID(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)

	product := &model.Product{
		Name:        "Gold Ring",
		Category:    model.CategoryJewelry,
		Subcategory: "ring",
		Status:      model.ProductStatusActive,
		Variants: []model.ProductVariant{
			{VariantName: "16", Price: 1200, Stock: 5},
		},
	}
	require.NoError(t, testDB.Create(product).Error)

	found, err := catalogService.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gold Ring", found.Name)
	assert.Len(t, found.Variants, 1)

	_, err = catalogService.GetProductByID(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_GetFeaturedProducts(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)

	require.NoError(t, testDB.Create(&model.Product{
		Name:        "Featured Ring",
		Category:    model.CategoryJewelry,
		Subcategory: "ring",
		Status:      model.ProductStatusActive,
		IsFeatured:  true,
	}).Error)
	require.NoError(t, testDB.Create(&model.Product{
		Name:        "Featured Draft",
		Category:    model.CategoryJewelry,
		Subcategory: "ring",
		Status:      model.ProductStatusDraft,
		IsFeatured:  true,
	}).Error)
	require.NoError(t, testDB.Create(&model.Product{
		Name:        "Plain Ring",
		Category:    model.CategoryJewelry,
		Subcategory: "ring",
		Status:      model.ProductStatusActive,
	}).Error)

	products, err := catalogService.GetFeaturedProducts(8)
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Featured Ring", products[0].Name)
}

func TestCatalogService_GetCategoryOptions(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	options, err := catalogService.GetCategoryOptions(model.CategoryJewelry)
	require.NoError(t, err)
	assert.Contains(t, options, "ring")
	assert.Contains(t, options, "bangle")

	_, err = catalogService.GetCategoryOptions("electronics")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
