package service

import (
	"testing"

	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func filterFixture() []model.Product {
	return []model.Product{
		{
			ID:          1,
			Name:        "Jamdani Saree",
			Category:    model.CategoryApparel,
			Subcategory: "saree",
			Brand:       "Aarong",
			Description: "Handwoven jamdani saree",
			Variants: []model.ProductVariant{
				{ID: 11, VariantName: "Red", Price: 4500, Stock: 3},
			},
		},
		{
			ID:          2,
			Name:        "Gold Plated Ring",
			Category:    model.CategoryJewelry,
			Subcategory: "ring",
			Brand:       "Kanak",
			Variants: []model.ProductVariant{
				{ID: 21, VariantName: "16", Price: 1200, Stock: 5},
				{ID: 22, VariantName: "18", Price: 1500, Stock: 2},
			},
		},
		{
			ID:          3,
			Name:        "Pearl Necklace",
			Category:    model.CategoryJewelry,
			Subcategory: "necklace",
			BasePrice:   7000,
		},
		{
			ID:          4,
			Name:        "Rose Face Serum",
			Category:    model.CategoryBeauty,
			Subcategory: "skincare",
			Description: "Vitamin C serum for glowing skin",
			LegacyPrice: 850,
		},
	}
}

func TestFilterProducts_EmptyFilterIsIdentity(t *testing.T) {
	products := filterFixture()

	result := FilterProducts(products, FilterState{})

	assert.Len(t, result, len(products))
	for i := range products {
		assert.Equal(t, products[i].ID, result[i].ID)
	}
}

func TestFilterProducts_CategoryAndSubcategory(t *testing.T) {
	products := filterFixture()

	result := FilterProducts(products, FilterState{
		Category:      model.CategoryJewelry,
		Subcategories: []string{"ring"},
	})

	assert.Len(t, result, 1)
	assert.Equal(t, uint(2), result[0].ID)
}

func TestFilterProducts_JewelryRingInPriceRange(t *testing.T) {
	products := filterFixture()

	result := FilterProducts(products, FilterState{
		Category:      model.CategoryJewelry,
		Subcategories: []string{"ring"},
		MinPrice:      0,
		MaxPrice:      5000,
	})

	// The ring's effective price is its cheapest variant (1200).
	assert.Len(t, result, 1)
	assert.Equal(t, "Gold Plated Ring", result[0].Name)
}

func TestFilterProducts_PriceRangeUsesEffectivePrice(t *testing.T) {
	products := filterFixture()

	// Necklace has no variants, so the base price (7000) applies.
	result := FilterProducts(products, FilterState{
		MinPrice: 5000,
	})
	assert.Len(t, result, 1)
	assert.Equal(t, uint(3), result[0].ID)

	// Serum has only the legacy flat price.
	result = FilterProducts(products, FilterState{
		MinPrice: 800,
		MaxPrice: 900,
	})
	assert.Len(t, result, 1)
	assert.Equal(t, uint(4), result[0].ID)
}

func TestFilterProducts_PriceRangeInclusive(t *testing.T) {
	products := filterFixture()

	result := FilterProducts(products, FilterState{
		MinPrice: 1200,
		MaxPrice: 1200,
	})

	assert.Len(t, result, 1)
	assert.Equal(t, uint(2), result[0].ID)
}

func TestFilterProducts_SearchIsCaseInsensitive(t *testing.T) {
	products := filterFixture()

	for _, query := range []string{"jamdani", "JAMDANI", "JaMdAnI"} {
		result := FilterProducts(products, FilterState{Search: query})
		assert.Len(t, result, 1, "query %q", query)
		assert.Equal(t, uint(1), result[0].ID)
	}
}

func TestFilterProducts_SearchMatchesDescriptionAndBrand(t *testing.T) {
	products := filterFixture()

	result := FilterProducts(products, FilterState{Search: "vitamin"})
	assert.Len(t, result, 1)
	assert.Equal(t, uint(4), result[0].ID)

	result = FilterProducts(products, FilterState{Search: "kanak"})
	assert.Len(t, result, 1)
	assert.Equal(t, uint(2), result[0].ID)
}

func TestFilterProducts_ConditionsAreConjunctive(t *testing.T) {
	products := filterFixture()

	// Search matches the ring but category excludes it.
	result := FilterProducts(products, FilterState{
		Category: model.CategoryApparel,
		Search:   "ring",
	})
	assert.Empty(t, result)
}

func TestFilterProducts_PreservesInputOrder(t *testing.T) {
	products := filterFixture()

	result := FilterProducts(products, FilterState{
		Category: model.CategoryJewelry,
	})

	assert.Len(t, result, 2)
	assert.Equal(t, uint(2), result[0].ID)
	assert.Equal(t, uint(3), result[1].ID)
}

func TestFilterProducts_DoesNotMutateInput(t *testing.T) {
	products := filterFixture()
	original := filterFixture()

	FilterProducts(products, FilterState{Category: model.CategoryBeauty})

	assert.Equal(t, original, products)
}
