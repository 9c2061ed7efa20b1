package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_DisplayPriceRange_ThreeVariants(t *testing.T) {
	product := Product{
		Variants: []ProductVariant{
			{VariantName: "S", Price: 700},
			{VariantName: "M", Price: 500},
			{VariantName: "L", Price: 900},
		},
	}

	min, max := product.DisplayPriceRange()
	assert.Equal(t, 500.0, min)
	assert.Equal(t, 900.0, max)
}

func TestProduct_DisplayPriceRange_EqualVariantPrices(t *testing.T) {
	product := Product{
		Variants: []ProductVariant{
			{VariantName: "S", Price: 500},
			{VariantName: "M", Price: 500},
		},
	}

	min, max := product.DisplayPriceRange()
	assert.Equal(t, min, max)
	assert.Equal(t, 500.0, min)
}

func TestProduct_DisplayPriceRange_FallbackChain(t *testing.T) {
	// No variants: base price wins.
	product := Product{BasePrice: 1200, LegacyPrice: 999}
	min, max := product.DisplayPriceRange()
	assert.Equal(t, 1200.0, min)
	assert.Equal(t, 1200.0, max)

	// No variants, no base price: legacy flat price.
	product = Product{LegacyPrice: 999}
	min, max = product.DisplayPriceRange()
	assert.Equal(t, 999.0, min)
	assert.Equal(t, 999.0, max)

	// Nothing at all: zero, never a panic.
	product = Product{}
	min, max = product.DisplayPriceRange()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 0.0, max)
}

func TestProduct_DefaultVariant(t *testing.T) {
	product := Product{
		Variants: []ProductVariant{
			{ID: 1, VariantName: "S"},
			{ID: 2, VariantName: "M", IsDefault: true},
			{ID: 3, VariantName: "L"},
		},
	}

	v := product.DefaultVariant()
	require.NotNil(t, v)
	assert.Equal(t, uint(2), v.ID)
}

func TestProduct_DefaultVariant_FirstWhenNoneFlagged(t *testing.T) {
	product := Product{
		Variants: []ProductVariant{
			{ID: 1, VariantName: "S"},
			{ID: 2, VariantName: "M"},
		},
	}

	v := product.DefaultVariant()
	require.NotNil(t, v)
	assert.Equal(t, uint(1), v.ID)
}

func TestProduct_DefaultVariant_NilWithoutVariants(t *testing.T) {
	product := Product{}
	assert.Nil(t, product.DefaultVariant())
}

func TestProduct_DisplayStock(t *testing.T) {
	product := Product{
		LegacyStock: 99,
		Variants: []ProductVariant{
			{Stock: 3},
			{Stock: 5},
			{Stock: 0},
		},
	}
	assert.Equal(t, 8, product.DisplayStock())

	// Variants absent: the legacy flat stock applies.
	product = Product{LegacyStock: 99}
	assert.Equal(t, 99, product.DisplayStock())
}

func TestProduct_UnitPrice_Priority(t *testing.T) {
	variant := &ProductVariant{Price: 700}

	product := Product{BasePrice: 500, LegacyPrice: 300}
	assert.Equal(t, 700.0, product.UnitPrice(variant))
	assert.Equal(t, 500.0, product.UnitPrice(nil))

	product = Product{LegacyPrice: 300}
	assert.Equal(t, 300.0, product.UnitPrice(nil))

	product = Product{}
	assert.Equal(t, 0.0, product.UnitPrice(nil))
}

func TestProduct_PrimaryImageURL(t *testing.T) {
	product := Product{
		LegacyImageURL: "legacy.jpg",
		Images: []ProductImage{
			{ImageURL: "first.jpg"},
			{ImageURL: "flagged.jpg", IsPrimary: true},
		},
	}
	assert.Equal(t, "flagged.jpg", product.PrimaryImageURL())

	product.Images[1].IsPrimary = false
	assert.Equal(t, "first.jpg", product.PrimaryImageURL())

	product.Images = nil
	assert.Equal(t, "legacy.jpg", product.PrimaryImageURL())
}

func TestValidSubcategory(t *testing.T) {
	assert.True(t, ValidSubcategory(CategoryApparel, "saree"))
	assert.True(t, ValidSubcategory(CategoryJewelry, "bangle"))
	assert.True(t, ValidSubcategory(CategoryBeauty, "skincare"))

	// Subcategories are category-specific.
	assert.False(t, ValidSubcategory(CategoryApparel, "ring"))
	assert.False(t, ValidSubcategory(CategoryJewelry, "saree"))
	assert.False(t, ValidSubcategory("electronics", "saree"))
}

func TestCartItem_Matches(t *testing.T) {
	variantID := uint(5)
	otherID := uint(6)

	withVariant := CartItem{
		Product: CartProductSnapshot{ID: 1},
		Variant: &CartVariantSnapshot{ID: variantID},
	}
	withoutVariant := CartItem{
		Product: CartProductSnapshot{ID: 1},
	}

	assert.True(t, withVariant.Matches(1, &variantID))
	assert.False(t, withVariant.Matches(1, &otherID))
	assert.False(t, withVariant.Matches(1, nil))
	assert.False(t, withVariant.Matches(2, &variantID))

	// A nil variant is its own identity.
	assert.True(t, withoutVariant.Matches(1, nil))
	assert.False(t, withoutVariant.Matches(1, &variantID))
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("returned"))
	assert.False(t, ValidOrderStatus(""))
}
