package service

import (
	"testing"
	"time"

	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(productRepo, nil, time.Hour)

	product := &model.Product{
		Name:        "Katan Saree",
		Category:    model.CategoryApparel,
		Subcategory: "saree",
		Status:      model.ProductStatusActive,
		Variants: []model.ProductVariant{
			{VariantName: "Red", Price: 500, Stock: 10, IsDefault: true},
			{VariantName: "Green", Price: 700, Stock: 5},
		},
	}
	require.NoError(t, testDB.Create(product).Error)

	return cartService, product, testDB
}

func TestCartService_GetCart_CreatesEmptyCart(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	cart := cartService.GetCart("")

	assert.NotEmpty(t, cart.Token)
	assert.Equal(t, model.CartSchemaVersion, cart.SchemaVersion)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount())
	assert.Equal(t, 0.0, cart.Total())
}

func TestCartService_GetCart_SameTokenSameCart(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, err := cartService.AddItem("", product.ID, nil)
	require.NoError(t, err)

	again := cartService.GetCart(cart.Token)
	assert.Equal(t, cart.Token, again.Token)
	assert.Len(t, again.Items, 1)
}

func TestCartService_AddItem_DefaultsToDefaultVariant(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, err := cartService.AddItem("", product.ID, nil)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	require.NotNil(t, cart.Items[0].Variant)
	assert.Equal(t, "Red", cart.Items[0].Variant.Name)
	assert.Equal(t, 500.0, cart.Items[0].UnitPrice())
}

func TestCartService_AddItem_MergesSameIdentity(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	variantID := product.Variants[0].ID

	cart, err := cartService.AddItem("", product.ID, &variantID)
	require.NoError(t, err)
	cart, err = cartService.AddItem(cart.Token, product.ID, &variantID)
	require.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.ItemCount())
}

func TestCartService_AddItem_DifferentVariantsAreSeparateLines(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	redID := product.Variants[0].ID
	greenID := product.Variants[1].ID

	cart, err := cartService.AddItem("", product.ID, &redID)
	require.NoError(t, err)
	cart, err = cartService.AddItem(cart.Token, product.ID, &greenID)
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, 1200.0, cart.Total())
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("", 9999, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddItem_VariantNotFound(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	badVariant := uint(9999)
	_, err := cartService.AddItem("", product.ID, &badVariant)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestCartService_UpdateQuantity_Absolute(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	variantID := product.Variants[0].ID
	cart, err := cartService.AddItem("", product.ID, &variantID)
	require.NoError(t, err)

	cart, err = cartService.UpdateQuantity(cart.Token, product.ID, &variantID, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.ItemCount())
	assert.Equal(t, 2500.0, cart.Total())
}

func TestCartService_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	variantID := product.Variants[0].ID
	cart, err := cartService.AddItem("", product.ID, &variantID)
	require.NoError(t, err)

	cart, err = cartService.UpdateQuantity(cart.Token, product.ID, &variantID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	cart, err = cartService.AddItem(cart.Token, product.ID, &variantID)
	require.NoError(t, err)
	cart, err = cartService.UpdateQuantity(cart.Token, product.ID, &variantID, -3)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_UpdateQuantity_MissingLine(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	variantID := product.Variants[0].ID
	_, err := cartService.UpdateQuantity("", product.ID, &variantID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	redID := product.Variants[0].ID
	greenID := product.Variants[1].ID

	cart, err := cartService.AddItem("", product.ID, &redID)
	require.NoError(t, err)
	cart, err = cartService.AddItem(cart.Token, product.ID, &greenID)
	require.NoError(t, err)

	cart, err = cartService.RemoveItem(cart.Token, product.ID, &redID)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, greenID, cart.Items[0].Variant.ID)
}

func TestCartService_ClearCart_KeepsToken(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, err := cartService.AddItem("", product.ID, nil)
	require.NoError(t, err)
	token := cart.Token

	cleared := cartService.ClearCart(token)

	assert.Equal(t, token, cleared.Token)
	assert.Empty(t, cleared.Items)
	assert.Equal(t, 0.0, cleared.Total())
}

func TestCartService_SnapshotFreezesPrice(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	variantID := product.Variants[0].ID
	cart, err := cartService.AddItem("", product.ID, &variantID)
	require.NoError(t, err)

	// Reprice the variant after the line was added.
	require.NoError(t, testDB.Model(&model.ProductVariant{}).
		Where("id = ?", variantID).
		Update("price", 9999).Error)

	cart = cartService.GetCart(cart.Token)
	assert.Equal(t, 500.0, cart.Items[0].UnitPrice())
	assert.Equal(t, 500.0, cart.Total())
}

func TestCartService_ItemCountIsSumOfQuantities(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	redID := product.Variants[0].ID
	greenID := product.Variants[1].ID

	cart, err := cartService.AddItem("", product.ID, &redID)
	require.NoError(t, err)
	cart, err = cartService.UpdateQuantity(cart.Token, product.ID, &redID, 3)
	require.NoError(t, err)
	cart, err = cartService.AddItem(cart.Token, product.ID, &greenID)
	require.NoError(t, err)

	sum := 0
	for _, item := range cart.Items {
		sum += item.Quantity
	}
	assert.Equal(t, sum, cart.ItemCount())
	assert.Equal(t, 4, cart.ItemCount())
}

func TestCartService_PurgeExpired(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	cart, err := cartService.AddItem("", product.ID, nil)
	require.NoError(t, err)

	// Nothing has idled past an hour yet.
	assert.Equal(t, 0, cartService.PurgeExpired(time.Hour))

	// With a zero max idle every cart has expired.
	purged := cartService.PurgeExpired(0)
	assert.Equal(t, 1, purged)

	// The token now maps to a fresh empty cart.
	fresh := cartService.GetCart(cart.Token)
	assert.Empty(t, fresh.Items)
}
