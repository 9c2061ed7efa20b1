package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/service"
	"github.com/shajghor/shajghor-backend/internal/middleware"
)

type ProductController struct {
	catalogService service.CatalogService
}

func NewProductController(catalogService service.CatalogService) *ProductController {
	return &ProductController{
		catalogService: catalogService,
	}
}

// ProductView decorates a product with the computed display fields the
// storefront renders: the price range, the aggregate stock, and the
// primary image resolved from the same fallback chain everywhere.
type ProductView struct {
	model.Product
	DisplayPriceMin float64 `json:"display_price_min"`
	DisplayPriceMax float64 `json:"display_price_max"`
	DisplayStock    int     `json:"display_stock"`
	PrimaryImageURL string  `json:"primary_image_url"`
}

func newProductView(p model.Product) ProductView {
	min, max := p.DisplayPriceRange()
	return ProductView{
		Product:         p,
		DisplayPriceMin: min,
		DisplayPriceMax: max,
		DisplayStock:    p.DisplayStock(),
		PrimaryImageURL: p.PrimaryImageURL(),
	}
}

func newProductViews(products []model.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}

// GetProducts returns the active catalog filtered by the query string.
// GET /api/v1/products?category=&subcategories=&min_price=&max_price=&search=
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := service.FilterState{
		Category: model.ProductCategory(c.Query("category")),
		Search:   c.Query("search"),
	}

	if subs := c.Query("subcategories"); subs != "" {
		for _, sub := range strings.Split(subs, ",") {
			if sub = strings.TrimSpace(sub); sub != "" {
				filter.Subcategories = append(filter.Subcategories, sub)
			}
		}
	}

	if minStr := c.Query("min_price"); minStr != "" {
		if v, err := strconv.ParseFloat(minStr, 64); err == nil {
			filter.MinPrice = v
		}
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		if v, err := strconv.ParseFloat(maxStr, 64); err == nil {
			filter.MaxPrice = v
		}
	}

	products, err := ctrl.catalogService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": newProductViews(products),
		"count":    len(products),
	})
}

// GetProductByID returns one product with variants and images.
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": c.Param("id"),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	product, err := ctrl.catalogService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": newProductView(*product),
	})
}

// GetFeaturedProducts returns the featured shelf for the home page.
// GET /api/v1/products/featured?limit=
func (ctrl *ProductController) GetFeaturedProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit := 8
	if limitStr := c.Query("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
			limit = v
		}
	}

	products, err := ctrl.catalogService.GetFeaturedProducts(limit)
	if err != nil {
		log.Error("Failed to fetch featured products", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch featured products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": newProductViews(products),
		"count":    len(products),
	})
}

// GetCategories returns the category tree with per-subcategory variant
// option sets, so the storefront filter bar and the admin editor share
// one source of truth.
// GET /api/v1/categories
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	categories := ctrl.catalogService.GetCategories()

	tree := make(map[string]interface{}, len(categories))
	for _, category := range categories {
		options, err := ctrl.catalogService.GetCategoryOptions(category)
		if err != nil {
			continue
		}
		tree[string(category)] = options
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"tree":       tree,
	})
}
