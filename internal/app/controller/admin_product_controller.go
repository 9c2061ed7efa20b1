package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shajghor/shajghor-backend/internal/app/service"
	apperrors "github.com/shajghor/shajghor-backend/internal/errors"
	"github.com/shajghor/shajghor-backend/internal/middleware"
)

// AdminProductController is the write side of the catalog. Every route
// sits behind the admin middleware chain.
type AdminProductController struct {
	adminProductService service.AdminProductService
}

func NewAdminProductController(adminProductService service.AdminProductService) *AdminProductController {
	return &AdminProductController{
		adminProductService: adminProductService,
	}
}

// ListProducts returns every product regardless of status.
// GET /api/v1/admin/products
func (ctrl *AdminProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.adminProductService.ListProducts()
	if err != nil {
		log.Error("Failed to list products", err, nil)
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

// GetProduct returns one product for the editor.
// GET /api/v1/admin/products/:id
func (ctrl *AdminProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	product, err := ctrl.adminProductService.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
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

// CreateProduct creates a product with its variants and images.
// POST /api/v1/admin/products
func (ctrl *AdminProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := ctrl.adminProductService.CreateProduct(input)
	if err != nil {
		ctrl.respondProductWriteError(c, err, "create")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	c.JSON(http.StatusCreated, gin.H{
		"product": newProductView(*product),
	})
}

// UpdateProduct replaces a product and its child rows with the
// submitted editor state.
// PUT /api/v1/admin/products/:id
func (ctrl *AdminProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid update product request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := ctrl.adminProductService.UpdateProduct(uint(id), input)
	if err != nil {
		ctrl.respondProductWriteError(c, err, "update")
		return
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	c.JSON(http.StatusOK, gin.H{
		"product": newProductView(*product),
	})
}

// DeleteProduct removes a product with its variants and images.
// DELETE /api/v1/admin/products/:id
func (ctrl *AdminProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	if err := ctrl.adminProductService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete product",
		})
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

func (ctrl *AdminProductController) respondProductWriteError(c *gin.Context, err error, action string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, service.ErrInvalidCategory):
		apperrors.BadRequest(c, apperrors.ProductInvalidCategory, "Invalid product category")
	case errors.Is(err, service.ErrInvalidSubcategory):
		apperrors.BadRequest(c, apperrors.ProductInvalidSubcategory, "Subcategory does not belong to the selected category")
	case errors.Is(err, service.ErrInvalidStatus):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product status")
	case errors.Is(err, service.ErrVariantRequired):
		apperrors.BadRequest(c, apperrors.ProductVariantRequired, "At least one variant is required")
	case errors.Is(err, service.ErrImageRequired):
		apperrors.BadRequest(c, apperrors.ProductImageRequired, "At least one image is required")
	case errors.Is(err, service.ErrTooManyImages):
		apperrors.BadRequest(c, apperrors.ProductTooManyImages, "A product can have at most 5 images")
	case errors.Is(err, service.ErrInvalidPrice), errors.Is(err, service.ErrInvalidStock):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
	default:
		log.Error("Failed to "+action+" product", err, nil)
		info := apperrors.ParseError(err, action+" product")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}
