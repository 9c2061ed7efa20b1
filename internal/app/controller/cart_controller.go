package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/service"
	"github.com/shajghor/shajghor-backend/internal/middleware"
)

// CartTokenHeader carries the guest cart token. The first response sets
// it; the client echoes it back on every cart and checkout call.
const CartTokenHeader = "X-Cart-Token"

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
}

type UpdateCartRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

func cartResponse(cart *model.Cart) gin.H {
	return gin.H{
		"cart":       cart,
		"item_count": cart.ItemCount(),
		"total":      cart.Total(),
	}
}

func (ctrl *CartController) respondWithCart(c *gin.Context, status int, cart *model.Cart) {
	c.Header(CartTokenHeader, cart.Token)
	c.JSON(status, cartResponse(cart))
}

// GetCart returns the cart for the request's token, creating one when
// the token is missing.
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart := ctrl.cartService.GetCart(c.GetHeader(CartTokenHeader))
	ctrl.respondWithCart(c, http.StatusOK, cart)
}

// AddToCart adds one unit of a product (and optional variant) to the
// cart, merging into an existing line with the same identity.
// POST /api/v1/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cart, err := ctrl.cartService.AddItem(c.GetHeader(CartTokenHeader), req.ProductID, req.VariantID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart", map[string]interface{}{
				"product_id": req.ProductID,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		if errors.Is(err, service.ErrVariantNotFound) {
			log.Warn("Variant not found for cart", map[string]interface{}{
				"product_id": req.ProductID,
				"variant_id": req.VariantID,
			})
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Product variant not found",
			})
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add item to cart",
		})
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"cart_token": cart.Token,
		"product_id": req.ProductID,
		"item_count": cart.ItemCount(),
	})
	ctrl.respondWithCart(c, http.StatusCreated, cart)
}

// UpdateCartItem sets a line's quantity to an absolute value; zero or
// negative removes the line.
// PUT /api/v1/cart/items
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cart, err := ctrl.cartService.UpdateQuantity(c.GetHeader(CartTokenHeader), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			log.Warn("Cart item not found for update", map[string]interface{}{
				"product_id": req.ProductID,
				"variant_id": req.VariantID,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
			return
		}
		log.Error("Failed to update cart item", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart item",
		})
		return
	}

	ctrl.respondWithCart(c, http.StatusOK, cart)
}

// RemoveFromCart removes a line by identity. The variant half of the
// identity comes from the variant_id query parameter when present.
// DELETE /api/v1/cart/items/:product_id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": c.Param("product_id"),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var variantID *uint
	if variantStr := c.Query("variant_id"); variantStr != "" {
		v, err := strconv.ParseUint(variantStr, 10, 32)
		if err != nil {
			log.Warn("Invalid variant ID format", map[string]interface{}{
				"variant_id": variantStr,
			})
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid variant ID",
			})
			return
		}
		id := uint(v)
		variantID = &id
	}

	cart, err := ctrl.cartService.RemoveItem(c.GetHeader(CartTokenHeader), uint(productID), variantID)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			log.Warn("Cart item not found for removal", map[string]interface{}{
				"product_id": productID,
				"variant_id": variantID,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"product_id": productID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove cart item",
		})
		return
	}

	ctrl.respondWithCart(c, http.StatusOK, cart)
}

// ClearCart empties the cart but keeps the token.
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cart := ctrl.cartService.ClearCart(c.GetHeader(CartTokenHeader))
	ctrl.respondWithCart(c, http.StatusOK, cart)
}
