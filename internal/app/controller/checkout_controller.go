package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shajghor/shajghor-backend/internal/app/service"
	apperrors "github.com/shajghor/shajghor-backend/internal/errors"
	"github.com/shajghor/shajghor-backend/internal/middleware"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

// Quote returns the delivery charge and totals for a city without
// placing an order, so the checkout page can show them live.
// GET /api/v1/checkout/quote?city=
func (ctrl *CheckoutController) Quote(c *gin.Context) {
	city := c.Query("city")
	charge := ctrl.checkoutService.DeliveryCharge(city)

	c.JSON(http.StatusOK, gin.H{
		"city":            city,
		"delivery_charge": charge,
	})
}

// PlaceOrder turns the request's cart into an order.
// POST /api/v1/checkout
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartToken := c.GetHeader(CartTokenHeader)

	order, err := ctrl.checkoutService.PlaceOrder(cartToken, input)
	if err != nil {
		var validationErr *service.ValidationErrors
		var stockErr *service.InsufficientStockError

		switch {
		case errors.Is(err, service.ErrCartEmpty):
			log.Warn("Checkout attempted with empty cart", map[string]interface{}{
				"cart_token": cartToken,
			})
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
		case errors.As(err, &validationErr):
			log.Warn("Checkout validation failed", map[string]interface{}{
				"cart_token": cartToken,
				"fields":     validationErr.Fields,
			})
			apperrors.RespondWithValidationError(c, validationErr.Fields)
		case errors.As(err, &stockErr):
			log.Warn("Checkout blocked by insufficient stock", map[string]interface{}{
				"cart_token":   cartToken,
				"product_name": stockErr.ProductName,
				"requested":    stockErr.Requested,
				"available":    stockErr.Available,
			})
			apperrors.RespondWithError(c, http.StatusConflict, apperrors.CheckoutOutOfStock, stockErr.Error())
		case errors.Is(err, service.ErrVariantNotFound):
			log.Warn("Checkout references missing variant", map[string]interface{}{
				"cart_token": cartToken,
			})
			apperrors.BadRequest(c, apperrors.ProductVariantRequired, "A product in your cart is no longer available")
		default:
			log.Error("Failed to place order", err, map[string]interface{}{
				"cart_token": cartToken,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to place order",
			})
		}
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order":   order,
		"message": "Order placed successfully",
	})
}
