package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shajghor/shajghor-backend/config"
	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/pkg/logger"
	"github.com/shajghor/shajghor-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCartEmpty = errors.New("cart is empty")
)

// InsufficientStockError reports which variant could not cover the
// requested quantity at order time.
type InsufficientStockError struct {
	ProductName string
	VariantName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%s): requested %d, available %d",
		e.ProductName, e.VariantName, e.Requested, e.Available)
}

// ValidationErrors carries per-field messages for the checkout form.
type ValidationErrors struct {
	Fields map[string]string
}

func (e *ValidationErrors) Error() string {
	return "checkout validation failed"
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CheckoutInput is the customer form submitted with an order.
type CheckoutInput struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	CustomerCity    string `json:"customer_city"`
}

type CheckoutService interface {
	DeliveryCharge(city string) float64
	ValidateInput(input CheckoutInput) map[string]string
	PlaceOrder(cartToken string, input CheckoutInput) (*model.Order, error)
}

type checkoutService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	cartService CartService
	delivery    config.DeliveryConfig
}

func NewCheckoutService(db *gorm.DB, orderRepo repository.OrderRepository, cartService CartService, delivery config.DeliveryConfig) CheckoutService {
	return &checkoutService{
		db:          db,
		orderRepo:   orderRepo,
		cartService: cartService,
		delivery:    delivery,
	}
}

// DeliveryCharge picks the flat rate by city: any city containing
// "dhaka" (case-insensitive) gets the inside-Dhaka rate, everything
// else the outside rate. Orders never ship free regardless of size.
func (s *checkoutService) DeliveryCharge(city string) float64 {
	if strings.Contains(strings.ToLower(city), "dhaka") {
		return s.delivery.InsideDhakaCharge
	}
	return s.delivery.OutsideDhakaCharge
}

// ValidateInput checks the customer form and returns per-field messages.
// An empty map means the input is valid.
func (s *checkoutService) ValidateInput(input CheckoutInput) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(input.CustomerName) == "" {
		fields["customer_name"] = "Name is required"
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		fields["customer_email"] = "Email is required"
	} else if !emailPattern.MatchString(strings.TrimSpace(input.CustomerEmail)) {
		fields["customer_email"] = "Email address is invalid"
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		fields["customer_phone"] = "Phone number is required"
	}
	if strings.TrimSpace(input.CustomerAddress) == "" {
		fields["customer_address"] = "Delivery address is required"
	}
	if strings.TrimSpace(input.CustomerCity) == "" {
		fields["customer_city"] = "City is required"
	}

	return fields
}

// PlaceOrder turns the cart into an order. Totals are recomputed from
// the cart lines on the server, never taken from the client. The stock
// check, the decrements, and the order insert happen in one transaction
// with the variant rows locked; the cart is cleared only after commit,
// so a failed checkout leaves it intact.
func (s *checkoutService) PlaceOrder(cartToken string, input CheckoutInput) (*model.Order, error) {
	cart := s.cartService.GetCart(cartToken)
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	if fields := s.ValidateInput(input); len(fields) > 0 {
		logger.Debug("Checkout validation failed", map[string]interface{}{
			"cart_token": cartToken,
			"fields":     fields,
		})
		return nil, &ValidationErrors{Fields: fields}
	}

	subtotal := cart.Total()
	deliveryCharge := s.DeliveryCharge(input.CustomerCity)

	items := make(model.OrderItemList, 0, len(cart.Items))
	for i := range cart.Items {
		line := &cart.Items[i]
		item := model.OrderItemSnapshot{
			ProductID:    line.Product.ID,
			ProductName:  line.Product.Name,
			ProductPrice: line.UnitPrice(),
			Quantity:     line.Quantity,
			Subtotal:     line.UnitPrice() * float64(line.Quantity),
		}
		if line.Variant != nil {
			variantID := line.Variant.ID
			item.VariantID = &variantID
			item.VariantName = line.Variant.Name
		}
		items = append(items, item)
	}

	order := &model.Order{
		OrderNumber:     util.GenerateOrderNumber(),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		CustomerAddress: strings.TrimSpace(input.CustomerAddress),
		CustomerCity:    strings.TrimSpace(input.CustomerCity),
		Items:           items,
		Subtotal:        subtotal,
		DeliveryCharge:  deliveryCharge,
		TotalAmount:     subtotal + deliveryCharge,
		Status:          model.OrderStatusPending,
	}

	logger.Debug("Placing order", map[string]interface{}{
		"cart_token":      cartToken,
		"order_number":    order.OrderNumber,
		"subtotal":        subtotal,
		"delivery_charge": deliveryCharge,
		"total_amount":    order.TotalAmount,
		"item_count":      len(items),
	})

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range cart.Items {
			line := &cart.Items[i]
			if line.Variant == nil {
				// Legacy lines have no variant row to decrement.
				continue
			}

			var variant model.ProductVariant
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&variant, line.Variant.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrVariantNotFound
				}
				return err
			}

			if variant.Stock < line.Quantity {
				return &InsufficientStockError{
					ProductName: line.Product.Name,
					VariantName: line.Variant.Name,
					Requested:   line.Quantity,
					Available:   variant.Stock,
				}
			}

			if err := tx.Model(&model.ProductVariant{}).
				Where("id = ?", variant.ID).
				Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
				return err
			}
		}

		return tx.Create(order).Error
	})
	if err != nil {
		logger.Error("Failed to place order", err, map[string]interface{}{
			"cart_token":   cartToken,
			"order_number": order.OrderNumber,
		})
		return nil, err
	}

	s.cartService.ClearCart(cartToken)

	logger.Info("Order placed", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
	})
	return order, nil
}
