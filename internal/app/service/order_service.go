package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// OrderService is the admin order console: list, inspect, move status,
// summarize, export.
type OrderService interface {
	ListOrders(filter repository.OrderFilter) ([]model.Order, error)
	GetOrder(id uint) (*model.Order, error)
	GetOrderByNumber(orderNumber string) (*model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error)
	GetStats() (repository.OrderStats, error)
	ExportOrders(filter repository.OrderFilter) ([]byte, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) ListOrders(filter repository.OrderFilter) ([]model.Order, error) {
	if filter.Status != "" && filter.Status != "all" && !model.ValidOrderStatus(filter.Status) {
		return nil, ErrInvalidOrderStatus
	}
	return s.orderRepo.FindWithFilter(filter)
}

func (s *orderService) GetOrder(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrderByNumber(orderNumber string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// UpdateStatus sets an order's status. Membership in the status enum is
// the only rule; there is no transition graph, so cancelled orders can
// be reopened and delivered ones rolled back.
func (s *orderService) UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return s.GetOrder(id)
}

func (s *orderService) GetStats() (repository.OrderStats, error) {
	return s.orderRepo.GetStats()
}

// ExportOrders renders the filtered order list as an xlsx workbook.
func (s *orderService) ExportOrders(filter repository.OrderFilter) ([]byte, error) {
	orders, err := s.ListOrders(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Order Number", "Date", "Customer", "Email", "Phone", "City",
		"Items", "Subtotal", "Delivery Charge", "Total", "Status",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, order := range orders {
		values := []interface{}{
			order.OrderNumber,
			order.CreatedAt.Format("2006-01-02 15:04"),
			order.CustomerName,
			order.CustomerEmail,
			order.CustomerPhone,
			order.CustomerCity,
			formatOrderItems(order.Items),
			order.Subtotal,
			order.DeliveryCharge,
			order.TotalAmount,
			string(order.Status),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write order export workbook", err, nil)
		return nil, err
	}

	logger.Info("Orders exported", map[string]interface{}{
		"count": len(orders),
	})
	return buf.Bytes(), nil
}

func formatOrderItems(items model.OrderItemList) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.ProductName
		if item.VariantName != "" {
			name = fmt.Sprintf("%s (%s)", name, item.VariantName)
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, item.Quantity))
	}
	return strings.Join(parts, "; ")
}
