package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a member of the status enum.
// No transition graph is enforced: any status may move to any other.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItemSnapshot is one purchased line, frozen at checkout time.
// Later edits to products or variants must not alter it.
type OrderItemSnapshot struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	VariantID    *uint   `json:"variant_id,omitempty"`
	VariantName  string  `json:"variant_name,omitempty"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

// OrderItemList stores the snapshot array as a JSONB column.
type OrderItemList []OrderItemSnapshot

func (l OrderItemList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *OrderItemList) Scan(value interface{}) error {
	if value == nil {
		*l = OrderItemList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported order items column type %T", value)
	}
}

type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	OrderNumber     string         `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_number"`
	CustomerName    string         `gorm:"not null" json:"customer_name"`
	CustomerEmail   string         `gorm:"not null;index" json:"customer_email"`
	CustomerPhone   string         `gorm:"not null" json:"customer_phone"`
	CustomerAddress string         `gorm:"type:text;not null" json:"customer_address"`
	CustomerCity    string         `json:"customer_city"`
	Items           OrderItemList  `gorm:"type:jsonb;not null" json:"items"`
	Subtotal        float64        `gorm:"not null" json:"subtotal"`
	DeliveryCharge  float64        `gorm:"not null" json:"delivery_charge"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	Status          OrderStatus    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}
