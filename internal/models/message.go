package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderMessage represents a new order routed to its restaurant
type OrderMessage struct {
	OrderNumber   string          `json:"order_number"`
	RestaurantID  string          `json:"restaurant_id"`
	PropertyID    string          `json:"property_id"`
	RoomID        string          `json:"room_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	DeliveryType  string          `json:"delivery_type"`
	Items         []OrderItem     `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Priority      int             `json:"priority"`
}

// StatusUpdateMessage represents a status change notification fanned out
// to guest-facing subscribers
type StatusUpdateMessage struct {
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ChangedBy   string    `json:"changed_by"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewOrderMessage builds the message published when an order is created
func NewOrderMessage(o *Order) *OrderMessage {
	return &OrderMessage{
		OrderNumber:   o.Number,
		RestaurantID:  o.RestaurantID,
		PropertyID:    o.PropertyID,
		RoomID:        o.RoomID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		DeliveryType:  string(o.DeliveryType),
		Items:         o.Items,
		TotalAmount:   o.TotalAmount,
		Priority:      o.Priority,
	}
}

// NewStatusUpdateMessage builds the notification for an order status change
func NewStatusUpdateMessage(orderNumber string, oldStatus, newStatus OrderStatus, changedBy string, at time.Time) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderNumber: orderNumber,
		OldStatus:   string(oldStatus),
		NewStatus:   string(newStatus),
		ChangedBy:   changedBy,
		Timestamp:   at,
	}
}

// OrderRoutingKey generates the routing key for order messages
func OrderRoutingKey(restaurantID string) string {
	return fmt.Sprintf("restaurant.%s", restaurantID)
}
