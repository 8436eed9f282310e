package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// DeliveryType represents who carries the order to the room
type DeliveryType string

const (
	RestaurantSelf DeliveryType = "restaurant_self"
	ThirdParty     DeliveryType = "third_party"
)

// OrderItem is a line of an order with the unit price captured at
// checkout. Captured prices never change after the order exists, even
// if the menu price does.
type OrderItem struct {
	ID                  int             `json:"id,omitempty" db:"id"`
	OrderID             int             `json:"order_id,omitempty" db:"order_id"`
	MenuItemID          string          `json:"menu_item_id" db:"menu_item_id"`
	Name                string          `json:"name" db:"name"`
	Quantity            int             `json:"quantity" db:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price" db:"unit_price"`
	LineTotal           decimal.Decimal `json:"line_total" db:"line_total"`
	SpecialInstructions *string         `json:"special_instructions,omitempty" db:"special_instructions"`
}

// Order represents a guest order placed from a property room
type Order struct {
	ID            int          `json:"id,omitempty" db:"id"`
	Number        string       `json:"order_number" db:"number"`
	CustomerName  string       `json:"customer_name" db:"customer_name"`
	CustomerPhone string       `json:"customer_phone" db:"customer_phone"`
	PropertyID    string       `json:"property_id" db:"property_id"`
	RoomID        string       `json:"room_id" db:"room_id"`
	RestaurantID  string       `json:"restaurant_id" db:"restaurant_id"`
	DeliveryType  DeliveryType `json:"delivery_type" db:"delivery_type"`
	Status        OrderStatus  `json:"status" db:"status"`
	Items         []OrderItem  `json:"items"`

	Subtotal       decimal.Decimal `json:"subtotal" db:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge" db:"delivery_charge"`
	PlatformFee    decimal.Decimal `json:"platform_fee" db:"platform_fee"`
	TotalAmount    decimal.Decimal `json:"total_amount" db:"total_amount"`

	PropertyCommission decimal.Decimal `json:"property_commission" db:"property_commission"`
	PlatformCommission decimal.Decimal `json:"platform_commission" db:"platform_commission"`
	RestaurantPayout   decimal.Decimal `json:"restaurant_payout" db:"restaurant_payout"`

	Priority int `json:"priority" db:"priority"`

	CreatedAt        time.Time  `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at,omitempty" db:"updated_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty" db:"confirmed_at"`
	PreparingAt      *time.Time `json:"preparing_at,omitempty" db:"preparing_at"`
	ReadyAt          *time.Time `json:"ready_at,omitempty" db:"ready_at"`
	OutForDeliveryAt *time.Time `json:"out_for_delivery_at,omitempty" db:"out_for_delivery_at"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty" db:"delivered_at"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`
}

// CreateOrderRequest represents the guest checkout request. Item prices
// are looked up server-side; clients only send ids and quantities.
type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	PropertyID    string             `json:"property_id"`
	RoomID        string             `json:"room_id"`
	RestaurantID  string             `json:"restaurant_id"`
	DeliveryType  string             `json:"delivery_type"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one requested line of a checkout
type OrderItemRequest struct {
	MenuItemID          string `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// CreateOrderResponse represents the response after creating an order
type CreateOrderResponse struct {
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// OrderStatusHistory represents an entry in the order status log
type OrderStatusHistory struct {
	Status    OrderStatus `json:"status" db:"status"`
	ChangedBy string      `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time   `json:"timestamp" db:"changed_at"`
	Notes     *string     `json:"notes,omitempty" db:"notes"`
}

// OrderTrackingResponse represents the response for guest order tracking
type OrderTrackingResponse struct {
	OrderNumber   string     `json:"order_number"`
	CurrentStatus string     `json:"current_status"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

// Validate validates the create order request
func (req *CreateOrderRequest) Validate() error {
	if err := validateCustomerName(req.CustomerName); err != nil {
		return err
	}
	if err := validateCustomerPhone(req.CustomerPhone); err != nil {
		return err
	}
	if err := validateReferences(req.PropertyID, req.RoomID, req.RestaurantID); err != nil {
		return err
	}
	if _, err := ValidateDeliveryType(req.DeliveryType); err != nil {
		return err
	}
	return validateItems(req.Items)
}

// validateCustomerName validates the customer name field
func validateCustomerName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("customer_name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("customer_name must not exceed 100 characters")
	}

	// Allow letters, spaces, hyphens, and apostrophes
	validNamePattern := regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	if !validNamePattern.MatchString(name) {
		return fmt.Errorf("customer_name contains invalid characters")
	}

	return nil
}

// validateCustomerPhone validates the contact number for delivery
func validateCustomerPhone(phone string) error {
	if len(phone) == 0 {
		return fmt.Errorf("customer_phone is required")
	}

	validPhonePattern := regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	if !validPhonePattern.MatchString(phone) {
		return fmt.Errorf("customer_phone must be 7-15 digits with optional leading +")
	}

	return nil
}

// validateReferences checks the property/room/restaurant references
func validateReferences(propertyID, roomID, restaurantID string) error {
	if propertyID == "" {
		return fmt.Errorf("property_id is required")
	}
	if roomID == "" {
		return fmt.Errorf("room_id is required")
	}
	if restaurantID == "" {
		return fmt.Errorf("restaurant_id is required")
	}
	return nil
}

// ValidateDeliveryType validates the delivery type field
func ValidateDeliveryType(deliveryType string) (DeliveryType, error) {
	switch DeliveryType(deliveryType) {
	case RestaurantSelf, ThirdParty:
		return DeliveryType(deliveryType), nil
	default:
		return "", fmt.Errorf("delivery_type must be one of: restaurant_self, third_party")
	}
}

// validateItems validates the requested order items
func validateItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("items array cannot be empty")
	}
	if len(items) > 20 {
		return fmt.Errorf("items array cannot contain more than 20 items")
	}

	for i, item := range items {
		if err := validateItem(item, i); err != nil {
			return err
		}
	}

	return nil
}

// validateItem validates a single requested item
func validateItem(item OrderItemRequest, index int) error {
	prefix := fmt.Sprintf("items[%d]", index)

	if len(item.MenuItemID) == 0 {
		return fmt.Errorf("%s.menu_item_id is required", prefix)
	}
	if item.Quantity < 1 || item.Quantity > 10 {
		return fmt.Errorf("%s.quantity must be between 1 and 10", prefix)
	}
	if len(item.SpecialInstructions) > 200 {
		return fmt.Errorf("%s.special_instructions must not exceed 200 characters", prefix)
	}

	return nil
}

// CalculatePriority calculates dispatch priority from the order total
func CalculatePriority(total decimal.Decimal) int {
	if total.GreaterThan(decimal.NewFromInt(1000)) {
		return 10
	}
	if total.GreaterThanOrEqual(decimal.NewFromInt(500)) {
		return 5
	}
	return 1
}

// GenerateOrderNumber generates an order number in format ORD_YYYYMMDD_NNN
func GenerateOrderNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("ORD_%s_%03d", date.Format("20060102"), sequence)
}
