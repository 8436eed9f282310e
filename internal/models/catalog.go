package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restaurant represents a partner restaurant serving a property
type Restaurant struct {
	ID             string          `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Description    *string         `json:"description,omitempty" db:"description"`
	Address        string          `json:"address" db:"address"`
	Phone          string          `json:"phone" db:"phone"`
	CommissionRate decimal.Decimal `json:"commission_rate" db:"commission_rate"`
	IsActive       bool            `json:"is_active" db:"is_active"`
	CreatedAt      time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// Property represents a hotel whose guests can order in
type Property struct {
	ID             string          `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Address        string          `json:"address" db:"address"`
	Phone          string          `json:"phone" db:"phone"`
	TotalRooms     int             `json:"total_rooms" db:"total_rooms"`
	CommissionRate decimal.Decimal `json:"commission_rate" db:"commission_rate"`
	IsActive       bool            `json:"is_active" db:"is_active"`
	CreatedAt      time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// Room represents a single guest room within a property
type Room struct {
	ID         string `json:"id" db:"id"`
	PropertyID string `json:"property_id" db:"property_id"`
	RoomNumber string `json:"room_number" db:"room_number"`
	IsActive   bool   `json:"is_active" db:"is_active"`
}

// MenuCategory groups menu items for display ordering
type MenuCategory struct {
	ID           string `json:"id" db:"id"`
	RestaurantID string `json:"restaurant_id" db:"restaurant_id"`
	Name         string `json:"name" db:"name"`
	SortOrder    int    `json:"sort_order" db:"sort_order"`
	IsActive     bool   `json:"is_active" db:"is_active"`
}

// MenuItem represents a dish a guest can order. Price here is the live
// menu price; orders capture their own copy of it at checkout.
type MenuItem struct {
	ID                 string          `json:"id" db:"id"`
	RestaurantID       string          `json:"restaurant_id" db:"restaurant_id"`
	CategoryID         string          `json:"category_id" db:"category_id"`
	Name               string          `json:"name" db:"name"`
	Description        *string         `json:"description,omitempty" db:"description"`
	Price              decimal.Decimal `json:"price" db:"price"`
	IsVegetarian       bool            `json:"is_vegetarian" db:"is_vegetarian"`
	IsAvailable        bool            `json:"is_available" db:"is_available"`
	PreparationMinutes int             `json:"preparation_time_minutes" db:"preparation_time_minutes"`
}

// PropertyEarning is the commission a property accrued from one order
type PropertyEarning struct {
	ID               int             `json:"id,omitempty" db:"id"`
	PropertyID       string          `json:"property_id" db:"property_id"`
	OrderNumber      string          `json:"order_number" db:"order_number"`
	OrderAmount      decimal.Decimal `json:"order_amount" db:"order_amount"`
	CommissionAmount decimal.Decimal `json:"commission_amount" db:"commission_amount"`
	Status           string          `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// PropertyEarningsResponse summarises a property's commission ledger
type PropertyEarningsResponse struct {
	PropertyID    string            `json:"property_id"`
	TotalEarnings decimal.Decimal   `json:"total_earnings"`
	PendingAmount decimal.Decimal   `json:"pending_amount"`
	Earnings      []PropertyEarning `json:"earnings"`
}
