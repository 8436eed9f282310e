package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		CustomerName:  "Rahul Sharma",
		CustomerPhone: "+919812345678",
		PropertyID:    "prop-1",
		RoomID:        "room-101",
		RestaurantID:  "rest-1",
		DeliveryType:  "restaurant_self",
		Items: []OrderItemRequest{
			{MenuItemID: "item-1", Quantity: 1},
		},
	}
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateOrderRequest)
		wantErr bool
	}{
		{
			name:    "valid request",
			mutate:  func(r *CreateOrderRequest) {},
			wantErr: false,
		},
		{
			name:    "missing customer name",
			mutate:  func(r *CreateOrderRequest) { r.CustomerName = "" },
			wantErr: true,
		},
		{
			name:    "customer name with digits",
			mutate:  func(r *CreateOrderRequest) { r.CustomerName = "Rahul123" },
			wantErr: true,
		},
		{
			name:    "missing phone",
			mutate:  func(r *CreateOrderRequest) { r.CustomerPhone = "" },
			wantErr: true,
		},
		{
			name:    "phone too short",
			mutate:  func(r *CreateOrderRequest) { r.CustomerPhone = "12345" },
			wantErr: true,
		},
		{
			name:    "missing property",
			mutate:  func(r *CreateOrderRequest) { r.PropertyID = "" },
			wantErr: true,
		},
		{
			name:    "missing room",
			mutate:  func(r *CreateOrderRequest) { r.RoomID = "" },
			wantErr: true,
		},
		{
			name:    "missing restaurant",
			mutate:  func(r *CreateOrderRequest) { r.RestaurantID = "" },
			wantErr: true,
		},
		{
			name:    "invalid delivery type",
			mutate:  func(r *CreateOrderRequest) { r.DeliveryType = "drone" },
			wantErr: true,
		},
		{
			name:    "empty items",
			mutate:  func(r *CreateOrderRequest) { r.Items = nil },
			wantErr: true,
		},
		{
			name: "item quantity zero",
			mutate: func(r *CreateOrderRequest) {
				r.Items = []OrderItemRequest{{MenuItemID: "item-1", Quantity: 0}}
			},
			wantErr: true,
		},
		{
			name: "item quantity over limit",
			mutate: func(r *CreateOrderRequest) {
				r.Items = []OrderItemRequest{{MenuItemID: "item-1", Quantity: 11}}
			},
			wantErr: true,
		},
		{
			name: "item missing id",
			mutate: func(r *CreateOrderRequest) {
				r.Items = []OrderItemRequest{{MenuItemID: "", Quantity: 1}}
			},
			wantErr: true,
		},
		{
			name: "too many items",
			mutate: func(r *CreateOrderRequest) {
				r.Items = make([]OrderItemRequest, 21)
				for i := range r.Items {
					r.Items[i] = OrderItemRequest{MenuItemID: "item-1", Quantity: 1}
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCalculatePriority(t *testing.T) {
	tests := []struct {
		total string
		want  int
	}{
		{"1500", 10},
		{"1000.01", 10},
		{"1000", 5},
		{"500", 5},
		{"499.99", 1},
		{"0", 1},
	}

	for _, tt := range tests {
		got := CalculatePriority(decimal.RequireFromString(tt.total))
		if got != tt.want {
			t.Errorf("CalculatePriority(%s) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	date := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	if got := GenerateOrderNumber(date, 7); got != "ORD_20260828_007" {
		t.Errorf("GenerateOrderNumber = %q, want ORD_20260828_007", got)
	}
}

func TestOrderRoutingKey(t *testing.T) {
	if got := OrderRoutingKey("rest-1"); got != "restaurant.rest-1" {
		t.Errorf("OrderRoutingKey = %q, want restaurant.rest-1", got)
	}
}
