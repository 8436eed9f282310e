// Package status implements the order fulfilment state machine:
// which status moves are legal, which actor may trigger them, and the
// per-status timestamps recorded along the way.
package status

import (
	"fmt"
	"time"

	"github.com/Shashikant-75555/swaadserve-demo/internal/models"
)

// Role identifies who is requesting a status transition
type Role string

const (
	RoleRestaurant      Role = "restaurant"
	RoleDeliveryPartner Role = "delivery_partner"
)

type edge struct {
	from models.OrderStatus
	to   models.OrderStatus
}

// transitions maps each legal status move to the role allowed to
// trigger it. Anything not in this table is rejected. Cancellation is
// only reachable while the order is still pending; delivered and
// cancelled are terminal.
var transitions = map[edge]Role{
	{models.StatusPending, models.StatusConfirmed}:        RoleRestaurant,
	{models.StatusPending, models.StatusCancelled}:        RoleRestaurant,
	{models.StatusConfirmed, models.StatusPreparing}:      RoleRestaurant,
	{models.StatusPreparing, models.StatusReady}:          RoleRestaurant,
	{models.StatusReady, models.StatusOutForDelivery}:     RoleRestaurant,
	{models.StatusOutForDelivery, models.StatusDelivered}: RoleDeliveryPartner,
}

// statusOrder fixes the display sequence of NextStatuses output
var statusOrder = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusOutForDelivery,
	models.StatusDelivered,
	models.StatusCancelled,
}

// InvalidTransitionError reports a status move not present in the
// transition table. It is recoverable; callers retry with a valid move.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// RoleError reports a legal status move requested by the wrong actor
type RoleError struct {
	Role Role
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("role %s may not move an order from %s to %s", e.Role, e.From, e.To)
}

// CanTransition reports whether the move is in the transition table
func CanTransition(from, to models.OrderStatus) bool {
	_, ok := transitions[edge{from, to}]
	return ok
}

// IsTerminal reports whether no transition leaves the given status
func IsTerminal(s models.OrderStatus) bool {
	return s == models.StatusDelivered || s == models.StatusCancelled
}

// NextStatuses returns the statuses reachable from the given one
func NextStatuses(from models.OrderStatus) []models.OrderStatus {
	var next []models.OrderStatus
	for _, to := range statusOrder {
		if CanTransition(from, to) {
			next = append(next, to)
		}
	}
	return next
}

// Apply moves the order to the target status on behalf of the given
// role, stamping the destination-status timestamp. The order is only
// mutated on success. Statuses never regress and terminal statuses
// admit no further moves, so a timestamp, once set, is never rewritten.
func Apply(o *models.Order, target models.OrderStatus, role Role, now time.Time) error {
	required, ok := transitions[edge{o.Status, target}]
	if !ok {
		return &InvalidTransitionError{From: o.Status, To: target}
	}
	if role != required {
		return &RoleError{Role: role, From: o.Status, To: target}
	}

	o.Status = target
	o.UpdatedAt = now
	setTimestamp(o, target, now)
	return nil
}

// setTimestamp records when the order reached the given status. The
// mapping is a fixed switch so that every status has a compile-time
// checked destination field.
func setTimestamp(o *models.Order, s models.OrderStatus, now time.Time) {
	t := now
	switch s {
	case models.StatusConfirmed:
		o.ConfirmedAt = &t
	case models.StatusPreparing:
		o.PreparingAt = &t
	case models.StatusReady:
		o.ReadyAt = &t
	case models.StatusOutForDelivery:
		o.OutForDeliveryAt = &t
	case models.StatusDelivered:
		o.DeliveredAt = &t
	case models.StatusCancelled:
		o.CancelledAt = &t
	}
}

// ReachedAt returns the recorded timestamp for the given status, or nil
// if the order has not reached it
func ReachedAt(o *models.Order, s models.OrderStatus) *time.Time {
	switch s {
	case models.StatusConfirmed:
		return o.ConfirmedAt
	case models.StatusPreparing:
		return o.PreparingAt
	case models.StatusReady:
		return o.ReadyAt
	case models.StatusOutForDelivery:
		return o.OutForDeliveryAt
	case models.StatusDelivered:
		return o.DeliveredAt
	case models.StatusCancelled:
		return o.CancelledAt
	default:
		return nil
	}
}

// ParseStatus validates a status string from an API request
func ParseStatus(s string) (models.OrderStatus, error) {
	switch models.OrderStatus(s) {
	case models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusOutForDelivery, models.StatusDelivered,
		models.StatusCancelled:
		return models.OrderStatus(s), nil
	default:
		return "", fmt.Errorf("unknown order status: %s", s)
	}
}

// ParseRole validates an actor role string from an API request
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleRestaurant, RoleDeliveryPartner:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown actor role: %s", s)
	}
}
