package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Shashikant-75555/swaadserve-demo/internal/cache"
	"github.com/Shashikant-75555/swaadserve-demo/internal/database"
	"github.com/Shashikant-75555/swaadserve-demo/internal/logger"
	"github.com/Shashikant-75555/swaadserve-demo/internal/messaging"
	"github.com/Shashikant-75555/swaadserve-demo/internal/models"
	"github.com/Shashikant-75555/swaadserve-demo/internal/status"
)

// ErrOrderNotFound is returned when no order exists for the number
var ErrOrderNotFound = errors.New("order not found")

// ErrTransitionInFlight is returned when another transition for the
// same order holds the lock; the duplicate request is dropped.
var ErrTransitionInFlight = errors.New("another transition for this order is in progress")

// Service implements the restaurant fulfilment dashboard
type Service struct {
	db        *database.DB
	cache     *cache.Cache
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewService creates a new dashboard service
func NewService(db *database.DB, c *cache.Cache, publisher *messaging.Publisher, log *logger.Logger) *Service {
	return &Service{
		db:        db,
		cache:     c,
		publisher: publisher,
		logger:    log,
	}
}

// OrderWithActions is an order plus the status moves currently offered
// to the operator
type OrderWithActions struct {
	models.Order
	AvailableActions []models.OrderStatus `json:"available_actions"`
}

// ListOrders returns a restaurant's orders, optionally filtered by
// status, with their items and available actions
func (s *Service) ListOrders(ctx context.Context, restaurantID string, statusFilter *models.OrderStatus, requestID string) ([]OrderWithActions, error) {
	var filter *string
	if statusFilter != nil {
		v := string(*statusFilter)
		filter = &v
	}

	rows, err := s.db.Query(ctx, database.GetOrdersByRestaurantSQL, restaurantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []OrderWithActions
	orderIndex := make(map[int]int)
	var orderIDs []int
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orderIndex[o.ID] = len(orders)
		orderIDs = append(orderIDs, o.ID)
		orders = append(orders, OrderWithActions{
			Order:            o,
			AvailableActions: status.NextStatuses(o.Status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []OrderWithActions{}, nil
	}

	itemRows, err := s.db.Query(ctx, database.GetOrderItemsSQL, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.OrderItem
		err := itemRows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.LineTotal, &item.SpecialInstructions)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if idx, ok := orderIndex[item.OrderID]; ok {
			orders[idx].Items = append(orders[idx].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus applies one status transition to an order. The per-order
// lock plus the status-conditional UPDATE collapse concurrent duplicate
// requests (a double-clicked action button) into a single effective
// transition; the loser sees an invalid-transition error.
func (s *Service) UpdateStatus(ctx context.Context, orderNumber string, target models.OrderStatus, role status.Role, changedBy, requestID string) (*models.Order, error) {
	locked, err := s.cache.AcquireOrderLock(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire order lock: %w", err)
	}
	if !locked {
		return nil, ErrTransitionInFlight
	}
	defer s.cache.ReleaseOrderLock(ctx, orderNumber)

	o, err := s.getOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	oldStatus := o.Status
	if err := status.Apply(o, target, role, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.persistTransition(ctx, o, oldStatus, changedBy); err != nil {
		return nil, err
	}

	s.logger.Info("order_status_updated",
		fmt.Sprintf("Order %s moved from %s to %s", orderNumber, oldStatus, o.Status),
		requestID,
		map[string]interface{}{
			"order_number": orderNumber,
			"old_status":   string(oldStatus),
			"new_status":   string(o.Status),
			"changed_by":   changedBy,
		})

	msg := models.NewStatusUpdateMessage(orderNumber, oldStatus, o.Status, changedBy, o.UpdatedAt)
	if err := s.publisher.PublishNotification(ctx, msg); err != nil {
		// The transition is committed; the notification is best effort.
		s.logger.Error("notification_publish_failed", "Failed to publish status update", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
	}

	return o, nil
}

// getOrder loads a single order by number
func (s *Service) getOrder(ctx context.Context, orderNumber string) (*models.Order, error) {
	row := s.db.QueryRow(ctx, database.GetOrderByNumberSQL, orderNumber)

	var o models.Order
	if err := scanOrder(row, &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &o, nil
}

// persistTransition writes the already-applied transition. The UPDATE
// is conditional on the old status; zero affected rows means a
// concurrent transition won and this one is reported as invalid.
func (s *Service) persistTransition(ctx context.Context, o *models.Order, oldStatus models.OrderStatus, changedBy string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, database.UpdateOrderStatusSQL,
		o.Number, o.Status, o.UpdatedAt,
		o.ConfirmedAt, o.PreparingAt, o.ReadyAt,
		o.OutForDeliveryAt, o.DeliveredAt, o.CancelledAt,
		oldStatus)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &status.InvalidTransitionError{From: oldStatus, To: o.Status}
	}

	notes := fmt.Sprintf("Order status changed to %s by %s", o.Status, changedBy)
	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL, o.ID, o.Status, changedBy, &notes)
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// HandleIncomingOrder surfaces newly routed orders as dashboard alerts
func (s *Service) HandleIncomingOrder(ctx context.Context, body []byte) error {
	var msg models.OrderMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		return fmt.Errorf("failed to parse order message: %w", err)
	}

	s.logger.Info("new_order_received",
		fmt.Sprintf("New order %s for restaurant %s", msg.OrderNumber, msg.RestaurantID),
		logger.GenerateRequestID(),
		map[string]interface{}{
			"order_number":  msg.OrderNumber,
			"restaurant_id": msg.RestaurantID,
			"room_id":       msg.RoomID,
			"total_amount":  msg.TotalAmount,
			"priority":      msg.Priority,
		})

	return nil
}

// HealthCheck reports whether the service's dependencies are reachable
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.db.Ping(ctx); err != nil {
		return false
	}
	if err := s.cache.Ping(ctx); err != nil {
		return false
	}
	return true
}

// scanOrder scans the full order column list shared by the order queries
func scanOrder(row pgx.Row, o *models.Order) error {
	return row.Scan(
		&o.ID, &o.Number, &o.CustomerName, &o.CustomerPhone, &o.PropertyID, &o.RoomID, &o.RestaurantID,
		&o.DeliveryType, &o.Status, &o.Subtotal, &o.TaxAmount, &o.DeliveryCharge, &o.PlatformFee,
		&o.TotalAmount, &o.PropertyCommission, &o.PlatformCommission, &o.RestaurantPayout,
		&o.Priority, &o.CreatedAt, &o.UpdatedAt, &o.ConfirmedAt, &o.PreparingAt, &o.ReadyAt,
		&o.OutForDeliveryAt, &o.DeliveredAt, &o.CancelledAt,
	)
}
