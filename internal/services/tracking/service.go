package tracking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Shashikant-75555/swaadserve-demo/internal/database"
	"github.com/Shashikant-75555/swaadserve-demo/internal/logger"
	"github.com/Shashikant-75555/swaadserve-demo/internal/models"
)

// ErrOrderNotFound is returned when no order exists for the number
var ErrOrderNotFound = errors.New("order not found")

// ErrPropertyNotFound is returned when no property exists for the id
var ErrPropertyNotFound = errors.New("property not found")

// Service implements guest order tracking and property earnings reads
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new tracking service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
	}
}

// GetOrderStatus returns the current status of an order
func (s *Service) GetOrderStatus(ctx context.Context, orderNumber, requestID string) (*models.OrderTrackingResponse, error) {
	row := s.db.QueryRow(ctx, database.GetOrderByNumberSQL, orderNumber)

	var o models.Order
	err := row.Scan(
		&o.ID, &o.Number, &o.CustomerName, &o.CustomerPhone, &o.PropertyID, &o.RoomID, &o.RestaurantID,
		&o.DeliveryType, &o.Status, &o.Subtotal, &o.TaxAmount, &o.DeliveryCharge, &o.PlatformFee,
		&o.TotalAmount, &o.PropertyCommission, &o.PlatformCommission, &o.RestaurantPayout,
		&o.Priority, &o.CreatedAt, &o.UpdatedAt, &o.ConfirmedAt, &o.PreparingAt, &o.ReadyAt,
		&o.OutForDeliveryAt, &o.DeliveredAt, &o.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	return &models.OrderTrackingResponse{
		OrderNumber:   o.Number,
		CurrentStatus: string(o.Status),
		UpdatedAt:     o.UpdatedAt,
		DeliveredAt:   o.DeliveredAt,
	}, nil
}

// GetOrderHistory returns the status log of an order in change order
func (s *Service) GetOrderHistory(ctx context.Context, orderNumber, requestID string) ([]models.OrderStatusHistory, error) {
	rows, err := s.db.Query(ctx, database.GetOrderStatusHistorySQL, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var history []models.OrderStatusHistory
	for rows.Next() {
		var entry models.OrderStatusHistory
		if err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan status history: %w", err)
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, ErrOrderNotFound
	}

	return history, nil
}

// GetPropertyEarnings returns a property's commission ledger with totals
func (s *Service) GetPropertyEarnings(ctx context.Context, propertyID, requestID string) (*models.PropertyEarningsResponse, error) {
	var p models.Property
	err := s.db.QueryRow(ctx, database.GetPropertySQL, propertyID).
		Scan(&p.ID, &p.Name, &p.Address, &p.Phone, &p.TotalRooms, &p.CommissionRate, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	rows, err := s.db.Query(ctx, database.GetPropertyEarningsSQL, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query property earnings: %w", err)
	}
	defer rows.Close()

	resp := &models.PropertyEarningsResponse{
		PropertyID:    propertyID,
		TotalEarnings: decimal.Zero,
		PendingAmount: decimal.Zero,
		Earnings:      []models.PropertyEarning{},
	}

	for rows.Next() {
		var e models.PropertyEarning
		err := rows.Scan(&e.ID, &e.PropertyID, &e.OrderNumber, &e.OrderAmount,
			&e.CommissionAmount, &e.Status, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property earning: %w", err)
		}

		resp.TotalEarnings = resp.TotalEarnings.Add(e.CommissionAmount)
		if e.Status == "pending" {
			resp.PendingAmount = resp.PendingAmount.Add(e.CommissionAmount)
		}
		resp.Earnings = append(resp.Earnings, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return resp, nil
}

// HealthCheck reports whether the database is reachable
func (s *Service) HealthCheck(ctx context.Context) bool {
	return s.db.Ping(ctx) == nil
}
