package order

import (
	"context"
	"fmt"
	"time"

	"github.com/Shashikant-75555/swaadserve-demo/internal/cache"
	"github.com/Shashikant-75555/swaadserve-demo/internal/database"
	"github.com/Shashikant-75555/swaadserve-demo/internal/logger"
	"github.com/Shashikant-75555/swaadserve-demo/internal/messaging"
	"github.com/Shashikant-75555/swaadserve-demo/internal/models"
	"github.com/Shashikant-75555/swaadserve-demo/internal/pricing"
)

// Service implements guest checkout and menu browsing
type Service struct {
	db        *database.DB
	cache     *cache.Cache
	publisher *messaging.Publisher
	logger    *logger.Logger
	semaphore chan struct{}
}

// NewService creates a new order service
func NewService(db *database.DB, c *cache.Cache, publisher *messaging.Publisher, log *logger.Logger, maxConcurrent int) *Service {
	return &Service{
		db:        db,
		cache:     c,
		publisher: publisher,
		logger:    log,
		semaphore: make(chan struct{}, maxConcurrent),
	}
}

// CreateOrder synthesizes an order from a validated checkout request.
// Menu prices are read once here and captured onto the order lines; the
// totals and the commission split are computed once and stored, so a
// later menu price change never touches an existing order.
func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.CreateOrderResponse, error) {
	select {
	case s.semaphore <- struct{}{}:
		defer func() { <-s.semaphore }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.verifyRoom(ctx, req.PropertyID, req.RoomID); err != nil {
		return nil, err
	}

	if err := s.verifyRestaurant(ctx, req.RestaurantID); err != nil {
		return nil, err
	}

	menuItems, err := s.lookupMenuItems(ctx, req.RestaurantID, req.Items)
	if err != nil {
		return nil, err
	}

	// Build the cart from the requested items; duplicate menu item ids
	// in the request merge into one line.
	c := pricing.NewCart()
	for _, item := range req.Items {
		c.AddItem(menuItems[item.MenuItemID], item.Quantity, item.SpecialInstructions)
	}

	totals := c.Totals()
	split := pricing.DefaultCommissionSplit(totals.TotalAmount)

	number, err := s.nextOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	o := &models.Order{
		Number:             number,
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		PropertyID:         req.PropertyID,
		RoomID:             req.RoomID,
		RestaurantID:       req.RestaurantID,
		DeliveryType:       models.DeliveryType(req.DeliveryType),
		Status:             models.StatusPending,
		Subtotal:           totals.Subtotal,
		TaxAmount:          totals.TaxAmount,
		DeliveryCharge:     totals.DeliveryCharge,
		PlatformFee:        totals.PlatformFee,
		TotalAmount:        totals.TotalAmount,
		PropertyCommission: split.PropertyCommission,
		PlatformCommission: split.PlatformCommission,
		RestaurantPayout:   split.RestaurantPayout,
		Priority:           models.CalculatePriority(totals.TotalAmount),
	}
	for _, line := range c.Lines() {
		var instructions *string
		if line.Instructions != "" {
			v := line.Instructions
			instructions = &v
		}
		o.Items = append(o.Items, models.OrderItem{
			MenuItemID:          line.MenuItemID,
			Name:                line.Name,
			Quantity:            line.Quantity,
			UnitPrice:           line.UnitPrice,
			LineTotal:           line.Total(),
			SpecialInstructions: instructions,
		})
	}

	if err := s.persistOrder(ctx, o); err != nil {
		return nil, err
	}

	s.publishOrder(ctx, o, requestID)

	return &models.CreateOrderResponse{
		OrderNumber: o.Number,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
	}, nil
}

// verifyRoom checks that the room exists, belongs to the property and
// accepts orders
func (s *Service) verifyRoom(ctx context.Context, propertyID, roomID string) error {
	var room models.Room
	err := s.db.QueryRow(ctx, database.GetRoomSQL, roomID, propertyID).
		Scan(&room.ID, &room.PropertyID, &room.RoomNumber, &room.IsActive)
	if err != nil {
		return fmt.Errorf("room %s not found for property %s", roomID, propertyID)
	}
	if !room.IsActive {
		return fmt.Errorf("room %s is not accepting orders", roomID)
	}
	return nil
}

// verifyRestaurant checks that the restaurant exists and accepts orders
func (s *Service) verifyRestaurant(ctx context.Context, restaurantID string) error {
	var r models.Restaurant
	err := s.db.QueryRow(ctx, database.GetRestaurantSQL, restaurantID).
		Scan(&r.ID, &r.Name, &r.Description, &r.Address, &r.Phone, &r.CommissionRate, &r.IsActive, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("restaurant %s not found", restaurantID)
	}
	if !r.IsActive {
		return fmt.Errorf("restaurant %s is not accepting orders", restaurantID)
	}
	return nil
}

// lookupMenuItems loads the requested menu items and checks that every
// requested id exists, is available and belongs to the restaurant
func (s *Service) lookupMenuItems(ctx context.Context, restaurantID string, items []models.OrderItemRequest) (map[string]models.MenuItem, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.MenuItemID)
	}

	rows, err := s.db.Query(ctx, database.GetMenuItemsByIDsSQL, restaurantID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	defer rows.Close()

	found := make(map[string]models.MenuItem)
	for rows.Next() {
		var m models.MenuItem
		err := rows.Scan(&m.ID, &m.RestaurantID, &m.CategoryID, &m.Name, &m.Description,
			&m.Price, &m.IsVegetarian, &m.IsAvailable, &m.PreparationMinutes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		found[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, item := range items {
		m, ok := found[item.MenuItemID]
		if !ok {
			return nil, fmt.Errorf("menu item %s not found for restaurant %s", item.MenuItemID, restaurantID)
		}
		if !m.IsAvailable {
			return nil, fmt.Errorf("menu item %s is not available", item.MenuItemID)
		}
	}

	return found, nil
}

// nextOrderNumber allocates the next ORD_YYYYMMDD_NNN number
func (s *Service) nextOrderNumber(ctx context.Context) (string, error) {
	today := time.Now().UTC()
	prefix := fmt.Sprintf("ORD_%s_%%", today.Format("20060102"))

	var sequence int
	if err := s.db.QueryRow(ctx, database.GetNextOrderSequenceSQL, prefix).Scan(&sequence); err != nil {
		return "", err
	}

	return models.GenerateOrderNumber(today, sequence), nil
}

// persistOrder writes the order, its items, the initial status log
// entry and the property earning row in one transaction
func (s *Service) persistOrder(ctx context.Context, o *models.Order) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		o.Number, o.CustomerName, o.CustomerPhone, o.PropertyID, o.RoomID, o.RestaurantID,
		o.DeliveryType, o.Subtotal, o.TaxAmount, o.DeliveryCharge, o.PlatformFee, o.TotalAmount,
		o.PropertyCommission, o.PlatformCommission, o.RestaurantPayout, o.Priority,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		_, err = tx.Exec(ctx, database.InsertOrderItemSQL,
			o.ID, item.MenuItemID, item.Name, item.Quantity, item.UnitPrice, item.LineTotal, item.SpecialInstructions)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	notes := "Order placed by guest"
	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL, o.ID, models.StatusPending, "order-service", &notes)
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	_, err = tx.Exec(ctx, database.InsertPropertyEarningSQL,
		o.PropertyID, o.Number, o.TotalAmount, o.PropertyCommission)
	if err != nil {
		return fmt.Errorf("failed to insert property earning: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// publishOrder routes the new order to its restaurant. Publish failures
// do not fail the checkout, the order is already persisted.
func (s *Service) publishOrder(ctx context.Context, o *models.Order, requestID string) {
	msg := models.NewOrderMessage(o)
	routingKey := models.OrderRoutingKey(o.RestaurantID)

	if err := s.publisher.PublishOrder(ctx, msg, routingKey, uint8(o.Priority)); err != nil {
		s.logger.Error("order_publish_failed", "Failed to publish order message", requestID, err, map[string]interface{}{
			"order_number": o.Number,
			"routing_key":  routingKey,
		})
		return
	}

	s.logger.Debug("order_published", fmt.Sprintf("Published order %s", o.Number), requestID, map[string]interface{}{
		"order_number": o.Number,
		"routing_key":  routingKey,
	})
}

// GetMenu returns the restaurant's available menu, serving from the
// cache when it is warm
func (s *Service) GetMenu(ctx context.Context, restaurantID, requestID string) ([]models.MenuItem, error) {
	var menu []models.MenuItem
	if err := s.cache.GetMenu(ctx, restaurantID, &menu); err == nil {
		s.logger.Debug("menu_cache_hit", "Serving menu from cache", requestID, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return menu, nil
	}

	rows, err := s.db.Query(ctx, database.GetMenuByRestaurantSQL, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.MenuItem
		err := rows.Scan(&m.ID, &m.RestaurantID, &m.CategoryID, &m.Name, &m.Description,
			&m.Price, &m.IsVegetarian, &m.IsAvailable, &m.PreparationMinutes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		menu = append(menu, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cache.SetMenu(ctx, restaurantID, menu)
	return menu, nil
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
