package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (
			number, customer_name, customer_phone, property_id, room_id, restaurant_id,
			delivery_type, subtotal, tax_amount, delivery_charge, platform_fee, total_amount,
			property_commission, platform_commission, restaurant_payout, priority
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, menu_item_id, name, quantity, unit_price, line_total, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)`

	// The WHERE clause pins the expected current status so that a
	// concurrent duplicate transition updates zero rows instead of
	// writing twice.
	UpdateOrderStatusSQL = `
		UPDATE orders SET
			status = $2, updated_at = $3,
			confirmed_at = $4, preparing_at = $5, ready_at = $6,
			out_for_delivery_at = $7, delivered_at = $8, cancelled_at = $9
		WHERE number = $1 AND status = $10`

	GetOrderByNumberSQL = `
		SELECT id, number, customer_name, customer_phone, property_id, room_id, restaurant_id,
			   delivery_type, status, subtotal, tax_amount, delivery_charge, platform_fee,
			   total_amount, property_commission, platform_commission, restaurant_payout,
			   priority, created_at, updated_at, confirmed_at, preparing_at, ready_at,
			   out_for_delivery_at, delivered_at, cancelled_at
		FROM orders WHERE number = $1`

	GetOrdersByRestaurantSQL = `
		SELECT id, number, customer_name, customer_phone, property_id, room_id, restaurant_id,
			   delivery_type, status, subtotal, tax_amount, delivery_charge, platform_fee,
			   total_amount, property_commission, platform_commission, restaurant_payout,
			   priority, created_at, updated_at, confirmed_at, preparing_at, ready_at,
			   out_for_delivery_at, delivered_at, cancelled_at
		FROM orders
		WHERE restaurant_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY priority DESC, created_at ASC`

	GetOrderItemsSQL = `
		SELECT id, order_id, menu_item_id, name, quantity, unit_price, line_total, special_instructions
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC`

	GetOrderStatusHistorySQL = `
		SELECT status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = (SELECT id FROM orders WHERE number = $1)
		ORDER BY changed_at ASC`

	GetNextOrderSequenceSQL = `
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 'ORD_[0-9]{8}_([0-9]{3})') AS INTEGER)), 0) + 1
		FROM orders
		WHERE number LIKE $1`
)

// Catalog queries
const (
	GetMenuItemsByIDsSQL = `
		SELECT id, restaurant_id, category_id, name, description, price,
			   is_vegetarian, is_available, preparation_time_minutes
		FROM menu_items
		WHERE restaurant_id = $1 AND id = ANY($2)`

	GetMenuByRestaurantSQL = `
		SELECT m.id, m.restaurant_id, m.category_id, m.name, m.description, m.price,
			   m.is_vegetarian, m.is_available, m.preparation_time_minutes
		FROM menu_items m
		JOIN menu_categories c ON c.id = m.category_id
		WHERE m.restaurant_id = $1 AND m.is_available AND c.is_active
		ORDER BY c.sort_order ASC, m.name ASC`

	GetRoomSQL = `
		SELECT id, property_id, room_number, is_active
		FROM rooms WHERE id = $1 AND property_id = $2`

	GetRestaurantSQL = `
		SELECT id, name, description, address, phone, commission_rate, is_active, created_at
		FROM restaurants WHERE id = $1`

	GetPropertySQL = `
		SELECT id, name, address, phone, total_rooms, commission_rate, is_active, created_at
		FROM properties WHERE id = $1`
)

// Earnings queries
const (
	InsertPropertyEarningSQL = `
		INSERT INTO property_earnings (property_id, order_number, order_amount, commission_amount, status)
		VALUES ($1, $2, $3, $4, 'pending')`

	GetPropertyEarningsSQL = `
		SELECT id, property_id, order_number, order_amount, commission_amount, status, created_at
		FROM property_earnings
		WHERE property_id = $1
		ORDER BY created_at DESC`
)
