package notification

import (
	"context"
	"fmt"

	"github.com/Shashikant-75555/swaadserve-demo/internal/logger"
	"github.com/Shashikant-75555/swaadserve-demo/internal/messaging"
	"github.com/Shashikant-75555/swaadserve-demo/internal/models"
)

// Subscriber consumes order status updates and emits guest-facing
// notifications. Delivery channels (SMS, push) are stubbed as log
// output; the consumption and message contract are the real part.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes status updates until the context is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	return s.consumer.StartConsuming(ctx, s.handleStatusUpdate)
}

// handleStatusUpdate processes a single status update message
func (s *Subscriber) handleStatusUpdate(ctx context.Context, body []byte) error {
	var msg models.StatusUpdateMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		return fmt.Errorf("failed to parse status update: %w", err)
	}

	s.logger.Info("guest_notified",
		fmt.Sprintf("Order %s: %s", msg.OrderNumber, guestMessage(msg.NewStatus)),
		logger.GenerateRequestID(),
		map[string]interface{}{
			"order_number": msg.OrderNumber,
			"old_status":   msg.OldStatus,
			"new_status":   msg.NewStatus,
			"changed_by":   msg.ChangedBy,
		})

	return nil
}

// guestMessage maps a status to the text a guest would receive
func guestMessage(newStatus string) string {
	switch models.OrderStatus(newStatus) {
	case models.StatusConfirmed:
		return "your order has been confirmed by the restaurant"
	case models.StatusPreparing:
		return "the kitchen has started preparing your order"
	case models.StatusReady:
		return "your order is ready and will be dispatched shortly"
	case models.StatusOutForDelivery:
		return "your order is on its way to your room"
	case models.StatusDelivered:
		return "your order has been delivered, enjoy your meal"
	case models.StatusCancelled:
		return "your order was cancelled by the restaurant"
	default:
		return fmt.Sprintf("your order is now %s", newStatus)
	}
}
