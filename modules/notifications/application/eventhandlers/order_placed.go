// Package eventhandlers contains the notifications module's event handlers.
// Delivery is a structured log line per notification; a real channel
// (email, push) would slot in behind the same handlers.
package eventhandlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rai/fooddelivery-go/modules/shared/events"
	"github.com/rai/fooddelivery-go/modules/shared/events/contracts"
)

// OrderPlacedHandler notifies the customer that their order was received.
type OrderPlacedHandler struct {
	logger *slog.Logger
}

func NewOrderPlacedHandler(logger *slog.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{logger: logger}
}

func (h *OrderPlacedHandler) Handle(_ context.Context, event events.Event) error {
	e, ok := event.(*contracts.OrderPlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	h.logger.Info("notification: order placed",
		slog.String("user_id", e.UserID),
		slog.String("order_number", e.OrderNumber),
		slog.Int64("total_amount", e.TotalAmount),
		slog.String("currency", e.Currency))
	return nil
}

var _ events.Handler = (*OrderPlacedHandler)(nil)
