// Package eventhandlers contains the orders module's reactions to events
// published by other modules. Handlers run synchronously inside the
// publisher's transaction, so the order row and the triggering row commit
// or roll back together.
package eventhandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rai/fooddelivery-go/modules/orders/domain"
	"github.com/rai/fooddelivery-go/modules/shared/events"
	"github.com/rai/fooddelivery-go/modules/shared/events/contracts"
)

// PaymentCompletedHandler marks the order's payment status COMPLETED when a
// payment has been verified.
type PaymentCompletedHandler struct {
	orders domain.Repository
	logger *slog.Logger
}

func NewPaymentCompletedHandler(orders domain.Repository, logger *slog.Logger) *PaymentCompletedHandler {
	return &PaymentCompletedHandler{orders: orders, logger: logger}
}

func (h *PaymentCompletedHandler) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(*contracts.PaymentCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	orderID, err := domain.ParseOrderID(e.OrderID)
	if err != nil {
		return err
	}
	order, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := order.MarkPaymentCompleted(time.Now().UTC()); err != nil {
		return err
	}
	if err := h.orders.Update(ctx, order); err != nil {
		return err
	}

	h.logger.Info("order payment completed",
		slog.String("order_id", e.OrderID),
		slog.String("payment_id", e.PaymentID))
	return nil
}

var _ events.Handler = (*PaymentCompletedHandler)(nil)
