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

// PaymentFailedHandler marks the order's payment status FAILED when a
// payment attempt could not be completed.
type PaymentFailedHandler struct {
	orders domain.Repository
	logger *slog.Logger
}

func NewPaymentFailedHandler(orders domain.Repository, logger *slog.Logger) *PaymentFailedHandler {
	return &PaymentFailedHandler{orders: orders, logger: logger}
}

func (h *PaymentFailedHandler) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(*contracts.PaymentFailedEvent)
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
	if err := order.MarkPaymentFailed(time.Now().UTC()); err != nil {
		return err
	}
	if err := h.orders.Update(ctx, order); err != nil {
		return err
	}

	h.logger.Warn("order payment failed",
		slog.String("order_id", e.OrderID),
		slog.String("payment_id", e.PaymentID),
		slog.String("error_code", e.ErrorCode))
	return nil
}

var _ events.Handler = (*PaymentFailedHandler)(nil)
