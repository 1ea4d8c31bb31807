package eventhandlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rai/fooddelivery-go/modules/shared/events"
	"github.com/rai/fooddelivery-go/modules/shared/events/contracts"
)

// PaymentCompletedHandler notifies the customer of a successful payment.
type PaymentCompletedHandler struct {
	logger *slog.Logger
}

func NewPaymentCompletedHandler(logger *slog.Logger) *PaymentCompletedHandler {
	return &PaymentCompletedHandler{logger: logger}
}

func (h *PaymentCompletedHandler) Handle(_ context.Context, event events.Event) error {
	e, ok := event.(*contracts.PaymentCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	h.logger.Info("notification: payment completed",
		slog.String("order_id", e.OrderID),
		slog.String("payment_id", e.PaymentID),
		slog.Int64("amount", e.Amount),
		slog.String("currency", e.Currency))
	return nil
}

// PaymentFailedHandler notifies the customer of a failed payment attempt.
type PaymentFailedHandler struct {
	logger *slog.Logger
}

func NewPaymentFailedHandler(logger *slog.Logger) *PaymentFailedHandler {
	return &PaymentFailedHandler{logger: logger}
}

func (h *PaymentFailedHandler) Handle(_ context.Context, event events.Event) error {
	e, ok := event.(*contracts.PaymentFailedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	h.logger.Warn("notification: payment failed",
		slog.String("order_id", e.OrderID),
		slog.String("payment_id", e.PaymentID),
		slog.String("error_code", e.ErrorCode))
	return nil
}

var (
	_ events.Handler = (*PaymentCompletedHandler)(nil)
	_ events.Handler = (*PaymentFailedHandler)(nil)
)
