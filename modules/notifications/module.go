// Package notifications reacts to order and payment events with customer
// notifications. This is the public API for the notifications bounded context.
package notifications

import (
	"log/slog"

	"github.com/rai/fooddelivery-go/modules/notifications/application/eventhandlers"
	"github.com/rai/fooddelivery-go/modules/shared/events"
	"github.com/rai/fooddelivery-go/modules/shared/events/contracts"
)

// Module is the public API for the notifications bounded context.
type Module interface {
	// RegisterEventHandlers subscribes the module's event handlers.
	RegisterEventHandlers(subscriber events.Subscriber) error
}

// Config holds the module configuration.
type Config struct {
	Logger *slog.Logger
}

type module struct {
	orderPlaced      *eventhandlers.OrderPlacedHandler
	paymentCompleted *eventhandlers.PaymentCompletedHandler
	paymentFailed    *eventhandlers.PaymentFailedHandler
}

// New creates a new notifications module.
func New(cfg Config) Module {
	return &module{
		orderPlaced:      eventhandlers.NewOrderPlacedHandler(cfg.Logger),
		paymentCompleted: eventhandlers.NewPaymentCompletedHandler(cfg.Logger),
		paymentFailed:    eventhandlers.NewPaymentFailedHandler(cfg.Logger),
	}
}

func (m *module) RegisterEventHandlers(subscriber events.Subscriber) error {
	if err := subscriber.Subscribe(contracts.OrderPlacedEventType, m.orderPlaced); err != nil {
		return err
	}
	if err := subscriber.Subscribe(contracts.PaymentCompletedEventType, m.paymentCompleted); err != nil {
		return err
	}
	return subscriber.Subscribe(contracts.PaymentFailedEventType, m.paymentFailed)
}
