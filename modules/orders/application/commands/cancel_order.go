package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/rai/fooddelivery-go/internal/platform/eventbus"
	"github.com/rai/fooddelivery-go/modules/orders/domain"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
)

// CancelOrderCommand represents the intention to cancel an order.
type CancelOrderCommand struct {
	OrderID string
}

// CancelOrderHandler cancels an order that has not reached a terminal status.
type CancelOrderHandler struct {
	orders   domain.Repository
	txScope  transaction.Scope
	registry eventbus.HandlerRegistry
	logger   *slog.Logger
}

func NewCancelOrderHandler(
	orders domain.Repository,
	txScope transaction.Scope,
	registry eventbus.HandlerRegistry,
	logger *slog.Logger,
) *CancelOrderHandler {
	return &CancelOrderHandler{orders: orders, txScope: txScope, registry: registry, logger: logger}
}

func (h *CancelOrderHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	orderID, err := domain.ParseOrderID(cmd.OrderID)
	if err != nil {
		return err
	}

	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		bus := eventbus.NewTransactional(h.registry, 0)

		order, err := h.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(time.Now().UTC()); err != nil {
			return err
		}
		if err := h.orders.Update(ctx, order); err != nil {
			return err
		}
		for _, event := range order.DomainEvents() {
			if err := bus.Publish(ctx, event); err != nil {
				return err
			}
		}
		return bus.Flush(ctx)
	})
	if err != nil {
		return err
	}

	h.logger.Info("order cancelled", slog.String("order_id", cmd.OrderID))
	return nil
}
