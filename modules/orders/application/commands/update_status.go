package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/rai/fooddelivery-go/internal/platform/eventbus"
	"github.com/rai/fooddelivery-go/modules/orders/domain"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
)

// UpdateStatusCommand represents the intention to move an order to a new
// fulfillment status.
type UpdateStatusCommand struct {
	OrderID string
	Status  string
}

// UpdateStatusHandler applies a status transition to an order.
type UpdateStatusHandler struct {
	orders   domain.Repository
	txScope  transaction.Scope
	registry eventbus.HandlerRegistry
	logger   *slog.Logger
}

func NewUpdateStatusHandler(
	orders domain.Repository,
	txScope transaction.Scope,
	registry eventbus.HandlerRegistry,
	logger *slog.Logger,
) *UpdateStatusHandler {
	return &UpdateStatusHandler{orders: orders, txScope: txScope, registry: registry, logger: logger}
}

// Handle re-reads the order inside the transaction so the transition is
// checked against current state, not a stale read.
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) error {
	orderID, err := domain.ParseOrderID(cmd.OrderID)
	if err != nil {
		return err
	}
	next, err := domain.ParseStatus(cmd.Status)
	if err != nil {
		return err
	}

	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		bus := eventbus.NewTransactional(h.registry, 0)

		order, err := h.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.TransitionTo(next, time.Now().UTC()); err != nil {
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

	h.logger.Info("order status updated",
		slog.String("order_id", cmd.OrderID),
		slog.String("status", cmd.Status))
	return nil
}
