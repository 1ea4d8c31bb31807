package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/rai/fooddelivery-go/modules/orders/domain"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
)

// AssignDeliveryPersonCommand attaches delivery personnel to an order.
type AssignDeliveryPersonCommand struct {
	OrderID             string
	DeliveryPersonName  string
	DeliveryPersonPhone string
}

// AssignDeliveryPersonHandler records who is delivering an order.
type AssignDeliveryPersonHandler struct {
	orders  domain.Repository
	txScope transaction.Scope
	logger  *slog.Logger
}

func NewAssignDeliveryPersonHandler(
	orders domain.Repository,
	txScope transaction.Scope,
	logger *slog.Logger,
) *AssignDeliveryPersonHandler {
	return &AssignDeliveryPersonHandler{orders: orders, txScope: txScope, logger: logger}
}

func (h *AssignDeliveryPersonHandler) Handle(ctx context.Context, cmd AssignDeliveryPersonCommand) error {
	orderID, err := domain.ParseOrderID(cmd.OrderID)
	if err != nil {
		return err
	}

	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		order, err := h.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.AssignDeliveryPerson(cmd.DeliveryPersonName, cmd.DeliveryPersonPhone, time.Now().UTC()); err != nil {
			return err
		}
		return h.orders.Update(ctx, order)
	})
	if err != nil {
		return err
	}

	h.logger.Info("delivery person assigned",
		slog.String("order_id", cmd.OrderID),
		slog.String("delivery_person", cmd.DeliveryPersonName))
	return nil
}
