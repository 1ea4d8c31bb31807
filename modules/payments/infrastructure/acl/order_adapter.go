// Package acl adapts the orders module's read model into the payments
// module's own view types (Anti-Corruption Layer).
package acl

import (
	"context"
	"errors"

	ordersdomain "github.com/rai/fooddelivery-go/modules/orders/domain"
	"github.com/rai/fooddelivery-go/modules/payments/domain"
)

// OrderAdapter implements the payments module's OrderDirectory port
// against the orders repository. Cancelled and unknown orders are not
// payable.
type OrderAdapter struct {
	orders ordersdomain.Repository
}

func NewOrderAdapter(orders ordersdomain.Repository) *OrderAdapter {
	return &OrderAdapter{orders: orders}
}

func (a *OrderAdapter) GetPayable(ctx context.Context, orderID string) (domain.PayableOrder, error) {
	id, err := ordersdomain.ParseOrderID(orderID)
	if err != nil {
		return domain.PayableOrder{}, domain.ErrOrderNotPayable
	}
	order, err := a.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ordersdomain.ErrOrderNotFound) {
			return domain.PayableOrder{}, domain.ErrOrderNotPayable
		}
		return domain.PayableOrder{}, err
	}
	if order.Status() == ordersdomain.StatusCancelled {
		return domain.PayableOrder{}, domain.ErrOrderNotPayable
	}

	return domain.PayableOrder{
		OrderID:     order.ID().String(),
		OrderNumber: order.OrderNumber(),
		Total:       order.TotalAmount(),
	}, nil
}

var _ domain.OrderDirectory = (*OrderAdapter)(nil)
