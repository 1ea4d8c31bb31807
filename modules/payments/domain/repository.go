package domain

import (
	"context"

	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// Repository persists payment attempts.
//
// Implementations must return ErrPaymentNotFound when no payment matches
// and ErrDuplicatePayment when an insert would give an order a second live
// attempt. The live-attempt rule is enforced at insert time, not by a
// separate existence check, so concurrent intents cannot both succeed.
type Repository interface {
	// Insert stores a new payment attempt.
	Insert(ctx context.Context, payment *Payment) error
	// Update stores changes to an existing payment.
	Update(ctx context.Context, payment *Payment) error
	// FindByID retrieves a payment by its ID.
	FindByID(ctx context.Context, id PaymentID) (*Payment, error)
	// FindByGatewayOrderID retrieves the payment anchored to a gateway intent.
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Payment, error)
	// FindLatestByOrderID retrieves the most recent attempt for an order.
	FindLatestByOrderID(ctx context.Context, orderID string) (*Payment, error)
}

// PayableOrder is the payments module's view of an order that may be paid.
type PayableOrder struct {
	OrderID     string
	OrderNumber string
	Total       types.Money
}

// OrderDirectory resolves orders for payment intent creation. Implementations
// must return ErrOrderNotPayable for unknown or cancelled orders.
type OrderDirectory interface {
	GetPayable(ctx context.Context, orderID string) (PayableOrder, error)
}
