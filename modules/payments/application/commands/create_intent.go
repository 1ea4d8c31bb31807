// Package commands contains write operations for the payments module.
package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rai/fooddelivery-go/modules/payments/domain"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
)

// CreateIntentCommand starts a payment attempt for an order.
type CreateIntentCommand struct {
	OrderID string
}

// CreateIntentResult carries what the client needs to open the gateway
// checkout.
type CreateIntentResult struct {
	PaymentID      string
	GatewayOrderID string
	Amount         int64
	Currency       string
	KeyID          string
}

// CreateIntentHandler registers a gateway intent and records the PENDING
// payment attempt.
type CreateIntentHandler struct {
	payments domain.Repository
	orders   domain.OrderDirectory
	gateway  domain.Gateway
	txScope  transaction.Scope
	logger   *slog.Logger
}

func NewCreateIntentHandler(
	payments domain.Repository,
	orders domain.OrderDirectory,
	gateway domain.Gateway,
	txScope transaction.Scope,
	logger *slog.Logger,
) *CreateIntentHandler {
	return &CreateIntentHandler{
		payments: payments,
		orders:   orders,
		gateway:  gateway,
		txScope:  txScope,
		logger:   logger,
	}
}

// Handle resolves the order, registers the intent at the gateway and
// inserts the payment row. The insert enforces the one-live-attempt rule;
// when it reports a duplicate the caller gets ErrDuplicatePayment and the
// unreferenced gateway intent simply expires.
func (h *CreateIntentHandler) Handle(ctx context.Context, cmd CreateIntentCommand) (CreateIntentResult, error) {
	order, err := h.orders.GetPayable(ctx, cmd.OrderID)
	if err != nil {
		return CreateIntentResult{}, err
	}

	// Fail fast before talking to the gateway. The insert below still
	// decides races between concurrent intents.
	if existing, err := h.payments.FindLatestByOrderID(ctx, order.OrderID); err == nil {
		if existing.Status().IsLive() {
			return CreateIntentResult{}, domain.ErrDuplicatePayment
		}
	} else if !errors.Is(err, domain.ErrPaymentNotFound) {
		return CreateIntentResult{}, err
	}

	intent, err := h.gateway.CreateIntent(ctx, order.Total, order.OrderNumber)
	if err != nil {
		return CreateIntentResult{}, err
	}

	payment := domain.NewPayment(order.OrderID, order.Total, intent.GatewayOrderID, time.Now().UTC())
	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		return h.payments.Insert(ctx, payment)
	})
	if err != nil {
		// A commit-time unique violation means a concurrent intent won the
		// order's live-payment slot.
		if errors.Is(err, transaction.ErrUniqueViolation) {
			return CreateIntentResult{}, domain.ErrDuplicatePayment
		}
		return CreateIntentResult{}, err
	}

	h.logger.Info("payment intent created",
		slog.String("payment_id", payment.ID().String()),
		slog.String("order_id", order.OrderID),
		slog.String("gateway_order_id", intent.GatewayOrderID))

	return CreateIntentResult{
		PaymentID:      payment.ID().String(),
		GatewayOrderID: intent.GatewayOrderID,
		Amount:         intent.Amount.Amount(),
		Currency:       intent.Amount.Currency(),
		KeyID:          intent.KeyID,
	}, nil
}
