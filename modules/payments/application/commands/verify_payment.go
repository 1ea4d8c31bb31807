package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/rai/fooddelivery-go/internal/platform/eventbus"
	"github.com/rai/fooddelivery-go/modules/payments/domain"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
)

const signatureMismatchCode = "SIGNATURE_MISMATCH"

// VerifyPaymentCommand carries the gateway callback fields plus the order
// the client claims the payment belongs to.
type VerifyPaymentCommand struct {
	OrderID          string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	PaymentMethod    string
}

// VerifyPaymentResult is the reconciled state after a successful
// verification.
type VerifyPaymentResult struct {
	PaymentID        string
	OrderID          string
	GatewayOrderID   string
	GatewayPaymentID string
	Status           string
	Amount           int64
	Currency         string
	PaymentMethod    string
	PaymentTime      time.Time
}

// VerifyPaymentHandler settles a payment attempt after the gateway
// checkout completes.
//
// On a valid signature the payment row and the order's payment status move
// to COMPLETED in one transaction: completing the payment publishes
// PaymentCompleted, and the orders module handles it before commit. Either
// both rows change or neither does.
type VerifyPaymentHandler struct {
	payments domain.Repository
	gateway  domain.Gateway
	txScope  transaction.Scope
	registry eventbus.HandlerRegistry
	logger   *slog.Logger
}

func NewVerifyPaymentHandler(
	payments domain.Repository,
	gateway domain.Gateway,
	txScope transaction.Scope,
	registry eventbus.HandlerRegistry,
	logger *slog.Logger,
) *VerifyPaymentHandler {
	return &VerifyPaymentHandler{
		payments: payments,
		gateway:  gateway,
		txScope:  txScope,
		registry: registry,
		logger:   logger,
	}
}

func (h *VerifyPaymentHandler) Handle(ctx context.Context, cmd VerifyPaymentCommand) (VerifyPaymentResult, error) {
	if cmd.OrderID == "" || cmd.GatewayOrderID == "" || cmd.GatewayPaymentID == "" || cmd.Signature == "" {
		return VerifyPaymentResult{}, domain.ErrVerificationFieldsMissing
	}

	if !h.gateway.VerifySignature(cmd.GatewayOrderID, cmd.GatewayPaymentID, cmd.Signature) {
		if _, err := h.settle(ctx, cmd.OrderID, cmd.GatewayOrderID, func(p *domain.Payment) error {
			return p.MarkFailed(signatureMismatchCode, "gateway signature did not match", time.Now().UTC())
		}); err != nil {
			return VerifyPaymentResult{}, err
		}
		h.logger.Warn("payment verification failed",
			slog.String("order_id", cmd.OrderID),
			slog.String("gateway_order_id", cmd.GatewayOrderID),
			slog.String("gateway_payment_id", cmd.GatewayPaymentID))
		return VerifyPaymentResult{}, domain.ErrVerificationFailed
	}

	payment, err := h.settle(ctx, cmd.OrderID, cmd.GatewayOrderID, func(p *domain.Payment) error {
		return p.MarkCompleted(cmd.GatewayPaymentID, cmd.Signature, cmd.PaymentMethod, time.Now().UTC())
	})
	if err != nil {
		return VerifyPaymentResult{}, err
	}

	h.logger.Info("payment verified",
		slog.String("order_id", payment.OrderID()),
		slog.String("gateway_order_id", cmd.GatewayOrderID),
		slog.String("gateway_payment_id", cmd.GatewayPaymentID))

	return VerifyPaymentResult{
		PaymentID:        payment.ID().String(),
		OrderID:          payment.OrderID(),
		GatewayOrderID:   payment.GatewayOrderID(),
		GatewayPaymentID: payment.GatewayPaymentID(),
		Status:           payment.Status().String(),
		Amount:           payment.Amount().Amount(),
		Currency:         payment.Amount().Currency(),
		PaymentMethod:    payment.PaymentMethod(),
		PaymentTime:      payment.PaymentTime(),
	}, nil
}

// settle re-reads the payment inside the transaction, checks it belongs to
// the claimed order, applies the state change and flushes the resulting
// events so the order is reconciled in the same commit. A mismatched order
// leaves the payment untouched: failing it would free another order's
// payment slot on the strength of a misrouted callback.
func (h *VerifyPaymentHandler) settle(ctx context.Context, orderID, gatewayOrderID string, change func(*domain.Payment) error) (*domain.Payment, error) {
	var payment *domain.Payment
	err := h.txScope.Execute(ctx, func(ctx context.Context) error {
		bus := eventbus.NewTransactional(h.registry, 0)

		p, err := h.payments.FindByGatewayOrderID(ctx, gatewayOrderID)
		if err != nil {
			return err
		}
		if p.OrderID() != orderID {
			return domain.ErrOrderMismatch
		}
		if err := change(p); err != nil {
			return err
		}
		if err := h.payments.Update(ctx, p); err != nil {
			return err
		}
		for _, event := range p.DomainEvents() {
			if err := bus.Publish(ctx, event); err != nil {
				return err
			}
		}
		if err := bus.Flush(ctx); err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
