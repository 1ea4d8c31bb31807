// Package domain contains the payments module's domain model.
//
// A Payment records one attempt to pay for an order through the gateway.
// An order has at most one live attempt (PENDING or COMPLETED) at a time;
// a FAILED attempt frees the slot for a retry.
package domain

import (
	"time"

	shareddomain "github.com/rai/fooddelivery-go/modules/shared/domain"
	"github.com/rai/fooddelivery-go/modules/shared/events/contracts"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// Payment is the aggregate root of the payments module.
type Payment struct {
	shareddomain.AggregateRoot

	id      PaymentID
	orderID string
	amount  types.Money
	status  Status

	gatewayOrderID   string
	gatewayPaymentID string
	gatewaySignature string

	paymentMethod string
	paymentTime   time.Time

	errorCode        string
	errorDescription string

	createdAt time.Time
	updatedAt time.Time
}

// NewPayment records a fresh PENDING attempt for an order. The gateway
// intent must already exist; its ID anchors later verification.
func NewPayment(orderID string, amount types.Money, gatewayOrderID string, now time.Time) *Payment {
	return &Payment{
		id:             NewPaymentID(),
		orderID:        orderID,
		amount:         amount,
		status:         StatusPending,
		gatewayOrderID: gatewayOrderID,
		createdAt:      now,
		updatedAt:      now,
	}
}

// MarkCompleted finalizes a verified payment, stamping the settlement time
// and method, and records the event that reconciles the order within the
// same transaction.
func (p *Payment) MarkCompleted(gatewayPaymentID, signature, method string, now time.Time) error {
	if p.status != StatusPending {
		return ErrPaymentAlreadyProcessed
	}
	p.status = StatusCompleted
	p.gatewayPaymentID = gatewayPaymentID
	p.gatewaySignature = signature
	p.paymentMethod = method
	p.paymentTime = now
	p.updatedAt = now
	p.AddDomainEvent(contracts.NewPaymentCompletedEvent(
		p.id.String(), p.orderID, gatewayPaymentID, p.amount.Amount(), p.amount.Currency()))
	return nil
}

// MarkFailed records a failed attempt, freeing the order's payment slot.
func (p *Payment) MarkFailed(errorCode, errorDescription string, now time.Time) error {
	if p.status != StatusPending {
		return ErrPaymentAlreadyProcessed
	}
	p.status = StatusFailed
	p.errorCode = errorCode
	p.errorDescription = errorDescription
	p.updatedAt = now
	p.AddDomainEvent(contracts.NewPaymentFailedEvent(
		p.id.String(), p.orderID, errorCode, errorDescription))
	return nil
}

func (p *Payment) ID() PaymentID            { return p.id }
func (p *Payment) OrderID() string          { return p.orderID }
func (p *Payment) Amount() types.Money      { return p.amount }
func (p *Payment) Status() Status           { return p.status }
func (p *Payment) GatewayOrderID() string   { return p.gatewayOrderID }
func (p *Payment) GatewayPaymentID() string { return p.gatewayPaymentID }
func (p *Payment) GatewaySignature() string { return p.gatewaySignature }
func (p *Payment) PaymentMethod() string    { return p.paymentMethod }
func (p *Payment) PaymentTime() time.Time   { return p.paymentTime }
func (p *Payment) ErrorCode() string        { return p.errorCode }
func (p *Payment) ErrorDescription() string { return p.errorDescription }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }

// ReconstitutePaymentParams carries persisted state back into a Payment.
type ReconstitutePaymentParams struct {
	ID               PaymentID
	OrderID          string
	Amount           types.Money
	Status           Status
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	PaymentMethod    string
	PaymentTime      time.Time
	ErrorCode        string
	ErrorDescription string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Reconstitute rebuilds a payment from persistence without validation or
// event emission.
func Reconstitute(p ReconstitutePaymentParams) *Payment {
	return &Payment{
		id:               p.ID,
		orderID:          p.OrderID,
		amount:           p.Amount,
		status:           p.Status,
		gatewayOrderID:   p.GatewayOrderID,
		gatewayPaymentID: p.GatewayPaymentID,
		gatewaySignature: p.GatewaySignature,
		paymentMethod:    p.PaymentMethod,
		paymentTime:      p.PaymentTime,
		errorCode:        p.ErrorCode,
		errorDescription: p.ErrorDescription,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}
