package contracts

import "github.com/rai/fooddelivery-go/modules/shared/events"

const (
	PaymentCompletedEventType events.EventType = "payments.PaymentCompleted"
	PaymentFailedEventType    events.EventType = "payments.PaymentFailed"
)

// PaymentCompletedEvent is published when a gateway payment has been
// verified and reconciled. Handlers run within the publishing transaction,
// which is how the order's payment status is kept consistent with the
// payment row.
type PaymentCompletedEvent struct {
	events.BaseEvent
	PaymentID        string
	OrderID          string
	GatewayPaymentID string
	Amount           int64
	Currency         string
}

func NewPaymentCompletedEvent(paymentID, orderID, gatewayPaymentID string, amount int64, currency string) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseEvent:        events.NewBaseEvent(PaymentCompletedEventType, paymentID),
		PaymentID:        paymentID,
		OrderID:          orderID,
		GatewayPaymentID: gatewayPaymentID,
		Amount:           amount,
		Currency:         currency,
	}
}

// PaymentFailedEvent is published when a payment attempt reaches FAILED.
type PaymentFailedEvent struct {
	events.BaseEvent
	PaymentID        string
	OrderID          string
	ErrorCode        string
	ErrorDescription string
}

func NewPaymentFailedEvent(paymentID, orderID, errorCode, errorDescription string) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseEvent:        events.NewBaseEvent(PaymentFailedEventType, paymentID),
		PaymentID:        paymentID,
		OrderID:          orderID,
		ErrorCode:        errorCode,
		ErrorDescription: errorDescription,
	}
}
