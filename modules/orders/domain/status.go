package domain

// Status represents the order fulfillment status.
// Orders move forward along the chain PENDING -> CONFIRMED -> PREPARING ->
// READY_FOR_DELIVERY -> OUT_FOR_DELIVERY -> DELIVERED; CANCELLED is reachable
// from every non-terminal status. DELIVERED and CANCELLED are terminal.
type Status string

const (
	StatusPending          Status = "PENDING"
	StatusConfirmed        Status = "CONFIRMED"
	StatusPreparing        Status = "PREPARING"
	StatusReadyForDelivery Status = "READY_FOR_DELIVERY"
	StatusOutForDelivery   Status = "OUT_FOR_DELIVERY"
	StatusDelivered        Status = "DELIVERED"
	StatusCancelled        Status = "CANCELLED"
)

// successor holds the single forward step for each status on the main chain.
var successor = map[Status]Status{
	StatusPending:          StatusConfirmed,
	StatusConfirmed:        StatusPreparing,
	StatusPreparing:        StatusReadyForDelivery,
	StatusReadyForDelivery: StatusOutForDelivery,
	StatusOutForDelivery:   StatusDelivered,
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForDelivery,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether next is a legal successor of s:
// the next step on the main chain, or CANCELLED from any non-terminal status.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return successor[s] == next
}

// PaymentStatus tracks the payment axis of an order, independent of the
// fulfillment status.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}
