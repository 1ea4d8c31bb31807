package domain

import (
	"github.com/google/uuid"

	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// PaymentID represents a unique identifier for a payment attempt.
type PaymentID struct {
	value string
}

func NewPaymentID() PaymentID {
	return PaymentID{value: uuid.New().String()}
}

func ParsePaymentID(s string) (PaymentID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return PaymentID{}, types.ErrInvalidID
	}
	return PaymentID{value: s}, nil
}

func (id PaymentID) String() string { return id.value }
func (id PaymentID) IsZero() bool   { return id.value == "" }
