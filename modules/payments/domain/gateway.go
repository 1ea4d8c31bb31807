package domain

import (
	"context"

	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// IntentRef identifies a payment intent created at the gateway. KeyID is
// the public key the client needs to open the gateway checkout.
type IntentRef struct {
	GatewayOrderID string
	Amount         types.Money
	KeyID          string
}

// Gateway is the port to the external payment provider.
type Gateway interface {
	// CreateIntent registers a payment intent for the given amount.
	// Receipt is an opaque merchant reference (the order number).
	CreateIntent(ctx context.Context, amount types.Money, receipt string) (IntentRef, error)
	// VerifySignature checks the signature the gateway's client callback
	// delivered for the given intent and payment.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}
