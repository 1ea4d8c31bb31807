package gateway

import (
	"context"
	"crypto/hmac"
	"fmt"
	"sync/atomic"

	"github.com/rai/fooddelivery-go/modules/payments/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// Fake is an in-process gateway for tests and local development. It issues
// sequential intent IDs and verifies signatures with the same HMAC scheme
// as the real gateway.
type Fake struct {
	Secret string
	KeyID  string
	// CreateErr, when set, is returned from CreateIntent.
	CreateErr error

	seq atomic.Int64
}

func NewFake(keyID, secret string) *Fake {
	return &Fake{KeyID: keyID, Secret: secret}
}

func (g *Fake) CreateIntent(_ context.Context, amount types.Money, _ string) (domain.IntentRef, error) {
	if g.CreateErr != nil {
		return domain.IntentRef{}, g.CreateErr
	}
	return domain.IntentRef{
		GatewayOrderID: fmt.Sprintf("order_fake%06d", g.seq.Add(1)),
		Amount:         amount,
		KeyID:          g.KeyID,
	}, nil
}

func (g *Fake) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	expected := Sign(g.Secret, gatewayOrderID, gatewayPaymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignFor produces a valid callback signature, for tests.
func (g *Fake) SignFor(gatewayOrderID, gatewayPaymentID string) string {
	return Sign(g.Secret, gatewayOrderID, gatewayPaymentID)
}

var _ domain.Gateway = (*Fake)(nil)
