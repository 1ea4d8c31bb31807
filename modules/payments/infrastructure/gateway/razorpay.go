// Package gateway adapts external payment providers to the payments
// module's Gateway port.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rai/fooddelivery-go/modules/payments/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

const defaultBaseURL = "https://api.razorpay.com"

// Config holds Razorpay credentials and connection settings.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

// Razorpay implements the Gateway port against the Razorpay Orders API.
type Razorpay struct {
	cfg    Config
	client *http.Client
}

func NewRazorpay(cfg Config) *Razorpay {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Razorpay{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateIntent registers an order with the gateway. The amount is already
// in the smallest currency unit, which is what the API expects.
func (g *Razorpay) CreateIntent(ctx context.Context, amount types.Money, receipt string) (domain.IntentRef, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amount.Amount(),
		Currency: amount.Currency(),
		Receipt:  receipt,
	})
	if err != nil {
		return domain.IntentRef{}, fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return domain.IntentRef{}, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.cfg.KeyID, g.cfg.KeySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.IntentRef{}, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.IntentRef{}, fmt.Errorf("%w: gateway returned status %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	var created createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return domain.IntentRef{}, fmt.Errorf("%w: invalid gateway response: %v", domain.ErrGatewayUnavailable, err)
	}
	if created.ID == "" {
		return domain.IntentRef{}, fmt.Errorf("%w: gateway response missing order id", domain.ErrGatewayUnavailable)
	}

	return domain.IntentRef{
		GatewayOrderID: created.ID,
		Amount:         amount,
		KeyID:          g.cfg.KeyID,
	}, nil
}

// VerifySignature checks the checkout callback signature: hex HMAC-SHA256
// of "<gateway order id>|<gateway payment id>" under the key secret.
func (g *Razorpay) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	expected := Sign(g.cfg.KeySecret, gatewayOrderID, gatewayPaymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the callback signature for the given intent and payment.
func Sign(secret, gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

var _ domain.Gateway = (*Razorpay)(nil)
