package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rai/fooddelivery-go/modules/payments/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

func TestRazorpayCreateIntent(t *testing.T) {
	var gotBody createOrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(createOrderResponse{ID: "order_Nxy123"})
	}))
	defer server.Close()

	g := NewRazorpay(Config{KeyID: "rzp_test_key", KeySecret: "secret", BaseURL: server.URL})

	ref, err := g.CreateIntent(context.Background(), types.MustNewMoney(3358, "INR"), "ORD-1700000000000-ABCD1234")
	require.NoError(t, err)

	assert.Equal(t, "order_Nxy123", ref.GatewayOrderID)
	assert.Equal(t, int64(3358), ref.Amount.Amount())
	assert.Equal(t, "rzp_test_key", ref.KeyID)

	assert.Equal(t, int64(3358), gotBody.Amount)
	assert.Equal(t, "INR", gotBody.Currency)
	assert.Equal(t, "ORD-1700000000000-ABCD1234", gotBody.Receipt)
}

func TestRazorpayCreateIntentErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		g := NewRazorpay(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})
		_, err := g.CreateIntent(context.Background(), types.MustNewMoney(100, "INR"), "r")
		assert.True(t, errors.Is(err, domain.ErrGatewayUnavailable))
	})

	t.Run("missing order id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		g := NewRazorpay(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})
		_, err := g.CreateIntent(context.Background(), types.MustNewMoney(100, "INR"), "r")
		assert.True(t, errors.Is(err, domain.ErrGatewayUnavailable))
	})

	t.Run("connection refused", func(t *testing.T) {
		g := NewRazorpay(Config{KeyID: "k", KeySecret: "s", BaseURL: "http://127.0.0.1:1"})
		_, err := g.CreateIntent(context.Background(), types.MustNewMoney(100, "INR"), "r")
		assert.True(t, errors.Is(err, domain.ErrGatewayUnavailable))
	})
}

func TestVerifySignature(t *testing.T) {
	g := NewRazorpay(Config{KeyID: "k", KeySecret: "secret"})

	sig := Sign("secret", "order_Nxy123", "pay_0001")
	assert.True(t, g.VerifySignature("order_Nxy123", "pay_0001", sig))

	assert.False(t, g.VerifySignature("order_Nxy123", "pay_0001", "deadbeef"))
	assert.False(t, g.VerifySignature("order_Nxy123", "pay_0002", sig))
	assert.False(t, g.VerifySignature("order_other", "pay_0001", sig))

	wrongKey := Sign("other-secret", "order_Nxy123", "pay_0001")
	assert.False(t, g.VerifySignature("order_Nxy123", "pay_0001", wrongKey))
}

func TestFakeGatewayMatchesSignatureScheme(t *testing.T) {
	fake := NewFake("k", "secret")
	real := NewRazorpay(Config{KeyID: "k", KeySecret: "secret"})

	sig := fake.SignFor("order_1", "pay_1")
	assert.True(t, real.VerifySignature("order_1", "pay_1", sig))
	assert.True(t, fake.VerifySignature("order_1", "pay_1", sig))
}
