package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rai/fooddelivery-go/internal/platform/eventbus"
	"github.com/rai/fooddelivery-go/modules/payments/application/commands"
	"github.com/rai/fooddelivery-go/modules/payments/application/queries"
	"github.com/rai/fooddelivery-go/modules/payments/domain"
	"github.com/rai/fooddelivery-go/modules/payments/infrastructure/gateway"
	"github.com/rai/fooddelivery-go/modules/payments/infrastructure/persistence"
	"github.com/rai/fooddelivery-go/modules/shared/types"

	"log/slog"
)

type passthroughScope struct{}

func (passthroughScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubOrders struct {
	payable map[string]domain.PayableOrder
}

func (s *stubOrders) GetPayable(_ context.Context, orderID string) (domain.PayableOrder, error) {
	order, ok := s.payable[orderID]
	if !ok {
		return domain.PayableOrder{}, domain.ErrOrderNotPayable
	}
	return order, nil
}

func newTestMux(t *testing.T) (*http.ServeMux, *persistence.InMemoryRepository, *gateway.Fake, string) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	repo := persistence.NewInMemoryRepository()
	fake := gateway.NewFake("rzp_test_key", "secret")
	registry := eventbus.NewEventHandlerRegistry(logger)

	orderID := uuid.New().String()
	orders := &stubOrders{payable: map[string]domain.PayableOrder{
		orderID: {
			OrderID:     orderID,
			OrderNumber: "ORD-1700000000000-ABCD1234",
			Total:       types.MustNewMoney(3358, "INR"),
		},
	}}

	mux := http.NewServeMux()
	RegisterRoutes(mux,
		commands.NewCreateIntentHandler(repo, orders, fake, passthroughScope{}, logger),
		commands.NewVerifyPaymentHandler(repo, fake, passthroughScope{}, registry, logger),
		queries.NewGetOrderPaymentHandler(repo),
	)
	return mux, repo, fake, orderID
}

func TestCreateIntentEndpoint(t *testing.T) {
	mux, _, _, orderID := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/create-order/"+orderID, nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		GatewayOrderID string `json:"id"`
		Amount         int64  `json:"amount"`
		Currency       string `json:"currency"`
		KeyID          string `json:"key_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Amount != 3358 || resp.Currency != "INR" || resp.KeyID != "rzp_test_key" {
		t.Errorf("unexpected response: %+v", resp)
	}

	// Second intent for the same order conflicts.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/create-order/"+orderID, nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestCreateIntentEndpointUnknownOrder(t *testing.T) {
	mux, _, _, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/create-order/"+uuid.New().String(), nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestVerifyEndpoint(t *testing.T) {
	mux, repo, fake, orderID := newTestMux(t)

	payment := domain.NewPayment(orderID, types.MustNewMoney(3358, "INR"), "order_x1", time.Now().UTC())
	if err := repo.Insert(context.Background(), payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := `{"order_id":"` + orderID + `","gateway_order_id":"order_x1","gateway_payment_id":"pay_1",` +
		`"payment_method":"UPI","signature":"` + fake.SignFor("order_x1", "pay_1") + `"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/verify", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// The response carries the reconciled payment state.
	var verifyResp struct {
		Status        string    `json:"status"`
		OrderID       string    `json:"order_id"`
		PaymentID     string    `json:"payment_id"`
		Amount        int64     `json:"amount"`
		PaymentMethod string    `json:"payment_method"`
		PaymentTime   time.Time `json:"payment_time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &verifyResp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if verifyResp.Status != "COMPLETED" || verifyResp.OrderID != orderID || verifyResp.Amount != 3358 {
		t.Errorf("unexpected response: %+v", verifyResp)
	}
	if verifyResp.PaymentID != payment.ID().String() {
		t.Errorf("payment id = %q", verifyResp.PaymentID)
	}
	if verifyResp.PaymentMethod != "UPI" || verifyResp.PaymentTime.IsZero() {
		t.Errorf("payment method/time not recorded: %+v", verifyResp)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/order/"+orderID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var paymentResp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &paymentResp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if paymentResp.Status != "COMPLETED" {
		t.Errorf("payment status = %q, want COMPLETED", paymentResp.Status)
	}
}

func TestVerifyEndpointBadSignature(t *testing.T) {
	mux, repo, _, orderID := newTestMux(t)

	payment := domain.NewPayment(orderID, types.MustNewMoney(3358, "INR"), "order_x1", time.Now().UTC())
	if err := repo.Insert(context.Background(), payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := `{"order_id":"` + orderID + `","gateway_order_id":"order_x1","gateway_payment_id":"pay_1","signature":"deadbeef"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/verify", strings.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestVerifyEndpointMissingFields(t *testing.T) {
	mux, _, _, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/verify", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetPaymentEndpointNotFound(t *testing.T) {
	mux, _, _, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/order/"+uuid.New().String(), nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
