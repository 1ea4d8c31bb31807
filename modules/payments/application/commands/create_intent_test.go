package commands_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rai/fooddelivery-go/modules/payments/application/commands"
	"github.com/rai/fooddelivery-go/modules/payments/domain"
	"github.com/rai/fooddelivery-go/modules/payments/infrastructure/gateway"
	"github.com/rai/fooddelivery-go/modules/payments/infrastructure/persistence"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
	"github.com/rai/fooddelivery-go/modules/shared/types"
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

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newPayableOrder() domain.PayableOrder {
	return domain.PayableOrder{
		OrderID:     uuid.New().String(),
		OrderNumber: "ORD-1700000000000-ABCD1234",
		Total:       types.MustNewMoney(3358, "INR"),
	}
}

func TestCreateIntent(t *testing.T) {
	order := newPayableOrder()
	repo := persistence.NewInMemoryRepository()
	fake := gateway.NewFake("rzp_test_key", "secret")
	handler := commands.NewCreateIntentHandler(
		repo,
		&stubOrders{payable: map[string]domain.PayableOrder{order.OrderID: order}},
		fake,
		passthroughScope{},
		testLogger(),
	)

	result, err := handler.Handle(context.Background(), commands.CreateIntentCommand{OrderID: order.OrderID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Amount != 3358 || result.Currency != "INR" {
		t.Errorf("amount = %d %s, want 3358 INR", result.Amount, result.Currency)
	}
	if result.KeyID != "rzp_test_key" {
		t.Errorf("key id = %q", result.KeyID)
	}
	if result.GatewayOrderID == "" {
		t.Error("missing gateway order id")
	}

	payment, err := repo.FindLatestByOrderID(context.Background(), order.OrderID)
	if err != nil {
		t.Fatalf("payment not persisted: %v", err)
	}
	if payment.Status() != domain.StatusPending {
		t.Errorf("status = %s, want PENDING", payment.Status())
	}
	if payment.GatewayOrderID() != result.GatewayOrderID {
		t.Error("persisted payment not anchored to the gateway intent")
	}
}

func TestCreateIntentDuplicate(t *testing.T) {
	order := newPayableOrder()
	repo := persistence.NewInMemoryRepository()
	handler := commands.NewCreateIntentHandler(
		repo,
		&stubOrders{payable: map[string]domain.PayableOrder{order.OrderID: order}},
		gateway.NewFake("rzp_test_key", "secret"),
		passthroughScope{},
		testLogger(),
	)

	if _, err := handler.Handle(context.Background(), commands.CreateIntentCommand{OrderID: order.OrderID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := handler.Handle(context.Background(), commands.CreateIntentCommand{OrderID: order.OrderID})
	if !errors.Is(err, domain.ErrDuplicatePayment) {
		t.Errorf("err = %v, want ErrDuplicatePayment", err)
	}
}

func TestCreateIntentRetryAfterFailure(t *testing.T) {
	order := newPayableOrder()
	repo := persistence.NewInMemoryRepository()
	handler := commands.NewCreateIntentHandler(
		repo,
		&stubOrders{payable: map[string]domain.PayableOrder{order.OrderID: order}},
		gateway.NewFake("rzp_test_key", "secret"),
		passthroughScope{},
		testLogger(),
	)

	if _, err := handler.Handle(context.Background(), commands.CreateIntentCommand{OrderID: order.OrderID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payment, _ := repo.FindLatestByOrderID(context.Background(), order.OrderID)
	if err := payment.MarkFailed("DECLINED", "card declined", time.Now().UTC()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Update(context.Background(), payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The failed attempt freed the slot; a new intent is allowed.
	if _, err := handler.Handle(context.Background(), commands.CreateIntentCommand{OrderID: order.OrderID}); err != nil {
		t.Fatalf("retry after failure rejected: %v", err)
	}
}

func TestCreateIntentGatewayDown(t *testing.T) {
	order := newPayableOrder()
	repo := persistence.NewInMemoryRepository()
	fake := gateway.NewFake("rzp_test_key", "secret")
	fake.CreateErr = domain.ErrGatewayUnavailable
	handler := commands.NewCreateIntentHandler(
		repo,
		&stubOrders{payable: map[string]domain.PayableOrder{order.OrderID: order}},
		fake,
		passthroughScope{},
		testLogger(),
	)

	_, err := handler.Handle(context.Background(), commands.CreateIntentCommand{OrderID: order.OrderID})
	if !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Fatalf("err = %v, want ErrGatewayUnavailable", err)
	}
	if _, err := repo.FindLatestByOrderID(context.Background(), order.OrderID); !errors.Is(err, domain.ErrPaymentNotFound) {
		t.Error("payment row created despite gateway failure")
	}
}

func TestCreateIntentUnknownOrder(t *testing.T) {
	handler := commands.NewCreateIntentHandler(
		persistence.NewInMemoryRepository(),
		&stubOrders{payable: map[string]domain.PayableOrder{}},
		gateway.NewFake("rzp_test_key", "secret"),
		passthroughScope{},
		testLogger(),
	)

	_, err := handler.Handle(context.Background(), commands.CreateIntentCommand{OrderID: uuid.New().String()})
	if !errors.Is(err, domain.ErrOrderNotPayable) {
		t.Errorf("err = %v, want ErrOrderNotPayable", err)
	}
}

// commitCollidingScope reports the commit as a unique-index violation, the
// way the Spanner scope surfaces a concurrent live payment.
type commitCollidingScope struct{}

func (commitCollidingScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("%w: ActiveOrderID taken", transaction.ErrUniqueViolation)
}

func TestCreateIntentCommitRaceReportsDuplicate(t *testing.T) {
	order := newPayableOrder()
	handler := commands.NewCreateIntentHandler(
		persistence.NewInMemoryRepository(),
		&stubOrders{payable: map[string]domain.PayableOrder{order.OrderID: order}},
		gateway.NewFake("rzp_test_key", "secret"),
		commitCollidingScope{},
		testLogger(),
	)

	_, err := handler.Handle(context.Background(), commands.CreateIntentCommand{OrderID: order.OrderID})
	if !errors.Is(err, domain.ErrDuplicatePayment) {
		t.Errorf("err = %v, want ErrDuplicatePayment", err)
	}
}
