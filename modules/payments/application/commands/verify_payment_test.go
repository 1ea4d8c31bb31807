package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rai/fooddelivery-go/internal/platform/eventbus"
	ordersevents "github.com/rai/fooddelivery-go/modules/orders/application/eventhandlers"
	ordersdomain "github.com/rai/fooddelivery-go/modules/orders/domain"
	orderspersistence "github.com/rai/fooddelivery-go/modules/orders/infrastructure/persistence"
	"github.com/rai/fooddelivery-go/modules/payments/application/commands"
	"github.com/rai/fooddelivery-go/modules/payments/domain"
	"github.com/rai/fooddelivery-go/modules/payments/infrastructure/gateway"
	"github.com/rai/fooddelivery-go/modules/payments/infrastructure/persistence"
	"github.com/rai/fooddelivery-go/modules/shared/events/contracts"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// verifyFixture wires payments and orders together the way main does, so
// verification exercises the full reconciliation path through the event bus.
type verifyFixture struct {
	payments *persistence.InMemoryRepository
	orders   *orderspersistence.InMemoryRepository
	fake     *gateway.Fake
	verify   *commands.VerifyPaymentHandler

	order   *ordersdomain.Order
	payment *domain.Payment
}

func newVerifyFixture(t *testing.T) *verifyFixture {
	t.Helper()

	ordersRepo := orderspersistence.NewInMemoryRepository()
	order := placeReconcilableOrder(t, ordersRepo)

	paymentsRepo := persistence.NewInMemoryRepository()
	payment := domain.NewPayment(order.ID().String(), order.TotalAmount(), "order_fake000001", time.Now().UTC())
	if err := paymentsRepo.Insert(context.Background(), payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fake := gateway.NewFake("rzp_test_key", "secret")
	verify := newVerifyHandler(t, paymentsRepo, ordersRepo, passthroughScope{}, fake)

	return &verifyFixture{
		payments: paymentsRepo,
		orders:   ordersRepo,
		fake:     fake,
		verify:   verify,
		order:    order,
		payment:  payment,
	}
}

func newVerifyHandler(
	t *testing.T,
	payments domain.Repository,
	orders ordersdomain.Repository,
	scope transaction.Scope,
	fake *gateway.Fake,
) *commands.VerifyPaymentHandler {
	t.Helper()

	registry := eventbus.NewEventHandlerRegistry(testLogger())
	if err := registry.Subscribe(
		contracts.PaymentCompletedEventType,
		ordersevents.NewPaymentCompletedHandler(orders, testLogger()),
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := registry.Subscribe(
		contracts.PaymentFailedEventType,
		ordersevents.NewPaymentFailedHandler(orders, testLogger()),
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return commands.NewVerifyPaymentHandler(payments, fake, scope, registry, testLogger())
}

func placeReconcilableOrder(t *testing.T, repo *orderspersistence.InMemoryRepository) *ordersdomain.Order {
	t.Helper()

	restaurant := ordersdomain.RestaurantView{
		ID:                  ordersdomain.MustNewRestaurantRef(uuid.New().String()),
		Name:                "Spice Villa",
		DeliveryFee:         types.MustNewMoney(500, "INR"),
		DeliveryTimeMinutes: 30,
		Active:              true,
	}
	item := ordersdomain.MenuItemView{
		ID:           uuid.New().String(),
		RestaurantID: restaurant.ID,
		Name:         "Paneer Tikka",
		Price:        types.MustNewMoney(1299, "INR"),
		Available:    true,
	}
	quote, err := ordersdomain.ComputeTotals(ordersdomain.DefaultPricingPolicy(), restaurant,
		[]ordersdomain.Line{{Item: item, Quantity: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order, err := ordersdomain.NewOrder(ordersdomain.NewOrderParams{
		UserID:          ordersdomain.MustNewUserRef(uuid.New().String()),
		Restaurant:      restaurant,
		Quote:           quote,
		DeliveryAddress: "42 MG Road",
		DeliveryPhone:   "9876543210",
		PaymentMethod:   "UPI",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order.ClearDomainEvents()
	if err := repo.Insert(context.Background(), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return order
}

func TestVerifyPayment(t *testing.T) {
	f := newVerifyFixture(t)

	gatewayPaymentID := "pay_0001"
	result, err := f.verify.Handle(context.Background(), commands.VerifyPaymentCommand{
		OrderID:          f.order.ID().String(),
		GatewayOrderID:   f.payment.GatewayOrderID(),
		GatewayPaymentID: gatewayPaymentID,
		Signature:        f.fake.SignFor(f.payment.GatewayOrderID(), gatewayPaymentID),
		PaymentMethod:    "UPI",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The result reflects the settled payment, not just an acknowledgement.
	if result.Status != domain.StatusCompleted.String() {
		t.Errorf("result status = %s, want COMPLETED", result.Status)
	}
	if result.OrderID != f.order.ID().String() {
		t.Errorf("result order id = %q", result.OrderID)
	}
	if result.Amount != f.order.TotalAmount().Amount() {
		t.Errorf("result amount = %d", result.Amount)
	}
	if result.PaymentMethod != "UPI" {
		t.Errorf("result payment method = %q, want UPI", result.PaymentMethod)
	}
	if result.PaymentTime.IsZero() {
		t.Error("result payment time not set")
	}

	payment, _ := f.payments.FindByID(context.Background(), f.payment.ID())
	if payment.Status() != domain.StatusCompleted {
		t.Errorf("payment status = %s, want COMPLETED", payment.Status())
	}
	if payment.GatewayPaymentID() != gatewayPaymentID {
		t.Errorf("gateway payment id = %q", payment.GatewayPaymentID())
	}

	// The order's payment status moved in the same operation.
	order, _ := f.orders.FindByID(context.Background(), f.order.ID())
	if order.PaymentStatus() != ordersdomain.PaymentStatusCompleted {
		t.Errorf("order payment status = %s, want COMPLETED", order.PaymentStatus())
	}
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	f := newVerifyFixture(t)

	_, err := f.verify.Handle(context.Background(), commands.VerifyPaymentCommand{
		OrderID:          f.order.ID().String(),
		GatewayOrderID:   f.payment.GatewayOrderID(),
		GatewayPaymentID: "pay_0001",
		Signature:        "deadbeef",
		PaymentMethod:    "UPI",
	})
	if !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("err = %v, want ErrVerificationFailed", err)
	}

	// The failure is durable on both sides.
	payment, _ := f.payments.FindByID(context.Background(), f.payment.ID())
	if payment.Status() != domain.StatusFailed {
		t.Errorf("payment status = %s, want FAILED", payment.Status())
	}
	order, _ := f.orders.FindByID(context.Background(), f.order.ID())
	if order.PaymentStatus() != ordersdomain.PaymentStatusFailed {
		t.Errorf("order payment status = %s, want FAILED", order.PaymentStatus())
	}
}

func TestVerifyPaymentOrderMismatch(t *testing.T) {
	f := newVerifyFixture(t)

	gatewayPaymentID := "pay_0001"
	_, err := f.verify.Handle(context.Background(), commands.VerifyPaymentCommand{
		OrderID:          uuid.New().String(),
		GatewayOrderID:   f.payment.GatewayOrderID(),
		GatewayPaymentID: gatewayPaymentID,
		Signature:        f.fake.SignFor(f.payment.GatewayOrderID(), gatewayPaymentID),
		PaymentMethod:    "UPI",
	})
	if !errors.Is(err, domain.ErrOrderMismatch) {
		t.Fatalf("err = %v, want ErrOrderMismatch", err)
	}

	// The payment still belongs to its real order and keeps its slot.
	payment, _ := f.payments.FindByID(context.Background(), f.payment.ID())
	if payment.Status() != domain.StatusPending {
		t.Errorf("payment status = %s, want PENDING", payment.Status())
	}
	order, _ := f.orders.FindByID(context.Background(), f.order.ID())
	if order.PaymentStatus() != ordersdomain.PaymentStatusPending {
		t.Errorf("order payment status = %s, want PENDING", order.PaymentStatus())
	}
}

func TestVerifyPaymentReplayRejected(t *testing.T) {
	f := newVerifyFixture(t)

	gatewayPaymentID := "pay_0001"
	cmd := commands.VerifyPaymentCommand{
		OrderID:          f.order.ID().String(),
		GatewayOrderID:   f.payment.GatewayOrderID(),
		GatewayPaymentID: gatewayPaymentID,
		Signature:        f.fake.SignFor(f.payment.GatewayOrderID(), gatewayPaymentID),
		PaymentMethod:    "UPI",
	}
	if _, err := f.verify.Handle(context.Background(), cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.verify.Handle(context.Background(), cmd); !errors.Is(err, domain.ErrPaymentAlreadyProcessed) {
		t.Errorf("err = %v, want ErrPaymentAlreadyProcessed", err)
	}
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	f := newVerifyFixture(t)

	_, err := f.verify.Handle(context.Background(), commands.VerifyPaymentCommand{
		OrderID:        f.order.ID().String(),
		GatewayOrderID: f.payment.GatewayOrderID(),
	})
	if !errors.Is(err, domain.ErrVerificationFieldsMissing) {
		t.Errorf("err = %v, want ErrVerificationFieldsMissing", err)
	}

	// Nothing was marked failed for a malformed request.
	payment, _ := f.payments.FindByID(context.Background(), f.payment.ID())
	if payment.Status() != domain.StatusPending {
		t.Errorf("payment status = %s, want PENDING", payment.Status())
	}
}

func TestVerifyPaymentUnknownIntent(t *testing.T) {
	f := newVerifyFixture(t)

	_, err := f.verify.Handle(context.Background(), commands.VerifyPaymentCommand{
		OrderID:          f.order.ID().String(),
		GatewayOrderID:   "order_unknown",
		GatewayPaymentID: "pay_0001",
		Signature:        f.fake.SignFor("order_unknown", "pay_0001"),
		PaymentMethod:    "UPI",
	})
	if !errors.Is(err, domain.ErrPaymentNotFound) {
		t.Errorf("err = %v, want ErrPaymentNotFound", err)
	}
}

// stagedScope mimics a store that buffers writes until commit: the
// repository wrappers below stage their applies here, and Execute applies
// them only once the closure has succeeded. Setting commitErr fails the
// commit after the closure ran, applying nothing.
type stagedScope struct {
	staged    []func(context.Context) error
	commitErr error
}

func (s *stagedScope) stage(apply func(context.Context) error) {
	s.staged = append(s.staged, apply)
}

func (s *stagedScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	s.staged = nil
	if err := fn(ctx); err != nil {
		return err
	}
	if s.commitErr != nil {
		return s.commitErr
	}
	for _, apply := range s.staged {
		if err := apply(ctx); err != nil {
			return err
		}
	}
	return nil
}

type stagedPayments struct {
	*persistence.InMemoryRepository
	scope *stagedScope
}

func (r *stagedPayments) Update(_ context.Context, payment *domain.Payment) error {
	snapshot := *payment
	r.scope.stage(func(ctx context.Context) error {
		return r.InMemoryRepository.Update(ctx, &snapshot)
	})
	return nil
}

type stagedOrders struct {
	*orderspersistence.InMemoryRepository
	scope *stagedScope
}

func (r *stagedOrders) Update(_ context.Context, order *ordersdomain.Order) error {
	snapshot := *order
	r.scope.stage(func(ctx context.Context) error {
		return r.InMemoryRepository.Update(ctx, &snapshot)
	})
	return nil
}

func newStagedVerifyFixture(t *testing.T) (*verifyFixture, *stagedScope) {
	t.Helper()

	scope := &stagedScope{}
	ordersRepo := orderspersistence.NewInMemoryRepository()
	order := placeReconcilableOrder(t, ordersRepo)

	paymentsRepo := persistence.NewInMemoryRepository()
	payment := domain.NewPayment(order.ID().String(), order.TotalAmount(), "order_fake000001", time.Now().UTC())
	if err := paymentsRepo.Insert(context.Background(), payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fake := gateway.NewFake("rzp_test_key", "secret")
	verify := newVerifyHandler(t,
		&stagedPayments{InMemoryRepository: paymentsRepo, scope: scope},
		&stagedOrders{InMemoryRepository: ordersRepo, scope: scope},
		scope, fake)

	return &verifyFixture{
		payments: paymentsRepo,
		orders:   ordersRepo,
		fake:     fake,
		verify:   verify,
		order:    order,
		payment:  payment,
	}, scope
}

func TestVerifyPaymentSettlesInOneCommit(t *testing.T) {
	f, _ := newStagedVerifyFixture(t)

	gatewayPaymentID := "pay_0001"
	_, err := f.verify.Handle(context.Background(), commands.VerifyPaymentCommand{
		OrderID:          f.order.ID().String(),
		GatewayOrderID:   f.payment.GatewayOrderID(),
		GatewayPaymentID: gatewayPaymentID,
		Signature:        f.fake.SignFor(f.payment.GatewayOrderID(), gatewayPaymentID),
		PaymentMethod:    "UPI",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both rows moved in the same commit.
	payment, _ := f.payments.FindByID(context.Background(), f.payment.ID())
	if payment.Status() != domain.StatusCompleted {
		t.Errorf("payment status = %s, want COMPLETED", payment.Status())
	}
	order, _ := f.orders.FindByID(context.Background(), f.order.ID())
	if order.PaymentStatus() != ordersdomain.PaymentStatusCompleted {
		t.Errorf("order payment status = %s, want COMPLETED", order.PaymentStatus())
	}
}

func TestVerifyPaymentCommitFailureChangesNothing(t *testing.T) {
	f, scope := newStagedVerifyFixture(t)
	scope.commitErr = errors.New("transaction aborted")

	gatewayPaymentID := "pay_0001"
	_, err := f.verify.Handle(context.Background(), commands.VerifyPaymentCommand{
		OrderID:          f.order.ID().String(),
		GatewayOrderID:   f.payment.GatewayOrderID(),
		GatewayPaymentID: gatewayPaymentID,
		Signature:        f.fake.SignFor(f.payment.GatewayOrderID(), gatewayPaymentID),
		PaymentMethod:    "UPI",
	})
	if err == nil {
		t.Fatal("expected commit error")
	}

	// Neither the payment nor the order moved.
	payment, _ := f.payments.FindByID(context.Background(), f.payment.ID())
	if payment.Status() != domain.StatusPending {
		t.Errorf("payment status = %s, want PENDING", payment.Status())
	}
	order, _ := f.orders.FindByID(context.Background(), f.order.ID())
	if order.PaymentStatus() != ordersdomain.PaymentStatusPending {
		t.Errorf("order payment status = %s, want PENDING", order.PaymentStatus())
	}
}
