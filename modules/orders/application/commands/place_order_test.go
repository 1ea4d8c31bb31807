package commands_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/rai/fooddelivery-go/internal/platform/eventbus"
	"github.com/rai/fooddelivery-go/modules/orders/application/commands"
	"github.com/rai/fooddelivery-go/modules/orders/domain"
	"github.com/rai/fooddelivery-go/modules/orders/infrastructure/persistence"
	"github.com/rai/fooddelivery-go/modules/shared/events"
	"github.com/rai/fooddelivery-go/modules/shared/events/contracts"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// passthroughScope runs the closure without a real transaction.
type passthroughScope struct{}

func (passthroughScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubCatalog struct {
	restaurants map[string]domain.RestaurantView
	items       map[string]domain.MenuItemView
}

func (s *stubCatalog) GetRestaurant(_ context.Context, id domain.RestaurantRef) (domain.RestaurantView, error) {
	r, ok := s.restaurants[id.String()]
	if !ok {
		return domain.RestaurantView{}, domain.ErrRestaurantNotFound
	}
	return r, nil
}

func (s *stubCatalog) GetMenuItem(_ context.Context, id string) (domain.MenuItemView, error) {
	item, ok := s.items[id]
	if !ok {
		return domain.MenuItemView{}, domain.ErrMenuItemNotFound
	}
	return item, nil
}

type stubUsers struct {
	known map[string]string
}

func (s *stubUsers) DisplayName(_ context.Context, ref domain.UserRef) (string, error) {
	name, ok := s.known[ref.String()]
	if !ok {
		return "", domain.ErrInvalidUserRef
	}
	return name, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type fixture struct {
	repo     *persistence.InMemoryRepository
	registry *eventbus.EventHandlerRegistry
	catalog  *stubCatalog
	users    *stubUsers
	handler  *commands.PlaceOrderHandler

	userID     string
	restaurant domain.RestaurantView
	item       domain.MenuItemView
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	restaurantID := domain.MustNewRestaurantRef(uuid.New().String())
	restaurant := domain.RestaurantView{
		ID:                  restaurantID,
		Name:                "Spice Villa",
		DeliveryFee:         types.MustNewMoney(500, "INR"),
		DeliveryTimeMinutes: 30,
		Active:              true,
	}
	item := domain.MenuItemView{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Name:         "Paneer Tikka",
		Price:        types.MustNewMoney(1299, "INR"),
		Available:    true,
	}
	userID := uuid.New().String()

	repo := persistence.NewInMemoryRepository()
	registry := eventbus.NewEventHandlerRegistry(testLogger())
	catalog := &stubCatalog{
		restaurants: map[string]domain.RestaurantView{restaurantID.String(): restaurant},
		items:       map[string]domain.MenuItemView{item.ID: item},
	}
	users := &stubUsers{known: map[string]string{userID: "Ravi Kumar"}}
	handler := commands.NewPlaceOrderHandler(
		repo,
		catalog,
		users,
		passthroughScope{},
		registry,
		domain.DefaultPricingPolicy(),
		testLogger(),
	)

	return &fixture{
		repo:       repo,
		registry:   registry,
		catalog:    catalog,
		users:      users,
		handler:    handler,
		userID:     userID,
		restaurant: restaurant,
		item:       item,
	}
}

func (f *fixture) command() commands.PlaceOrderCommand {
	return commands.PlaceOrderCommand{
		UserID:          f.userID,
		RestaurantID:    f.restaurant.ID.String(),
		Items:           []commands.PlaceOrderItem{{MenuItemID: f.item.ID, Quantity: 2}},
		DeliveryAddress: "42 MG Road",
		DeliveryPhone:   "9876543210",
		PaymentMethod:   "UPI",
	}
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture(t)

	var placed *contracts.OrderPlacedEvent
	_ = f.registry.Subscribe(contracts.OrderPlacedEventType, eventbus.HandlerFunc(
		func(_ context.Context, e events.Event) error {
			placed = e.(*contracts.OrderPlacedEvent)
			return nil
		}))

	result, err := f.handler.Handle(context.Background(), f.command())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orderID, _ := domain.ParseOrderID(result.OrderID)
	order, err := f.repo.FindByID(context.Background(), orderID)
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if order.Status() != domain.StatusPending {
		t.Errorf("status = %s, want PENDING", order.Status())
	}
	// 2598 subtotal + 500 fee + 260 tax
	if order.TotalAmount().Amount() != 3358 {
		t.Errorf("total = %d, want 3358", order.TotalAmount().Amount())
	}
	if order.RestaurantName() != "Spice Villa" {
		t.Errorf("restaurant name = %q", order.RestaurantName())
	}

	if placed == nil {
		t.Fatal("OrderPlaced event not delivered")
	}
	if placed.OrderID != result.OrderID || placed.TotalAmount != 3358 {
		t.Errorf("unexpected event payload: %+v", placed)
	}
}

func TestPlaceOrderUnknownItemPersistsNothing(t *testing.T) {
	f := newFixture(t)

	cmd := f.command()
	cmd.Items = append(cmd.Items, commands.PlaceOrderItem{MenuItemID: uuid.New().String(), Quantity: 1})

	_, err := f.handler.Handle(context.Background(), cmd)
	if !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Fatalf("err = %v, want ErrMenuItemNotFound", err)
	}

	userRef := domain.MustNewUserRef(f.userID)
	orders, _ := f.repo.ListByUser(context.Background(), userRef, 10, 0)
	if len(orders) != 0 {
		t.Errorf("expected no persisted orders, got %d", len(orders))
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newFixture(t)

	t.Run("unknown user", func(t *testing.T) {
		cmd := f.command()
		cmd.UserID = uuid.New().String()
		if _, err := f.handler.Handle(context.Background(), cmd); !errors.Is(err, domain.ErrInvalidUserRef) {
			t.Errorf("err = %v, want ErrInvalidUserRef", err)
		}
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		cmd := f.command()
		cmd.RestaurantID = uuid.New().String()
		if _, err := f.handler.Handle(context.Background(), cmd); !errors.Is(err, domain.ErrRestaurantNotFound) {
			t.Errorf("err = %v, want ErrRestaurantNotFound", err)
		}
	})

	t.Run("inactive restaurant", func(t *testing.T) {
		closed := f.restaurant
		closed.ID = domain.MustNewRestaurantRef(uuid.New().String())
		closed.Active = false
		f.catalog.restaurants[closed.ID.String()] = closed

		cmd := f.command()
		cmd.RestaurantID = closed.ID.String()
		if _, err := f.handler.Handle(context.Background(), cmd); !errors.Is(err, domain.ErrRestaurantUnavailable) {
			t.Errorf("err = %v, want ErrRestaurantUnavailable", err)
		}
	})

	t.Run("unavailable item", func(t *testing.T) {
		off := f.item
		off.ID = uuid.New().String()
		off.Available = false
		f.catalog.items[off.ID] = off

		cmd := f.command()
		cmd.Items = []commands.PlaceOrderItem{{MenuItemID: off.ID, Quantity: 1}}
		if _, err := f.handler.Handle(context.Background(), cmd); !errors.Is(err, domain.ErrMenuItemUnavailable) {
			t.Errorf("err = %v, want ErrMenuItemUnavailable", err)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		cmd := f.command()
		cmd.Items = nil
		if _, err := f.handler.Handle(context.Background(), cmd); !errors.Is(err, domain.ErrEmptyOrder) {
			t.Errorf("err = %v, want ErrEmptyOrder", err)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		cmd := f.command()
		cmd.Items[0].Quantity = 0
		if _, err := f.handler.Handle(context.Background(), cmd); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("err = %v, want ErrInvalidQuantity", err)
		}
	})

	t.Run("missing address", func(t *testing.T) {
		cmd := f.command()
		cmd.DeliveryAddress = ""
		if _, err := f.handler.Handle(context.Background(), cmd); !errors.Is(err, domain.ErrDeliveryAddressRequired) {
			t.Errorf("err = %v, want ErrDeliveryAddressRequired", err)
		}
	})
}

// collidingOrders rejects the first n inserts as duplicate order numbers,
// the way the in-memory store reports a taken number.
type collidingOrders struct {
	*persistence.InMemoryRepository
	rejections int
	numbers    []string
}

func (r *collidingOrders) Insert(ctx context.Context, order *domain.Order) error {
	r.numbers = append(r.numbers, order.OrderNumber())
	if r.rejections > 0 {
		r.rejections--
		return domain.ErrDuplicateOrderNumber
	}
	return r.InMemoryRepository.Insert(ctx, order)
}

// commitCollidingScope reports the first n commits as unique-index
// violations, the way a store that defers constraint checks to commit does.
type commitCollidingScope struct {
	failures int
}

func (s *commitCollidingScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	if s.failures > 0 {
		s.failures--
		return fmt.Errorf("%w: order number taken", transaction.ErrUniqueViolation)
	}
	return nil
}

func (f *fixture) handlerWith(orders domain.Repository, scope transaction.Scope) *commands.PlaceOrderHandler {
	return commands.NewPlaceOrderHandler(
		orders, f.catalog, f.users, scope, f.registry,
		domain.DefaultPricingPolicy(), testLogger(),
	)
}

func TestPlaceOrderRetriesOnDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	repo := &collidingOrders{InMemoryRepository: f.repo, rejections: 2}
	handler := f.handlerWith(repo, passthroughScope{})

	result, err := handler.Handle(context.Background(), f.command())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.numbers) != 3 {
		t.Fatalf("insert attempts = %d, want 3", len(repo.numbers))
	}
	if repo.numbers[0] == repo.numbers[2] {
		t.Error("order number not regenerated between attempts")
	}

	orderID, _ := domain.ParseOrderID(result.OrderID)
	order, err := f.repo.FindByID(context.Background(), orderID)
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if order.OrderNumber() != result.OrderNumber {
		t.Errorf("persisted number = %q, want %q", order.OrderNumber(), result.OrderNumber)
	}
}

func TestPlaceOrderDuplicateNumberExhaustsRetries(t *testing.T) {
	f := newFixture(t)
	repo := &collidingOrders{InMemoryRepository: f.repo, rejections: 3}
	handler := f.handlerWith(repo, passthroughScope{})

	_, err := handler.Handle(context.Background(), f.command())
	if !errors.Is(err, domain.ErrDuplicateOrderNumber) {
		t.Fatalf("err = %v, want ErrDuplicateOrderNumber", err)
	}
}

func TestPlaceOrderRetriesOnCommitUniqueViolation(t *testing.T) {
	f := newFixture(t)
	repo := &collidingOrders{InMemoryRepository: f.repo}
	handler := f.handlerWith(repo, &commitCollidingScope{failures: 1})

	result, err := handler.Handle(context.Background(), f.command())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.numbers) != 2 {
		t.Fatalf("insert attempts = %d, want 2", len(repo.numbers))
	}
	if repo.numbers[0] == repo.numbers[1] {
		t.Error("order number not regenerated after commit rejection")
	}
	if result.OrderNumber != repo.numbers[1] {
		t.Errorf("result number = %q, want %q", result.OrderNumber, repo.numbers[1])
	}
}

func TestPlaceOrderCommitUniqueViolationExhaustsRetries(t *testing.T) {
	f := newFixture(t)
	handler := f.handlerWith(f.repo, &commitCollidingScope{failures: 3})

	_, err := handler.Handle(context.Background(), f.command())
	if !errors.Is(err, domain.ErrDuplicateOrderNumber) {
		t.Fatalf("err = %v, want ErrDuplicateOrderNumber", err)
	}
}
