// Package commands contains write operations for the orders module.
package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rai/fooddelivery-go/internal/platform/eventbus"
	"github.com/rai/fooddelivery-go/modules/orders/domain"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
)

// orderNumberRetries bounds regeneration attempts on a duplicate order number.
const orderNumberRetries = 3

// PlaceOrderItem is one requested line of a new order.
type PlaceOrderItem struct {
	MenuItemID          string
	Quantity            int
	SpecialInstructions string
}

// PlaceOrderCommand represents the intention to place an order.
type PlaceOrderCommand struct {
	UserID               string
	RestaurantID         string
	Items                []PlaceOrderItem
	DeliveryAddress      string
	DeliveryPhone        string
	DeliveryInstructions string
	PaymentMethod        string
}

// PlaceOrderResult identifies the created order.
type PlaceOrderResult struct {
	OrderID     string
	OrderNumber string
}

// PlaceOrderHandler prices a cart against the catalog and persists the
// resulting order.
type PlaceOrderHandler struct {
	orders   domain.Repository
	catalog  domain.Catalog
	users    domain.UserDirectory
	txScope  transaction.Scope
	registry eventbus.HandlerRegistry
	policy   domain.PricingPolicy
	logger   *slog.Logger
}

func NewPlaceOrderHandler(
	orders domain.Repository,
	catalog domain.Catalog,
	users domain.UserDirectory,
	txScope transaction.Scope,
	registry eventbus.HandlerRegistry,
	policy domain.PricingPolicy,
	logger *slog.Logger,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		orders:   orders,
		catalog:  catalog,
		users:    users,
		txScope:  txScope,
		registry: registry,
		policy:   policy,
		logger:   logger,
	}
}

// Handle resolves the restaurant, user and every menu item, prices the
// order, and inserts it within a transaction. Nothing is persisted when
// any validation fails.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	userRef, err := domain.NewUserRef(cmd.UserID)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	restaurantRef, err := domain.NewRestaurantRef(cmd.RestaurantID)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if len(cmd.Items) == 0 {
		return PlaceOrderResult{}, domain.ErrEmptyOrder
	}

	// Resolve the restaurant, the user and all menu items concurrently.
	// Reads happen outside the write transaction; the item snapshots taken
	// here are what the order records.
	var restaurant domain.RestaurantView
	views := make([]domain.MenuItemView, len(cmd.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		restaurant, err = h.catalog.GetRestaurant(gctx, restaurantRef)
		return err
	})
	g.Go(func() error {
		_, err := h.users.DisplayName(gctx, userRef)
		return err
	})
	for i, item := range cmd.Items {
		g.Go(func() error {
			view, err := h.catalog.GetMenuItem(gctx, item.MenuItemID)
			if err != nil {
				return err
			}
			views[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PlaceOrderResult{}, err
	}

	lines := make([]domain.Line, len(cmd.Items))
	for i, item := range cmd.Items {
		lines[i] = domain.Line{
			Item:                views[i],
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		}
	}

	quote, err := domain.ComputeTotals(h.policy, restaurant, lines)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	order, err := domain.NewOrder(domain.NewOrderParams{
		UserID:               userRef,
		Restaurant:           restaurant,
		Quote:                quote,
		DeliveryAddress:      cmd.DeliveryAddress,
		DeliveryPhone:        cmd.DeliveryPhone,
		DeliveryInstructions: cmd.DeliveryInstructions,
		PaymentMethod:        cmd.PaymentMethod,
	})
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if err := h.insertWithRetry(ctx, order); err != nil {
		return PlaceOrderResult{}, err
	}
	order.ClearDomainEvents()

	h.logger.Info("order placed",
		slog.String("order_id", order.ID().String()),
		slog.String("order_number", order.OrderNumber()),
		slog.String("user_id", userRef.String()),
		slog.Int64("total_amount", order.TotalAmount().Amount()))

	return PlaceOrderResult{OrderID: order.ID().String(), OrderNumber: order.OrderNumber()}, nil
}

// insertWithRetry persists the order and its events in one transaction,
// regenerating the order number when the store rejects it as taken. An
// in-memory store reports the duplicate from Insert; Spanner only reports
// it when the transaction commits, which the scope surfaces as
// transaction.ErrUniqueViolation. Both paths retry with a fresh number.
func (h *PlaceOrderHandler) insertWithRetry(ctx context.Context, order *domain.Order) error {
	var err error
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		err = h.txScope.Execute(ctx, func(ctx context.Context) error {
			bus := eventbus.NewTransactional(h.registry, 0)

			if err := h.orders.Insert(ctx, order); err != nil {
				return err
			}
			for _, event := range order.DomainEvents() {
				if err := bus.Publish(ctx, event); err != nil {
					return err
				}
			}
			return bus.Flush(ctx)
		})
		if !errors.Is(err, domain.ErrDuplicateOrderNumber) && !errors.Is(err, transaction.ErrUniqueViolation) {
			return err
		}
		order.RegenerateOrderNumber(time.Now().UTC())
	}
	if errors.Is(err, transaction.ErrUniqueViolation) {
		return domain.ErrDuplicateOrderNumber
	}
	return err
}
