// Package orders provides order placement and lifecycle management.
// This is the public API for the orders bounded context.
package orders

import (
	"log/slog"
	"net/http"

	"github.com/rai/fooddelivery-go/internal/platform/eventbus"
	"github.com/rai/fooddelivery-go/modules/orders/application/commands"
	"github.com/rai/fooddelivery-go/modules/orders/application/eventhandlers"
	"github.com/rai/fooddelivery-go/modules/orders/application/queries"
	"github.com/rai/fooddelivery-go/modules/orders/domain"
	httphandler "github.com/rai/fooddelivery-go/modules/orders/infrastructure/http"
	"github.com/rai/fooddelivery-go/modules/shared/events"
	"github.com/rai/fooddelivery-go/modules/shared/events/contracts"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
)

// Module is the public API for the orders bounded context.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
	// RegisterEventHandlers subscribes the module's event handlers.
	RegisterEventHandlers(subscriber events.Subscriber) error
}

// Config holds the module configuration.
type Config struct {
	Orders        domain.Repository
	Catalog       domain.Catalog
	Users         domain.UserDirectory
	TxScope       transaction.Scope
	Registry      eventbus.HandlerRegistry
	PricingPolicy domain.PricingPolicy
	Logger        *slog.Logger
}

type module struct {
	placeOrder           *commands.PlaceOrderHandler
	updateStatus         *commands.UpdateStatusHandler
	cancelOrder          *commands.CancelOrderHandler
	assignDeliveryPerson *commands.AssignDeliveryPersonHandler
	getOrder             *queries.GetOrderHandler
	listUserOrders       *queries.ListUserOrdersHandler
	listRestaurantOrders *queries.ListRestaurantOrdersHandler
	paymentCompleted     *eventhandlers.PaymentCompletedHandler
	paymentFailed        *eventhandlers.PaymentFailedHandler
}

// New creates a new orders module.
func New(cfg Config) Module {
	if cfg.PricingPolicy.TaxRateBasisPoints == 0 {
		cfg.PricingPolicy = domain.DefaultPricingPolicy()
	}
	return &module{
		placeOrder: commands.NewPlaceOrderHandler(
			cfg.Orders, cfg.Catalog, cfg.Users, cfg.TxScope, cfg.Registry, cfg.PricingPolicy, cfg.Logger),
		updateStatus:         commands.NewUpdateStatusHandler(cfg.Orders, cfg.TxScope, cfg.Registry, cfg.Logger),
		cancelOrder:          commands.NewCancelOrderHandler(cfg.Orders, cfg.TxScope, cfg.Registry, cfg.Logger),
		assignDeliveryPerson: commands.NewAssignDeliveryPersonHandler(cfg.Orders, cfg.TxScope, cfg.Logger),
		getOrder:             queries.NewGetOrderHandler(cfg.Orders),
		listUserOrders:       queries.NewListUserOrdersHandler(cfg.Orders),
		listRestaurantOrders: queries.NewListRestaurantOrdersHandler(cfg.Orders),
		paymentCompleted:     eventhandlers.NewPaymentCompletedHandler(cfg.Orders, cfg.Logger),
		paymentFailed:        eventhandlers.NewPaymentFailedHandler(cfg.Orders, cfg.Logger),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.placeOrder, m.updateStatus, m.cancelOrder,
		m.assignDeliveryPerson, m.getOrder, m.listUserOrders, m.listRestaurantOrders)
}

func (m *module) RegisterEventHandlers(subscriber events.Subscriber) error {
	if err := subscriber.Subscribe(contracts.PaymentCompletedEventType, m.paymentCompleted); err != nil {
		return err
	}
	return subscriber.Subscribe(contracts.PaymentFailedEventType, m.paymentFailed)
}
