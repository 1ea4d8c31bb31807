// Package payments provides gateway payment intents and verification.
// This is the public API for the payments bounded context.
package payments

import (
	"log/slog"
	"net/http"

	"github.com/rai/fooddelivery-go/internal/platform/eventbus"
	"github.com/rai/fooddelivery-go/modules/payments/application/commands"
	"github.com/rai/fooddelivery-go/modules/payments/application/queries"
	"github.com/rai/fooddelivery-go/modules/payments/domain"
	httphandler "github.com/rai/fooddelivery-go/modules/payments/infrastructure/http"
	"github.com/rai/fooddelivery-go/modules/shared/transaction"
)

// Module is the public API for the payments bounded context.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	Payments domain.Repository
	Orders   domain.OrderDirectory
	Gateway  domain.Gateway
	TxScope  transaction.Scope
	Registry eventbus.HandlerRegistry
	Logger   *slog.Logger
}

type module struct {
	createIntent    *commands.CreateIntentHandler
	verifyPayment   *commands.VerifyPaymentHandler
	getOrderPayment *queries.GetOrderPaymentHandler
}

// New creates a new payments module.
func New(cfg Config) Module {
	return &module{
		createIntent: commands.NewCreateIntentHandler(
			cfg.Payments, cfg.Orders, cfg.Gateway, cfg.TxScope, cfg.Logger),
		verifyPayment: commands.NewVerifyPaymentHandler(
			cfg.Payments, cfg.Gateway, cfg.TxScope, cfg.Registry, cfg.Logger),
		getOrderPayment: queries.NewGetOrderPaymentHandler(cfg.Payments),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.createIntent, m.verifyPayment, m.getOrderPayment)
}
