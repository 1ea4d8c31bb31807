// Command server runs the food delivery HTTP API.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rai/fooddelivery-go/internal/platform/eventbus"
	"github.com/rai/fooddelivery-go/internal/platform/httpserver"
	platformspanner "github.com/rai/fooddelivery-go/internal/platform/spanner"
	"github.com/rai/fooddelivery-go/modules/catalog"
	catalogpersistence "github.com/rai/fooddelivery-go/modules/catalog/infrastructure/persistence"
	"github.com/rai/fooddelivery-go/modules/notifications"
	"github.com/rai/fooddelivery-go/modules/orders"
	ordersacl "github.com/rai/fooddelivery-go/modules/orders/infrastructure/acl"
	orderspersistence "github.com/rai/fooddelivery-go/modules/orders/infrastructure/persistence"
	"github.com/rai/fooddelivery-go/modules/payments"
	paymentsacl "github.com/rai/fooddelivery-go/modules/payments/infrastructure/acl"
	paymentsgateway "github.com/rai/fooddelivery-go/modules/payments/infrastructure/gateway"
	paymentspersistence "github.com/rai/fooddelivery-go/modules/payments/infrastructure/persistence"
	"github.com/rai/fooddelivery-go/modules/users"
	userspersistence "github.com/rai/fooddelivery-go/modules/users/infrastructure/persistence"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	spannerCfg := platformspanner.Config{
		ProjectID:  envOr("SPANNER_PROJECT_ID", "local-project"),
		InstanceID: envOr("SPANNER_INSTANCE_ID", "local-instance"),
		DatabaseID: envOr("SPANNER_DATABASE_ID", "fooddelivery"),
	}
	client, err := platformspanner.NewClient(ctx, spannerCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	txScope := platformspanner.NewReadWriteTransactionScope(client)
	registry := eventbus.NewEventHandlerRegistry(logger)

	restaurantRepo := catalogpersistence.NewSpannerRestaurantRepository(client)
	menuItemRepo := catalogpersistence.NewSpannerMenuItemRepository(client)
	categoryRepo := catalogpersistence.NewSpannerCategoryRepository(client)
	orderRepo := orderspersistence.NewSpannerRepository(client)
	paymentRepo := paymentspersistence.NewSpannerRepository(client)
	userRepo := userspersistence.NewSpannerRepository(client)

	gateway := paymentsgateway.NewRazorpay(paymentsgateway.Config{
		KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		BaseURL:   os.Getenv("RAZORPAY_BASE_URL"),
	})

	catalogModule := catalog.New(catalog.Config{
		Restaurants: restaurantRepo,
		MenuItems:   menuItemRepo,
		Categories:  categoryRepo,
		Logger:      logger,
	})
	usersModule := users.New(users.Config{
		Users:  userRepo,
		Logger: logger,
	})
	ordersModule := orders.New(orders.Config{
		Orders:   orderRepo,
		Catalog:  ordersacl.NewCatalogAdapter(restaurantRepo, menuItemRepo),
		Users:    ordersacl.NewUserAdapter(userRepo),
		TxScope:  txScope,
		Registry: registry,
		Logger:   logger,
	})
	paymentsModule := payments.New(payments.Config{
		Payments: paymentRepo,
		Orders:   paymentsacl.NewOrderAdapter(orderRepo),
		Gateway:  gateway,
		TxScope:  txScope,
		Registry: registry,
		Logger:   logger,
	})
	notificationsModule := notifications.New(notifications.Config{Logger: logger})

	if err := ordersModule.RegisterEventHandlers(registry); err != nil {
		return err
	}
	if err := notificationsModule.RegisterEventHandlers(registry); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	catalogModule.RegisterRoutes(mux)
	usersModule.RegisterRoutes(mux)
	ordersModule.RegisterRoutes(mux)
	paymentsModule.RegisterRoutes(mux)

	handler := httpserver.Middleware(mux,
		httpserver.Recovery(logger),
		httpserver.Logging(logger),
		httpserver.Tracing("fooddelivery"),
		httpserver.CORS([]string{envOr("CORS_ORIGINS", "*")}),
	)

	serverCfg := httpserver.DefaultConfig()
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		serverCfg.Port = port
	}
	server := httpserver.New(serverCfg, handler, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	logger.Info("server started", slog.String("addr", server.Addr()))
	return g.Wait()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
