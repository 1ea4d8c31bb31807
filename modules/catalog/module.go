// Package catalog provides restaurant, menu item and category management.
// This is the public API for the catalog bounded context.
package catalog

import (
	"log/slog"
	"net/http"

	"github.com/rai/fooddelivery-go/modules/catalog/application/commands"
	"github.com/rai/fooddelivery-go/modules/catalog/application/queries"
	"github.com/rai/fooddelivery-go/modules/catalog/domain"
	httphandler "github.com/rai/fooddelivery-go/modules/catalog/infrastructure/http"
)

// Module is the public API for the catalog bounded context.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	Restaurants domain.RestaurantRepository
	MenuItems   domain.MenuItemRepository
	Categories  domain.CategoryRepository
	Logger      *slog.Logger
}

type module struct {
	createRestaurant *commands.CreateRestaurantHandler
	createMenuItem   *commands.CreateMenuItemHandler
	createCategory   *commands.CreateCategoryHandler
	getRestaurant    *queries.GetRestaurantHandler
	listRestaurants  *queries.ListRestaurantsHandler
	listMenuItems    *queries.ListMenuItemsHandler
	listCategories   *queries.ListCategoriesHandler
}

// New creates a new catalog module.
func New(cfg Config) Module {
	return &module{
		createRestaurant: commands.NewCreateRestaurantHandler(cfg.Restaurants),
		createMenuItem:   commands.NewCreateMenuItemHandler(cfg.Restaurants, cfg.Categories, cfg.MenuItems),
		createCategory:   commands.NewCreateCategoryHandler(cfg.Categories),
		getRestaurant:    queries.NewGetRestaurantHandler(cfg.Restaurants),
		listRestaurants:  queries.NewListRestaurantsHandler(cfg.Restaurants),
		listMenuItems:    queries.NewListMenuItemsHandler(cfg.Restaurants, cfg.MenuItems),
		listCategories:   queries.NewListCategoriesHandler(cfg.Categories),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.createRestaurant, m.createMenuItem, m.createCategory,
		m.getRestaurant, m.listRestaurants, m.listMenuItems, m.listCategories)
}
