package domain

import (
	"context"

	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// RestaurantView is the orders module's read model of a catalog restaurant.
// Only the fields the order workflow needs cross the module boundary.
type RestaurantView struct {
	ID                  RestaurantRef
	Name                string
	DeliveryFee         types.Money
	DeliveryTimeMinutes int
	Active              bool
}

// MenuItemView is the orders module's read model of a catalog menu item.
type MenuItemView struct {
	ID           string
	RestaurantID RestaurantRef
	Name         string
	Price        types.Money
	Available    bool
}

// Catalog is the orders module's port to the catalog store. Implementations
// translate the catalog's not-found errors into this module's sentinels.
type Catalog interface {
	GetRestaurant(ctx context.Context, id RestaurantRef) (RestaurantView, error)
	GetMenuItem(ctx context.Context, id string) (MenuItemView, error)
}

// UserDirectory resolves display names for order representations.
type UserDirectory interface {
	DisplayName(ctx context.Context, ref UserRef) (string, error)
}
