// Package acl adapts other modules' read models into the orders module's
// own view types (Anti-Corruption Layer).
package acl

import (
	"context"
	"errors"

	catalogdomain "github.com/rai/fooddelivery-go/modules/catalog/domain"
	"github.com/rai/fooddelivery-go/modules/orders/domain"
)

// CatalogAdapter implements the orders module's Catalog port against the
// catalog module's repositories. Catalog errors become the orders module's
// own sentinels so callers never see foreign errors: an absent record maps
// to a not-found sentinel, while "present but not orderable" stays with the
// availability checks in pricing.
type CatalogAdapter struct {
	restaurants catalogdomain.RestaurantRepository
	menuItems   catalogdomain.MenuItemRepository
}

func NewCatalogAdapter(
	restaurants catalogdomain.RestaurantRepository,
	menuItems catalogdomain.MenuItemRepository,
) *CatalogAdapter {
	return &CatalogAdapter{restaurants: restaurants, menuItems: menuItems}
}

func (a *CatalogAdapter) GetRestaurant(ctx context.Context, id domain.RestaurantRef) (domain.RestaurantView, error) {
	restaurantID, err := catalogdomain.ParseRestaurantID(id.String())
	if err != nil {
		return domain.RestaurantView{}, domain.ErrInvalidRestaurantRef
	}
	restaurant, err := a.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrRestaurantNotFound) {
			return domain.RestaurantView{}, domain.ErrRestaurantNotFound
		}
		return domain.RestaurantView{}, err
	}

	return domain.RestaurantView{
		ID:                  id,
		Name:                restaurant.Name,
		DeliveryFee:         restaurant.DeliveryFee,
		DeliveryTimeMinutes: restaurant.DeliveryTimeMinutes,
		Active:              restaurant.Active,
	}, nil
}

func (a *CatalogAdapter) GetMenuItem(ctx context.Context, id string) (domain.MenuItemView, error) {
	menuItemID, err := catalogdomain.ParseMenuItemID(id)
	if err != nil {
		return domain.MenuItemView{}, domain.ErrMenuItemNotFound
	}
	item, err := a.menuItems.FindByID(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrMenuItemNotFound) {
			return domain.MenuItemView{}, domain.ErrMenuItemNotFound
		}
		return domain.MenuItemView{}, err
	}

	restaurantRef, err := domain.NewRestaurantRef(item.RestaurantID.String())
	if err != nil {
		return domain.MenuItemView{}, err
	}
	return domain.MenuItemView{
		ID:           item.ID.String(),
		RestaurantID: restaurantRef,
		Name:         item.Name,
		Price:        item.Price,
		Available:    item.Available,
	}, nil
}

var _ domain.Catalog = (*CatalogAdapter)(nil)
