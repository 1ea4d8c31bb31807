package domain

import "context"

// RestaurantRepository defines persistence operations for restaurants.
type RestaurantRepository interface {
	Save(ctx context.Context, restaurant *Restaurant) error
	FindByID(ctx context.Context, id RestaurantID) (*Restaurant, error)
	ListActive(ctx context.Context, offset, limit int) ([]*Restaurant, int, error)
}

// MenuItemRepository defines persistence operations for menu items.
type MenuItemRepository interface {
	Save(ctx context.Context, item *MenuItem) error
	FindByID(ctx context.Context, id MenuItemID) (*MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID RestaurantID) ([]*MenuItem, error)
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id CategoryID) (*Category, error)
	ListAll(ctx context.Context) ([]*Category, error)
}
