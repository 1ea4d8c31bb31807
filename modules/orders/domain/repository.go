package domain

import "context"

// Repository persists order aggregates.
//
// Implementations must return ErrOrderNotFound when the order does not
// exist and ErrDuplicateOrderNumber when an insert collides on the
// order number.
type Repository interface {
	// Insert stores a new order.
	Insert(ctx context.Context, order *Order) error
	// Update stores changes to an existing order.
	Update(ctx context.Context, order *Order) error
	// FindByID retrieves an order by its ID.
	FindByID(ctx context.Context, id OrderID) (*Order, error)
	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID UserRef, limit, offset int) ([]*Order, error)
	// ListByRestaurant retrieves a restaurant's orders, newest first.
	ListByRestaurant(ctx context.Context, restaurantID RestaurantRef, limit, offset int) ([]*Order, error)
}
