package queries

import (
	"context"

	"github.com/rai/fooddelivery-go/modules/orders/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// OrderListDTO is a page of orders.
type OrderListDTO struct {
	Orders []OrderDTO `json:"orders"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// ListUserOrdersQuery retrieves a user's order history.
type ListUserOrdersQuery struct {
	UserID string
	Limit  int
	Offset int
}

// ListUserOrdersHandler handles user order history retrieval.
type ListUserOrdersHandler struct {
	orders domain.Repository
}

func NewListUserOrdersHandler(orders domain.Repository) *ListUserOrdersHandler {
	return &ListUserOrdersHandler{orders: orders}
}

func (h *ListUserOrdersHandler) Handle(ctx context.Context, q ListUserOrdersQuery) (*OrderListDTO, error) {
	userRef, err := domain.NewUserRef(q.UserID)
	if err != nil {
		return nil, err
	}
	limit, offset := clampPage(q.Limit, q.Offset)
	orders, err := h.orders.ListByUser(ctx, userRef, limit, offset)
	if err != nil {
		return nil, err
	}
	return toOrderListDTO(orders, limit, offset), nil
}

// ListRestaurantOrdersQuery retrieves a restaurant's incoming orders.
type ListRestaurantOrdersQuery struct {
	RestaurantID string
	Limit        int
	Offset       int
}

// ListRestaurantOrdersHandler handles restaurant order retrieval.
type ListRestaurantOrdersHandler struct {
	orders domain.Repository
}

func NewListRestaurantOrdersHandler(orders domain.Repository) *ListRestaurantOrdersHandler {
	return &ListRestaurantOrdersHandler{orders: orders}
}

func (h *ListRestaurantOrdersHandler) Handle(ctx context.Context, q ListRestaurantOrdersQuery) (*OrderListDTO, error) {
	restaurantRef, err := domain.NewRestaurantRef(q.RestaurantID)
	if err != nil {
		return nil, err
	}
	limit, offset := clampPage(q.Limit, q.Offset)
	orders, err := h.orders.ListByRestaurant(ctx, restaurantRef, limit, offset)
	if err != nil {
		return nil, err
	}
	return toOrderListDTO(orders, limit, offset), nil
}

func toOrderListDTO(orders []*domain.Order, limit, offset int) *OrderListDTO {
	dtos := make([]OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = *toOrderDTO(o)
	}
	return &OrderListDTO{Orders: dtos, Limit: limit, Offset: offset}
}
