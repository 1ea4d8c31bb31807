package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/rai/fooddelivery-go/modules/catalog/domain"
)

// RestaurantListDTO contains a paginated list of restaurants.
type RestaurantListDTO struct {
	Restaurants []*RestaurantDTO `json:"restaurants"`
	TotalCount  int              `json:"total_count"`
	Offset      int              `json:"offset"`
	Limit       int              `json:"limit"`
}

// ListRestaurantsQuery retrieves active restaurants.
type ListRestaurantsQuery struct {
	Offset int
	Limit  int
}

type ListRestaurantsHandler struct {
	repo domain.RestaurantRepository
}

func NewListRestaurantsHandler(repo domain.RestaurantRepository) *ListRestaurantsHandler {
	return &ListRestaurantsHandler{repo: repo}
}

func (h *ListRestaurantsHandler) Handle(ctx context.Context, query ListRestaurantsQuery) (*RestaurantListDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	restaurants, total, err := h.repo.ListActive(ctx, query.Offset, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]*RestaurantDTO, len(restaurants))
	for i, restaurant := range restaurants {
		dtos[i] = toRestaurantDTO(restaurant)
	}

	return &RestaurantListDTO{
		Restaurants: dtos,
		TotalCount:  total,
		Offset:      query.Offset,
		Limit:       limit,
	}, nil
}

// MenuItemDTO is a read model for menu item data.
type MenuItemDTO struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	CategoryID   string    `json:"category_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        MoneyDTO  `json:"price"`
	Available    bool      `json:"available"`
	Vegetarian   bool      `json:"vegetarian"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListMenuItemsQuery retrieves the menu of one restaurant.
type ListMenuItemsQuery struct {
	RestaurantID string
}

type ListMenuItemsHandler struct {
	restaurants domain.RestaurantRepository
	items       domain.MenuItemRepository
}

func NewListMenuItemsHandler(restaurants domain.RestaurantRepository, items domain.MenuItemRepository) *ListMenuItemsHandler {
	return &ListMenuItemsHandler{restaurants: restaurants, items: items}
}

func (h *ListMenuItemsHandler) Handle(ctx context.Context, query ListMenuItemsQuery) ([]*MenuItemDTO, error) {
	restaurantID, err := domain.ParseRestaurantID(query.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID: %w", err)
	}

	if _, err := h.restaurants.FindByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	items, err := h.items.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*MenuItemDTO, len(items))
	for i, item := range items {
		dtos[i] = &MenuItemDTO{
			ID:           item.ID.String(),
			RestaurantID: item.RestaurantID.String(),
			CategoryID:   item.CategoryID.String(),
			Name:         item.Name,
			Description:  item.Description,
			Price:        MoneyDTO{Amount: item.Price.Amount(), Currency: item.Price.Currency()},
			Available:    item.Available,
			Vegetarian:   item.Vegetarian,
			CreatedAt:    item.CreatedAt,
			UpdatedAt:    item.UpdatedAt,
		}
	}
	return dtos, nil
}

// CategoryDTO is a read model for category data.
type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListCategoriesHandler struct {
	repo domain.CategoryRepository
}

func NewListCategoriesHandler(repo domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

func (h *ListCategoriesHandler) Handle(ctx context.Context) ([]*CategoryDTO, error) {
	categories, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]*CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = &CategoryDTO{
			ID:          category.ID.String(),
			Name:        category.Name,
			Description: category.Description,
		}
	}
	return dtos, nil
}
