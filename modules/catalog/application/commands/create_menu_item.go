package commands

import (
	"context"
	"fmt"

	"github.com/rai/fooddelivery-go/modules/catalog/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// CreateMenuItemCommand adds a menu item to a restaurant.
type CreateMenuItemCommand struct {
	RestaurantID string
	CategoryID   string
	Name         string
	Description  string
	Price        int64
	Currency     string
	Vegetarian   bool
}

type CreateMenuItemHandler struct {
	restaurants domain.RestaurantRepository
	categories  domain.CategoryRepository
	items       domain.MenuItemRepository
}

func NewCreateMenuItemHandler(restaurants domain.RestaurantRepository, categories domain.CategoryRepository, items domain.MenuItemRepository) *CreateMenuItemHandler {
	return &CreateMenuItemHandler{restaurants: restaurants, categories: categories, items: items}
}

func (h *CreateMenuItemHandler) Handle(ctx context.Context, cmd CreateMenuItemCommand) (string, error) {
	restaurantID, err := domain.ParseRestaurantID(cmd.RestaurantID)
	if err != nil {
		return "", fmt.Errorf("invalid restaurant ID: %w", err)
	}
	categoryID, err := domain.ParseCategoryID(cmd.CategoryID)
	if err != nil {
		return "", fmt.Errorf("invalid category ID: %w", err)
	}

	if _, err := h.restaurants.FindByID(ctx, restaurantID); err != nil {
		return "", err
	}
	if _, err := h.categories.FindByID(ctx, categoryID); err != nil {
		return "", err
	}

	price, err := types.NewMoney(cmd.Price, cmd.Currency)
	if err != nil {
		return "", fmt.Errorf("invalid price: %w", err)
	}

	item, err := domain.NewMenuItem(restaurantID, categoryID, cmd.Name, cmd.Description, price, cmd.Vegetarian)
	if err != nil {
		return "", err
	}

	if err := h.items.Save(ctx, item); err != nil {
		return "", fmt.Errorf("saving menu item: %w", err)
	}
	return item.ID.String(), nil
}

// CreateCategoryCommand registers a new menu category.
type CreateCategoryCommand struct {
	Name        string
	Description string
}

type CreateCategoryHandler struct {
	repo domain.CategoryRepository
}

func NewCreateCategoryHandler(repo domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{repo: repo}
}

func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (string, error) {
	category, err := domain.NewCategory(cmd.Name, cmd.Description)
	if err != nil {
		return "", err
	}
	if err := h.repo.Save(ctx, category); err != nil {
		return "", fmt.Errorf("saving category: %w", err)
	}
	return category.ID.String(), nil
}
