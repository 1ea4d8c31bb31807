package domain

import (
	"errors"
	"time"

	"github.com/rai/fooddelivery-go/modules/shared/types"
)

var (
	ErrMenuItemNameRequired = errors.New("menu item name is required")
	ErrInvalidPrice         = errors.New("menu item price must not be negative")
)

// MenuItem is a catalog record belonging to exactly one restaurant.
type MenuItem struct {
	ID           MenuItemID
	RestaurantID RestaurantID
	CategoryID   CategoryID
	Name         string
	Description  string
	Price        types.Money
	Available    bool
	Vegetarian   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewMenuItem creates a menu item record with a fresh ID.
func NewMenuItem(restaurantID RestaurantID, categoryID CategoryID, name, description string, price types.Money, vegetarian bool) (*MenuItem, error) {
	if name == "" {
		return nil, ErrMenuItemNameRequired
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	now := time.Now().UTC()
	return &MenuItem{
		ID:           NewMenuItemID(),
		RestaurantID: restaurantID,
		CategoryID:   categoryID,
		Name:         name,
		Description:  description,
		Price:        price,
		Available:    true,
		Vegetarian:   vegetarian,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Category groups menu items for browsing.
type Category struct {
	ID          CategoryID
	Name        string
	Description string
}

func NewCategory(name, description string) (*Category, error) {
	if name == "" {
		return nil, errors.New("category name is required")
	}
	return &Category{
		ID:          NewCategoryID(),
		Name:        name,
		Description: description,
	}, nil
}
