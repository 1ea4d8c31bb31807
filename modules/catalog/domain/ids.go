// Package domain contains the catalog's business entities: restaurants,
// menu items and categories.
package domain

import (
	"github.com/google/uuid"

	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// RestaurantID represents a unique identifier for a restaurant.
type RestaurantID struct {
	value string
}

func NewRestaurantID() RestaurantID {
	return RestaurantID{value: uuid.New().String()}
}

func ParseRestaurantID(s string) (RestaurantID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return RestaurantID{}, types.ErrInvalidID
	}
	return RestaurantID{value: s}, nil
}

func (id RestaurantID) String() string { return id.value }
func (id RestaurantID) IsZero() bool   { return id.value == "" }

// MenuItemID represents a unique identifier for a menu item.
type MenuItemID struct {
	value string
}

func NewMenuItemID() MenuItemID {
	return MenuItemID{value: uuid.New().String()}
}

func ParseMenuItemID(s string) (MenuItemID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return MenuItemID{}, types.ErrInvalidID
	}
	return MenuItemID{value: s}, nil
}

func (id MenuItemID) String() string { return id.value }
func (id MenuItemID) IsZero() bool   { return id.value == "" }

// CategoryID represents a unique identifier for a menu category.
type CategoryID struct {
	value string
}

func NewCategoryID() CategoryID {
	return CategoryID{value: uuid.New().String()}
}

func ParseCategoryID(s string) (CategoryID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return CategoryID{}, types.ErrInvalidID
	}
	return CategoryID{value: s}, nil
}

func (id CategoryID) String() string { return id.value }
func (id CategoryID) IsZero() bool   { return id.value == "" }
