package domain

import (
	"errors"
	"time"

	"github.com/rai/fooddelivery-go/modules/shared/types"
)

var (
	ErrRestaurantNameRequired    = errors.New("restaurant name is required")
	ErrRestaurantAddressRequired = errors.New("restaurant address is required")
	ErrInvalidDeliveryTime       = errors.New("delivery time must be positive")
)

// Restaurant is a catalog record. Orders reference restaurants by ID and
// copy the delivery fee and delivery time at order creation, so later edits
// here never rewrite existing orders.
type Restaurant struct {
	ID                  RestaurantID
	Name                string
	Description         string
	Address             string
	Phone               string
	Cuisine             string
	Rating              float64
	Active              bool
	Open                bool
	DeliveryTimeMinutes int
	DeliveryFee         types.Money
	MinimumOrder        types.Money
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewRestaurant creates a restaurant record with a fresh ID.
func NewRestaurant(name, description, address, phone, cuisine string, deliveryTimeMinutes int, deliveryFee, minimumOrder types.Money) (*Restaurant, error) {
	if name == "" {
		return nil, ErrRestaurantNameRequired
	}
	if address == "" {
		return nil, ErrRestaurantAddressRequired
	}
	if deliveryTimeMinutes <= 0 {
		return nil, ErrInvalidDeliveryTime
	}

	now := time.Now().UTC()
	return &Restaurant{
		ID:                  NewRestaurantID(),
		Name:                name,
		Description:         description,
		Address:             address,
		Phone:               phone,
		Cuisine:             cuisine,
		Active:              true,
		Open:                true,
		DeliveryTimeMinutes: deliveryTimeMinutes,
		DeliveryFee:         deliveryFee,
		MinimumOrder:        minimumOrder,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}
