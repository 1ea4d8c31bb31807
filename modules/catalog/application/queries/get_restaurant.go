// Package queries contains read use cases for the catalog module.
package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/rai/fooddelivery-go/modules/catalog/domain"
)

// RestaurantDTO is a read model for restaurant data.
type RestaurantDTO struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Address             string    `json:"address"`
	Phone               string    `json:"phone"`
	Cuisine             string    `json:"cuisine"`
	Rating              float64   `json:"rating"`
	Active              bool      `json:"active"`
	Open                bool      `json:"open"`
	DeliveryTimeMinutes int       `json:"delivery_time_minutes"`
	DeliveryFee         MoneyDTO  `json:"delivery_fee"`
	MinimumOrder        MoneyDTO  `json:"minimum_order"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// GetRestaurantQuery retrieves a restaurant by ID.
type GetRestaurantQuery struct {
	RestaurantID string
}

type GetRestaurantHandler struct {
	repo domain.RestaurantRepository
}

func NewGetRestaurantHandler(repo domain.RestaurantRepository) *GetRestaurantHandler {
	return &GetRestaurantHandler{repo: repo}
}

func (h *GetRestaurantHandler) Handle(ctx context.Context, query GetRestaurantQuery) (*RestaurantDTO, error) {
	id, err := domain.ParseRestaurantID(query.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant ID: %w", err)
	}

	restaurant, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRestaurantDTO(restaurant), nil
}

func toRestaurantDTO(r *domain.Restaurant) *RestaurantDTO {
	return &RestaurantDTO{
		ID:                  r.ID.String(),
		Name:                r.Name,
		Description:         r.Description,
		Address:             r.Address,
		Phone:               r.Phone,
		Cuisine:             r.Cuisine,
		Rating:              r.Rating,
		Active:              r.Active,
		Open:                r.Open,
		DeliveryTimeMinutes: r.DeliveryTimeMinutes,
		DeliveryFee:         MoneyDTO{Amount: r.DeliveryFee.Amount(), Currency: r.DeliveryFee.Currency()},
		MinimumOrder:        MoneyDTO{Amount: r.MinimumOrder.Amount(), Currency: r.MinimumOrder.Currency()},
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}
