// Package commands contains write use cases for the catalog module.
package commands

import (
	"context"
	"fmt"

	"github.com/rai/fooddelivery-go/modules/catalog/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// CreateRestaurantCommand registers a new restaurant.
type CreateRestaurantCommand struct {
	Name                string
	Description         string
	Address             string
	Phone               string
	Cuisine             string
	DeliveryTimeMinutes int
	DeliveryFee         int64
	MinimumOrder        int64
	Currency            string
}

type CreateRestaurantHandler struct {
	repo domain.RestaurantRepository
}

func NewCreateRestaurantHandler(repo domain.RestaurantRepository) *CreateRestaurantHandler {
	return &CreateRestaurantHandler{repo: repo}
}

func (h *CreateRestaurantHandler) Handle(ctx context.Context, cmd CreateRestaurantCommand) (string, error) {
	deliveryFee, err := types.NewMoney(cmd.DeliveryFee, cmd.Currency)
	if err != nil {
		return "", fmt.Errorf("invalid delivery fee: %w", err)
	}
	minimumOrder, err := types.NewMoney(cmd.MinimumOrder, cmd.Currency)
	if err != nil {
		return "", fmt.Errorf("invalid minimum order: %w", err)
	}

	restaurant, err := domain.NewRestaurant(cmd.Name, cmd.Description, cmd.Address,
		cmd.Phone, cmd.Cuisine, cmd.DeliveryTimeMinutes, deliveryFee, minimumOrder)
	if err != nil {
		return "", err
	}

	if err := h.repo.Save(ctx, restaurant); err != nil {
		return "", fmt.Errorf("saving restaurant: %w", err)
	}
	return restaurant.ID.String(), nil
}
