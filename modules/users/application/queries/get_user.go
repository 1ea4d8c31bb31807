// Package queries contains read operations for the users module.
package queries

import (
	"context"
	"time"

	"github.com/rai/fooddelivery-go/modules/users/domain"
)

// UserDTO is the API representation of a user profile.
type UserDTO struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	DefaultAddress string    `json:"default_address,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// GetUserQuery retrieves a user by ID.
type GetUserQuery struct {
	UserID string
}

// GetUserHandler handles user retrieval.
type GetUserHandler struct {
	users domain.Repository
}

func NewGetUserHandler(users domain.Repository) *GetUserHandler {
	return &GetUserHandler{users: users}
}

func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*UserDTO, error) {
	userID, err := domain.ParseUserID(q.UserID)
	if err != nil {
		return nil, err
	}
	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserDTO{
		ID:             user.ID().String(),
		Email:          user.Email().String(),
		Name:           user.Name().String(),
		Phone:          user.Phone(),
		DefaultAddress: user.DefaultAddress(),
		CreatedAt:      user.CreatedAt(),
	}, nil
}
