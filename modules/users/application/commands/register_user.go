// Package commands contains write operations for the users module.
package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rai/fooddelivery-go/modules/users/domain"
)

// RegisterUserCommand represents the intention to register a new user.
type RegisterUserCommand struct {
	Email          string
	Name           string
	Phone          string
	DefaultAddress string
}

// RegisterUserHandler handles user registration.
type RegisterUserHandler struct {
	users  domain.Repository
	logger *slog.Logger
}

func NewRegisterUserHandler(users domain.Repository, logger *slog.Logger) *RegisterUserHandler {
	return &RegisterUserHandler{users: users, logger: logger}
}

func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (string, error) {
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return "", err
	}
	name, err := domain.NewName(cmd.Name)
	if err != nil {
		return "", err
	}

	if _, err := h.users.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	user := domain.NewUser(email, name, cmd.Phone, cmd.DefaultAddress)
	if err := h.users.Insert(ctx, user); err != nil {
		return "", err
	}

	h.logger.Info("user registered", slog.String("user_id", user.ID().String()))
	return user.ID().String(), nil
}
