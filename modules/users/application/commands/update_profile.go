package commands

import (
	"context"
	"log/slog"

	"github.com/rai/fooddelivery-go/modules/users/domain"
)

// UpdateProfileCommand changes a user's mutable profile fields.
type UpdateProfileCommand struct {
	UserID         string
	Name           string
	Phone          string
	DefaultAddress string
}

// UpdateProfileHandler handles profile updates.
type UpdateProfileHandler struct {
	users  domain.Repository
	logger *slog.Logger
}

func NewUpdateProfileHandler(users domain.Repository, logger *slog.Logger) *UpdateProfileHandler {
	return &UpdateProfileHandler{users: users, logger: logger}
}

func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) error {
	userID, err := domain.ParseUserID(cmd.UserID)
	if err != nil {
		return err
	}
	name, err := domain.NewName(cmd.Name)
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.UpdateProfile(name, cmd.Phone, cmd.DefaultAddress)
	if err := h.users.Update(ctx, user); err != nil {
		return err
	}

	h.logger.Info("user profile updated", slog.String("user_id", cmd.UserID))
	return nil
}
