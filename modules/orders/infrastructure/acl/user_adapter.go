package acl

import (
	"context"
	"errors"

	"github.com/rai/fooddelivery-go/modules/orders/domain"
	usersdomain "github.com/rai/fooddelivery-go/modules/users/domain"
)

// UserAdapter implements the orders module's UserDirectory port against
// the users module's repository.
type UserAdapter struct {
	users usersdomain.Repository
}

func NewUserAdapter(users usersdomain.Repository) *UserAdapter {
	return &UserAdapter{users: users}
}

func (a *UserAdapter) DisplayName(ctx context.Context, ref domain.UserRef) (string, error) {
	userID, err := usersdomain.ParseUserID(ref.String())
	if err != nil {
		return "", domain.ErrInvalidUserRef
	}
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usersdomain.ErrUserNotFound) {
			return "", domain.ErrInvalidUserRef
		}
		return "", err
	}
	return user.Name().String(), nil
}

var _ domain.UserDirectory = (*UserAdapter)(nil)
