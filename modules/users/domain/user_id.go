package domain

import (
	"github.com/google/uuid"

	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// UserID represents a unique identifier for a user.
type UserID struct {
	value string
}

func NewUserID() UserID {
	return UserID{value: uuid.New().String()}
}

func ParseUserID(s string) (UserID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return UserID{}, types.ErrInvalidID
	}
	return UserID{value: s}, nil
}

func (id UserID) String() string { return id.value }
func (id UserID) IsZero() bool   { return id.value == "" }
