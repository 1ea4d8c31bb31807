package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrInvalidUserRef indicates the user reference format is invalid.
	ErrInvalidUserRef = errors.New("invalid user reference format")
	// ErrInvalidRestaurantRef indicates the restaurant reference format is invalid.
	ErrInvalidRestaurantRef = errors.New("invalid restaurant reference format")
)

// UserRef references a user from another module. This is the orders
// module's own type, following the Anti-Corruption Layer pattern to prevent
// coupling to the users module's internal domain types.
type UserRef struct {
	value string
}

func NewUserRef(s string) (UserRef, error) {
	if _, err := uuid.Parse(s); err != nil {
		return UserRef{}, ErrInvalidUserRef
	}
	return UserRef{value: s}, nil
}

// MustNewUserRef creates a UserRef, panicking if invalid.
// Use only for trusted input (e.g., from database).
func MustNewUserRef(s string) UserRef {
	ref, err := NewUserRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

func (r UserRef) String() string { return r.value }
func (r UserRef) IsZero() bool   { return r.value == "" }

// RestaurantRef references a catalog restaurant by ID.
type RestaurantRef struct {
	value string
}

func NewRestaurantRef(s string) (RestaurantRef, error) {
	if _, err := uuid.Parse(s); err != nil {
		return RestaurantRef{}, ErrInvalidRestaurantRef
	}
	return RestaurantRef{value: s}, nil
}

// MustNewRestaurantRef creates a RestaurantRef, panicking if invalid.
// Use only for trusted input (e.g., from database).
func MustNewRestaurantRef(s string) RestaurantRef {
	ref, err := NewRestaurantRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

func (r RestaurantRef) String() string { return r.value }
func (r RestaurantRef) IsZero() bool   { return r.value == "" }
