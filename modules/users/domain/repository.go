package domain

import "context"

// Repository persists users.
//
// Implementations must return ErrUserNotFound when the user does not exist
// and ErrEmailTaken when an insert collides on the email address.
type Repository interface {
	// Insert stores a new user.
	Insert(ctx context.Context, user *User) error
	// Update stores changes to an existing user.
	Update(ctx context.Context, user *User) error
	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id UserID) (*User, error)
	// FindByEmail retrieves a user by email address.
	FindByEmail(ctx context.Context, email Email) (*User, error)
}
