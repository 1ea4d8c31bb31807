package domain

import "errors"

var (
	// ErrUserNotFound indicates the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken indicates another user already registered this email.
	ErrEmailTaken = errors.New("email address already registered")
)
