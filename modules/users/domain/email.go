package domain

import (
	"errors"
	"strings"
)

// ErrInvalidEmail indicates a malformed email address.
var ErrInvalidEmail = errors.New("invalid email address")

// Email is a validated email address value object.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	at := strings.IndexByte(s, '@')
	if at < 1 || at == len(s)-1 || !strings.Contains(s[at+1:], ".") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }
