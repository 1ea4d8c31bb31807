package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 100

// ErrInvalidName indicates an empty or overlong display name.
var ErrInvalidName = errors.New("invalid user name")

// Name is a validated display name value object.
type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxNameLength {
		return Name{}, ErrInvalidName
	}
	return Name{value: s}, nil
}

func (n Name) String() string { return n.value }
func (n Name) IsZero() bool   { return n.value == "" }
