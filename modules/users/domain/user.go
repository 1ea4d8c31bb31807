// Package domain contains the users module's domain model.
package domain

import "time"

// User is the profile record of a registered customer.
type User struct {
	id             UserID
	email          Email
	name           Name
	phone          string
	defaultAddress string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewUser registers a new user profile.
func NewUser(email Email, name Name, phone, defaultAddress string) *User {
	now := time.Now().UTC()
	return &User{
		id:             NewUserID(),
		email:          email,
		name:           name,
		phone:          phone,
		defaultAddress: defaultAddress,
		createdAt:      now,
		updatedAt:      now,
	}
}

func (u *User) ID() UserID             { return u.id }
func (u *User) Email() Email           { return u.email }
func (u *User) Name() Name             { return u.name }
func (u *User) Phone() string          { return u.phone }
func (u *User) DefaultAddress() string { return u.defaultAddress }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) UpdatedAt() time.Time   { return u.updatedAt }

// UpdateProfile changes the user's mutable profile fields.
func (u *User) UpdateProfile(name Name, phone, defaultAddress string) {
	u.name = name
	u.phone = phone
	u.defaultAddress = defaultAddress
	u.updatedAt = time.Now().UTC()
}

// ReconstituteUserParams carries persisted state back into a User.
type ReconstituteUserParams struct {
	ID             UserID
	Email          Email
	Name           Name
	Phone          string
	DefaultAddress string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Reconstitute rebuilds a user from persistence without validation.
func Reconstitute(p ReconstituteUserParams) *User {
	return &User{
		id:             p.ID,
		email:          p.Email,
		name:           p.Name,
		phone:          p.Phone,
		defaultAddress: p.DefaultAddress,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}
