package persistence

import (
	"context"
	"sync"

	"github.com/rai/fooddelivery-go/modules/users/domain"
)

// InMemoryRepository is a thread-safe in-memory user store for tests and
// local development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	emails map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:  make(map[string]*domain.User),
		emails: make(map[string]string),
	}
}

func (r *InMemoryRepository) Insert(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, exists := r.emails[user.Email().String()]; exists && owner != user.ID().String() {
		return domain.ErrEmailTaken
	}
	snapshot := *user
	r.users[user.ID().String()] = &snapshot
	r.emails[user.Email().String()] = user.ID().String()
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID().String()]; !exists {
		return domain.ErrUserNotFound
	}
	snapshot := *user
	r.users[user.ID().String()] = &snapshot
	return nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id.String()]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	snapshot := *user
	return &snapshot, nil
}

func (r *InMemoryRepository) FindByEmail(_ context.Context, email domain.Email) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.emails[email.String()]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	snapshot := *r.users[id]
	return &snapshot, nil
}

var _ domain.Repository = (*InMemoryRepository)(nil)
