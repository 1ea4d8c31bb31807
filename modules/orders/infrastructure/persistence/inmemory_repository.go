package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/rai/fooddelivery-go/modules/orders/domain"
)

// InMemoryRepository is a thread-safe in-memory order store for tests and
// local development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	// numbers indexes order numbers for the uniqueness guarantee.
	numbers map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders:  make(map[string]*domain.Order),
		numbers: make(map[string]string),
	}
}

func (r *InMemoryRepository) Insert(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, exists := r.numbers[order.OrderNumber()]; exists && owner != order.ID().String() {
		return domain.ErrDuplicateOrderNumber
	}
	snapshot := *order
	r.orders[order.ID().String()] = &snapshot
	r.numbers[order.OrderNumber()] = order.ID().String()
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID().String()]; !exists {
		return domain.ErrOrderNotFound
	}
	snapshot := *order
	r.orders[order.ID().String()] = &snapshot
	return nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id domain.OrderID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id.String()]
	if !exists {
		return nil, domain.ErrOrderNotFound
	}
	snapshot := *order
	return &snapshot, nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID domain.UserRef, limit, offset int) ([]*domain.Order, error) {
	return r.listBy(func(o *domain.Order) bool { return o.UserID() == userID }, limit, offset)
}

func (r *InMemoryRepository) ListByRestaurant(_ context.Context, restaurantID domain.RestaurantRef, limit, offset int) ([]*domain.Order, error) {
	return r.listBy(func(o *domain.Order) bool { return o.RestaurantID() == restaurantID }, limit, offset)
}

func (r *InMemoryRepository) listBy(match func(*domain.Order) bool, limit, offset int) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Order
	for _, order := range r.orders {
		if match(order) {
			snapshot := *order
			matched = append(matched, &snapshot)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})

	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

var _ domain.Repository = (*InMemoryRepository)(nil)
