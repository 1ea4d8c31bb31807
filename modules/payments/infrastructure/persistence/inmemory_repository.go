package persistence

import (
	"context"
	"sync"

	"github.com/rai/fooddelivery-go/modules/payments/domain"
)

// InMemoryRepository is a thread-safe in-memory payment store for tests
// and local development. It enforces the same one-live-attempt-per-order
// rule as the Spanner schema.
type InMemoryRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
	byOrder  map[string][]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		payments: make(map[string]*domain.Payment),
		byOrder:  make(map[string][]string),
	}
}

func (r *InMemoryRepository) Insert(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.byOrder[payment.OrderID()] {
		if r.payments[id].Status().IsLive() {
			return domain.ErrDuplicatePayment
		}
	}
	snapshot := *payment
	r.payments[payment.ID().String()] = &snapshot
	r.byOrder[payment.OrderID()] = append(r.byOrder[payment.OrderID()], payment.ID().String())
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[payment.ID().String()]; !exists {
		return domain.ErrPaymentNotFound
	}
	snapshot := *payment
	r.payments[payment.ID().String()] = &snapshot
	return nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id domain.PaymentID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, exists := r.payments[id.String()]
	if !exists {
		return nil, domain.ErrPaymentNotFound
	}
	snapshot := *payment
	return &snapshot, nil
}

func (r *InMemoryRepository) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, payment := range r.payments {
		if payment.GatewayOrderID() == gatewayOrderID {
			snapshot := *payment
			return &snapshot, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (r *InMemoryRepository) FindLatestByOrderID(_ context.Context, orderID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOrder[orderID]
	if len(ids) == 0 {
		return nil, domain.ErrPaymentNotFound
	}
	var latest *domain.Payment
	for _, id := range ids {
		payment := r.payments[id]
		if latest == nil || payment.CreatedAt().After(latest.CreatedAt()) {
			latest = payment
		}
	}
	snapshot := *latest
	return &snapshot, nil
}

var _ domain.Repository = (*InMemoryRepository)(nil)
