package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/tcsurf/surfstore/internal/domain/payment"
)

// PaymentRepository keeps every payment by id, plus the active payment per
// order. Saving a second payment for the same order replaces the active
// reference; the earlier record stays retrievable by id, orphaned.
type PaymentRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Payment
	byOrder map[string]*domain.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		byID:    make(map[string]*domain.Payment),
		byOrder: make(map[string]*domain.Payment),
	}
}

func (r *PaymentRepository) Save(ctx context.Context, p *domain.Payment) error {
	_ = ctx
	if p == nil || p.ID == "" {
		return fmt.Errorf("payment repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := p.Clone()
	r.byID[p.ID] = clone
	r.byOrder[p.OrderID] = clone
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *PaymentRepository) FindByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byOrder[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}
