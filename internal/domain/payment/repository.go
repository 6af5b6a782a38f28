package payment

import "context"

type Repository interface {
	Save(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id string) (*Payment, error)
	FindByOrder(ctx context.Context, orderID string) (*Payment, error)
}
