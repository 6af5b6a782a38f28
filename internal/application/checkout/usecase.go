package checkout

import (
	"context"

	"github.com/tcsurf/surfstore/internal/application"
)

// PlaceOrderUseCase exposes checkout as a command/result use case for callers
// that program against the generic shape instead of the service.
type PlaceOrderUseCase struct {
	svc *Service
}

var _ application.UseCase[Input, *Result] = (*PlaceOrderUseCase)(nil)

func NewPlaceOrderUseCase(svc *Service) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{svc: svc}
}

func (uc *PlaceOrderUseCase) Execute(ctx context.Context, cmd Input) (*Result, error) {
	return uc.svc.Checkout(ctx, cmd)
}
