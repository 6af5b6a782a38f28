package application

import "context"

// UseCase is the shape every application entry point follows: one command in,
// one result out, errors explicit.
type UseCase[C any, R any] interface {
	Execute(ctx context.Context, cmd C) (R, error)
}
