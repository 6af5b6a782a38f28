package id

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// UUIDGenerator issues random string ids for orders, payments, and customers.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator { return &UUIDGenerator{} }

func (*UUIDGenerator) NewID() string { return uuid.NewString() }

// Sequence issues monotonically increasing ids, starting at 1. Deliveries use
// it because tracking numbers embed a zero-padded numeric id.
type Sequence struct {
	n atomic.Uint64
}

func NewSequence() *Sequence { return &Sequence{} }

func (s *Sequence) Next() uint64 { return s.n.Add(1) }
