package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tcsurf/surfstore/internal/domain/order"
)

var (
	ErrNotFound      = errors.New("payment: not found")
	ErrUnknownMethod = errors.New("payment: unknown method")
)

type Method string

const (
	MethodCreditCard Method = "credit_card"
	MethodPayPal     Method = "paypal"
	MethodApplePay   Method = "apple_pay"
)

func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodCreditCard:
		return MethodCreditCard, nil
	case MethodPayPal:
		return MethodPayPal, nil
	case MethodApplePay:
		return MethodApplePay, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// Details carries the method-specific fields supplied at checkout. Only the
// fields relevant to the chosen method are read.
type Details struct {
	CardNumber string
	CardType   string
	Email      string
	DeviceID   string
}

// Payment is one attempt to settle an order. Amount is a snapshot of the order
// total at construction time; mutating the order afterwards does not change it.
type Payment struct {
	ID         string
	OrderID    string
	Amount     decimal.Decimal
	Method     Method
	CardNumber string // masked, last four digits only
	CardType   string
	Email      string
	DeviceID   string
	Status     Status
	CreatedAt  time.Time
}

// capability maps a method to its fee computation, authorization predicate,
// and descriptive processing time. Dispatch happens by table lookup, keeping
// the variant set closed.
type capability struct {
	fee            func(amount decimal.Decimal) decimal.Decimal
	authorize      func(p *Payment) bool
	processingTime string
}

var capabilities = map[Method]capability{
	MethodCreditCard: {
		fee:            percentFee("0.029"),
		authorize:      func(*Payment) bool { return true },
		processingTime: "Instant",
	},
	MethodPayPal: {
		fee: func(amount decimal.Decimal) decimal.Decimal {
			return amount.Mul(decimal.RequireFromString("0.034")).Add(decimal.RequireFromString("0.30"))
		},
		authorize:      func(p *Payment) bool { return strings.Contains(p.Email, "@") },
		processingTime: "1-2 business days",
	},
	MethodApplePay: {
		fee:            func(decimal.Decimal) decimal.Decimal { return decimal.Zero },
		authorize:      func(*Payment) bool { return true },
		processingTime: "Instant",
	},
}

func percentFee(rate string) func(decimal.Decimal) decimal.Decimal {
	r := decimal.RequireFromString(rate)
	return func(amount decimal.Decimal) decimal.Decimal {
		return amount.Mul(r)
	}
}

// New creates a payment bound to the order, snapshotting its current total.
func New(id string, o *order.Order, method Method, details Details) (*Payment, error) {
	if _, ok := capabilities[method]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	p := &Payment{
		ID:        id,
		OrderID:   o.ID,
		Amount:    o.Total,
		Method:    method,
		Email:     details.Email,
		DeviceID:  details.DeviceID,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if method == MethodCreditCard {
		p.CardNumber = maskCard(details.CardNumber)
		p.CardType = details.CardType
		if p.CardType == "" {
			p.CardType = "Visa"
		}
	}
	return p, nil
}

func maskCard(number string) string {
	last4 := number
	if len(number) > 4 {
		last4 = number[len(number)-4:]
	}
	return "****-****-****-" + last4
}

// Fee is the method-specific transaction fee on the captured amount.
func (p *Payment) Fee() decimal.Decimal {
	return capabilities[p.Method].fee(p.Amount)
}

// TotalAmount is the captured amount plus the transaction fee.
func (p *Payment) TotalAmount() decimal.Decimal {
	return p.Amount.Add(p.Fee())
}

// ProcessingTime is informational only; it plays no part in control flow.
func (p *Payment) ProcessingTime() string {
	return capabilities[p.Method].processingTime
}

// Process settles the payment. Success requires a positive amount and the
// method's authorization predicate; on success the order moves to confirmed.
// Failure is an expected outcome, reported as false with status failed.
func (p *Payment) Process(o *order.Order) bool {
	if p.Amount.IsPositive() && capabilities[p.Method].authorize(p) {
		p.Status = StatusCompleted
		o.SetStatus(order.StatusConfirmed)
		return true
	}
	p.Status = StatusFailed
	return false
}

// Refund succeeds only from completed; any other starting status is a no-op.
func (p *Payment) Refund() bool {
	if p.Status != StatusCompleted {
		return false
	}
	p.Status = StatusRefunded
	return true
}

func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
