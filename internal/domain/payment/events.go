package payment

import "time"

// PaymentProcessedEvent is emitted after a payment attempt, successful or not.
type PaymentProcessedEvent struct {
	OrderID    string
	PaymentID  string
	Method     Method
	Status     Status
	OccurredAt time.Time
}

func (PaymentProcessedEvent) EventName() string { return "payment.processed" }

func NewPaymentProcessedEvent(p *Payment) PaymentProcessedEvent {
	return PaymentProcessedEvent{
		OrderID:    p.OrderID,
		PaymentID:  p.ID,
		Method:     p.Method,
		Status:     p.Status,
		OccurredAt: time.Now().UTC(),
	}
}
