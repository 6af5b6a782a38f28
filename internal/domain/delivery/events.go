package delivery

import "time"

// DeliveryStatusChangedEvent is emitted whenever a delivery's status moves.
type DeliveryStatusChangedEvent struct {
	OrderID        string
	DeliveryID     uint64
	TrackingNumber string
	Status         Status
	OccurredAt     time.Time
}

func (DeliveryStatusChangedEvent) EventName() string { return "delivery.status_changed" }

func NewDeliveryStatusChangedEvent(d *Delivery) DeliveryStatusChangedEvent {
	return DeliveryStatusChangedEvent{
		OrderID:        d.OrderID,
		DeliveryID:     d.ID,
		TrackingNumber: d.TrackingNumber,
		Status:         d.Status,
		OccurredAt:     time.Now().UTC(),
	}
}
