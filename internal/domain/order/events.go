package order

import "time"

// PlacedLine is the event-side view of a line item, enough for downstream
// consumers (order tracking) without pulling in the full aggregate.
type PlacedLine struct {
	ProductID string
	Name      string
	Quantity  int
}

// OrderPlacedEvent is emitted once checkout has assembled an order.
type OrderPlacedEvent struct {
	OrderID    string
	CustomerID string
	Lines      []PlacedLine
	Total      string
	OccurredAt time.Time
}

func (OrderPlacedEvent) EventName() string { return "order.placed" }

func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	lines := make([]PlacedLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, PlacedLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
		})
	}
	return OrderPlacedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Lines:      lines,
		Total:      o.Total.String(),
		OccurredAt: time.Now().UTC(),
	}
}
