package outbox

import "context"

// Event is any domain event carrying a stable name identifier.
type Event interface {
	EventName() string
}

// Handler processes a published event. Errors are logged by the bus, not retried.
type Handler func(ctx context.Context, e Event) error

// Publisher hands events to interested subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber registers handlers for event names.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}
