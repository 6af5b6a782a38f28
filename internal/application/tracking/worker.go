package tracking

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	domorder "github.com/tcsurf/surfstore/internal/domain/order"
	domoutbox "github.com/tcsurf/surfstore/internal/domain/outbox"
	"github.com/tcsurf/surfstore/internal/observability"
	"github.com/tcsurf/surfstore/internal/observability/logctx"
	workerpresentation "github.com/tcsurf/surfstore/internal/presentation/worker"
)

const workerComponent = "tracking_worker"

// Worker feeds the order-count projection from order placed events.
type Worker struct {
	subscriber domoutbox.Subscriber
	service    *Service
	log        observability.Logger
}

func NewWorker(subscriber domoutbox.Subscriber, service *Service, logger observability.Logger) *Worker {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Worker{
		subscriber: subscriber,
		service:    service,
		log:        logger.With(observability.F("component", workerComponent)),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil || w.service == nil {
		return
	}
	w.subscriber.Subscribe(domorder.OrderPlacedEvent{}.EventName(), w.handleOrderPlaced)
}

func (w *Worker) handleOrderPlaced(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domorder.OrderPlacedEvent)
	if !ok {
		return nil
	}

	sc := trace.SpanContextFromContext(ctx)
	ctx = workerpresentation.WithEventContext(ctx, w.log, sc.TraceID(), sc.SpanID(), map[string]string{
		"event":    e.EventName(),
		"use_case": "tracking.order_placed",
	})

	for _, line := range evt.Lines {
		w.service.Record(line.ProductID, line.Name, line.Quantity)
	}

	logctx.FromOr(ctx, w.log).Debug("order_counts_updated",
		observability.F("order_id", evt.OrderID),
		observability.F("lines", len(evt.Lines)),
	)
	return nil
}
