package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domorder "github.com/tcsurf/surfstore/internal/domain/order"
	"github.com/tcsurf/surfstore/internal/infrastructure/outbox"
)

func TestRecordAccumulates(t *testing.T) {
	s := NewService()

	s.Record("p1", "Leash", 2)
	s.Record("p1", "Leash", 3)
	s.Record("p2", "Wax", 1)

	assert.Equal(t, 5, s.Count("p1"))
	assert.Equal(t, 1, s.Count("p2"))
	assert.Zero(t, s.Count("unseen"))
}

func TestRecordIgnoresBadInput(t *testing.T) {
	s := NewService()

	s.Record("", "Nothing", 5)
	s.Record("p1", "Leash", 0)
	s.Record("p1", "Leash", -3)

	assert.Zero(t, s.Count("p1"))
	assert.Empty(t, s.Top(10))
}

func TestTopSortsByCountThenID(t *testing.T) {
	s := NewService()
	s.Record("p1", "Leash", 2)
	s.Record("p2", "Wax", 7)
	s.Record("p3", "Fins", 2)

	top := s.Top(10)
	require.Len(t, top, 3)
	assert.Equal(t, "p2", top[0].ProductID)
	assert.Equal(t, "p1", top[1].ProductID, "ties break on product id")
	assert.Equal(t, "p3", top[2].ProductID)

	top = s.Top(1)
	require.Len(t, top, 1)
	assert.Equal(t, "p2", top[0].ProductID)
}

func TestWorkerConsumesOrderPlacedEvents(t *testing.T) {
	svc := NewService()
	bus := outbox.NewBus(nil)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	w := NewWorker(bus, svc, nil)
	w.Start()

	ord := domorder.New("o1", "c1")
	ord.Items = []domorder.LineItem{
		{ProductID: "p1", Name: "Leash", Quantity: 2},
		{ProductID: "p2", Name: "Wax", Quantity: 1},
	}
	require.NoError(t, bus.Publish(context.Background(), domorder.NewOrderPlacedEvent(ord)))

	require.Eventually(t, func() bool {
		return svc.Count("p1") == 2 && svc.Count("p2") == 1
	}, 2*time.Second, 10*time.Millisecond)
}
