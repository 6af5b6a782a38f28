package delivery

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcsurf/surfstore/internal/domain/order"
)

func newDelivery(t *testing.T, id uint64, method Method) (*Delivery, *order.Order) {
	t.Helper()
	o := order.New("o1", "c1")
	d, err := New(id, o, method, "1 Ocean Rd")
	require.NoError(t, err)
	return d, o
}

func TestParseMethodAndStatus(t *testing.T) {
	m, err := ParseMethod(" Express ")
	require.NoError(t, err)
	assert.Equal(t, MethodExpress, m)

	_, err = ParseMethod("drone")
	assert.ErrorIs(t, err, ErrUnknownMethod)

	s, err := ParseStatus("In_Transit")
	require.NoError(t, err)
	assert.Equal(t, StatusInTransit, s)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTrackingNumberFormat(t *testing.T) {
	tests := []struct {
		method Method
		id     uint64
		want   string
	}{
		{MethodStandard, 1, "STD000001"},
		{MethodExpress, 42, "EXP000042"},
		{MethodPickup, 123456, "PU123456"},
	}
	for _, tc := range tests {
		d, _ := newDelivery(t, tc.id, tc.method)
		assert.Equal(t, tc.want, d.TrackingNumber)
		assert.Equal(t, StatusPreparing, d.Status)
	}
}

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name   string
		method Method
		weight float64
		want   string
	}{
		{"standard at threshold", MethodStandard, 5.0, "5.99"},
		{"standard over threshold", MethodStandard, 7.0, "9.99"},
		{"standard light", MethodStandard, 1.0, "5.99"},
		{"express at threshold", MethodExpress, 3.0, "15.99"},
		{"express over threshold", MethodExpress, 5.0, "21.99"},
		{"pickup always free", MethodPickup, 50.0, "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, _ := newDelivery(t, 1, tc.method)
			want := decimal.RequireFromString(tc.want)
			got := d.ShippingCost(tc.weight)
			assert.True(t, got.Equal(want), "cost %s, want %s", got, want)
		})
	}
}

func TestEstimatedDaysAndLabels(t *testing.T) {
	std, _ := newDelivery(t, 1, MethodStandard)
	exp, _ := newDelivery(t, 2, MethodExpress)
	pu, _ := newDelivery(t, 3, MethodPickup)

	assert.Equal(t, 5, std.EstimatedDays())
	assert.Equal(t, 2, exp.EstimatedDays())
	assert.Equal(t, 1, pu.EstimatedDays())

	assert.Equal(t, "Standard Delivery", std.MethodLabel())
	assert.Equal(t, "Express Delivery", exp.MethodLabel())
	assert.Equal(t, "Store Pickup", pu.MethodLabel())
}

func TestNewRejectsUnknownMethod(t *testing.T) {
	_, err := New(1, order.New("o1", "c1"), Method("drone"), "somewhere")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestUpdateStatusDrivesOrder(t *testing.T) {
	d, o := newDelivery(t, 1, MethodStandard)
	o.SetStatus(order.StatusConfirmed)

	d.UpdateStatus(StatusDispatched, o)
	assert.Equal(t, StatusDispatched, d.Status)
	assert.Equal(t, order.StatusDispatched, o.Status)
	assert.Nil(t, d.DeliveredAt)

	d.UpdateStatus(StatusDelivered, o)
	assert.Equal(t, StatusDelivered, d.Status)
	assert.Equal(t, order.StatusDelivered, o.Status)
	require.NotNil(t, d.DeliveredAt)
}

func TestUpdateStatusInTransitLeavesOrderAlone(t *testing.T) {
	d, o := newDelivery(t, 1, MethodStandard)
	o.SetStatus(order.StatusConfirmed)

	d.UpdateStatus(StatusInTransit, o)
	assert.Equal(t, StatusInTransit, d.Status)
	assert.Equal(t, order.StatusConfirmed, o.Status)
}

func TestTrack(t *testing.T) {
	d, _ := newDelivery(t, 7, MethodExpress)
	assert.Equal(t, "Tracking EXP000007: preparing", d.Track())
}
