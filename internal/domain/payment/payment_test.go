package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcsurf/surfstore/internal/domain/order"
)

func orderWithTotal(total int64) *order.Order {
	o := order.New("o1", "c1")
	o.Total = decimal.NewFromInt(total)
	return o
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(" Credit_Card ")
	require.NoError(t, err)
	assert.Equal(t, MethodCreditCard, m)

	_, err = ParseMethod("bitcoin")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestFeeMatrix(t *testing.T) {
	tests := []struct {
		method  Method
		details Details
		amount  int64
		want    string
	}{
		{MethodCreditCard, Details{CardNumber: "4111111111111111"}, 200, "5.8"},
		{MethodPayPal, Details{Email: "kai@example.com"}, 100, "3.7"},
		{MethodApplePay, Details{DeviceID: "dev-1"}, 100, "0"},
	}
	for _, tc := range tests {
		t.Run(string(tc.method), func(t *testing.T) {
			p, err := New("pay1", orderWithTotal(tc.amount), tc.method, tc.details)
			require.NoError(t, err)

			want := decimal.RequireFromString(tc.want)
			assert.True(t, p.Fee().Equal(want), "fee %s, want %s", p.Fee(), want)
			assert.True(t, p.TotalAmount().Equal(decimal.NewFromInt(tc.amount).Add(want)))
		})
	}
}

func TestNewMasksCardNumber(t *testing.T) {
	p, err := New("pay1", orderWithTotal(100), MethodCreditCard, Details{CardNumber: "4111111111111111"})
	require.NoError(t, err)
	assert.Equal(t, "****-****-****-1111", p.CardNumber)
	assert.Equal(t, "Visa", p.CardType, "card type defaults to Visa")

	p, err = New("pay2", orderWithTotal(100), MethodCreditCard, Details{CardNumber: "4111111111111111", CardType: "Amex"})
	require.NoError(t, err)
	assert.Equal(t, "Amex", p.CardType)
}

func TestNewRejectsUnknownMethod(t *testing.T) {
	_, err := New("pay1", orderWithTotal(100), Method("cheque"), Details{})
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestProcessSuccessConfirmsOrder(t *testing.T) {
	o := orderWithTotal(200)
	p, err := New("pay1", o, MethodCreditCard, Details{CardNumber: "4111111111111111"})
	require.NoError(t, err)

	assert.True(t, p.Process(o))
	assert.Equal(t, StatusCompleted, p.Status)
	assert.Equal(t, order.StatusConfirmed, o.Status)
}

func TestProcessFailures(t *testing.T) {
	t.Run("zero amount", func(t *testing.T) {
		o := orderWithTotal(0)
		p, err := New("pay1", o, MethodApplePay, Details{DeviceID: "dev-1"})
		require.NoError(t, err)

		assert.False(t, p.Process(o))
		assert.Equal(t, StatusFailed, p.Status)
		assert.Equal(t, order.StatusPending, o.Status, "failed payment leaves order untouched")
	})

	t.Run("paypal without @ in email", func(t *testing.T) {
		o := orderWithTotal(100)
		p, err := New("pay1", o, MethodPayPal, Details{Email: "not-an-email"})
		require.NoError(t, err)

		assert.False(t, p.Process(o))
		assert.Equal(t, StatusFailed, p.Status)
	})
}

func TestRefundOnlyFromCompleted(t *testing.T) {
	o := orderWithTotal(100)
	p, err := New("pay1", o, MethodCreditCard, Details{CardNumber: "4111111111111111"})
	require.NoError(t, err)

	assert.False(t, p.Refund(), "pending payment cannot refund")

	require.True(t, p.Process(o))
	assert.True(t, p.Refund())
	assert.Equal(t, StatusRefunded, p.Status)

	assert.False(t, p.Refund(), "refund is not idempotent-successful")
	assert.Equal(t, StatusRefunded, p.Status)
}

func TestAmountIsSnapshot(t *testing.T) {
	o := orderWithTotal(100)
	p, err := New("pay1", o, MethodApplePay, Details{})
	require.NoError(t, err)

	o.Total = decimal.NewFromInt(999)
	assert.True(t, p.Amount.Equal(decimal.NewFromInt(100)))
}
