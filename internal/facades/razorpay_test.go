package facades

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
)

// --- Fake razorpay payment resource ---
type fakePayments struct {
	gotID     string
	gotAmount int
	gotData   map[string]interface{}
	delay     time.Duration
	err       error
}

func (f *fakePayments) respond(id string, amount int, data map[string]interface{}, status string) (map[string]interface{}, error) {
	f.gotID, f.gotAmount, f.gotData = id, amount, data
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return map[string]interface{}{"id": "rzp_" + id, "status": status}, nil
}

func (f *fakePayments) Capture(id string, amount int, data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	return f.respond(id, amount, data, "captured")
}

func (f *fakePayments) Refund(id string, amount int, data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	return f.respond(id, amount, data, "processed")
}

func TestRazorpayGateway_Charge(t *testing.T) {
	fake := &fakePayments{}
	g := NewRazorpayGatewayWithPayments(fake, time.Second)

	receipt, err := g.Charge(context.Background(), "pay_1", decimal.RequireFromString("200.50"), "inr")
	assert.NoError(t, err)
	assert.Equal(t, "rzp_pay_1", receipt.ExternalID)
	assert.Equal(t, "captured", receipt.Status)
	assert.Equal(t, 20050, fake.gotAmount)
	assert.Equal(t, "INR", fake.gotData["currency"])
}

func TestRazorpayGateway_Refund(t *testing.T) {
	fake := &fakePayments{}
	g := NewRazorpayGatewayWithPayments(fake, time.Second)

	receipt, err := g.Refund(context.Background(), "pay_2", decimal.RequireFromString("0.5"), "USD")
	assert.NoError(t, err)
	assert.Equal(t, "processed", receipt.Status)
	assert.Equal(t, 50, fake.gotAmount)
}

func TestRazorpayGateway_Errors(t *testing.T) {
	t.Run("sdk error", func(t *testing.T) {
		g := NewRazorpayGatewayWithPayments(&fakePayments{err: errors.New("BAD_REQUEST_ERROR")}, time.Second)

		_, err := g.Charge(context.Background(), "pay_3", decimal.NewFromInt(1), "INR")
		assert.ErrorIs(t, err, xerrors.ErrGateway)
	})

	t.Run("timeout", func(t *testing.T) {
		g := NewRazorpayGatewayWithPayments(&fakePayments{delay: 200 * time.Millisecond}, 10*time.Millisecond)

		_, err := g.Refund(context.Background(), "pay_4", decimal.NewFromInt(1), "INR")
		assert.ErrorIs(t, err, xerrors.ErrGateway)
	})
}
