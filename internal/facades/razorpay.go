package facades

import (
	"context"
	"fmt"
	"strings"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	"github.com/shopspring/decimal"
)

// RazorpayPayments is the subset of the razorpay payment resource we call.
type RazorpayPayments interface {
	Capture(paymentID string, amount int, data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Refund(paymentID string, amount int, data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway charges and refunds cards through Razorpay. The SDK is
// blocking and has no context support, so every call is raced against ctx.
type RazorpayGateway struct {
	payments RazorpayPayments
	timeout  time.Duration
}

// NewRazorpayGateway builds a gateway from API credentials.
func NewRazorpayGateway(key, secret string, timeout time.Duration) *RazorpayGateway {
	client := razorpay.NewClient(key, secret)
	return NewRazorpayGatewayWithPayments(client.Payment, timeout)
}

// NewRazorpayGatewayWithPayments builds a gateway over an existing payment resource.
func NewRazorpayGatewayWithPayments(payments RazorpayPayments, timeout time.Duration) *RazorpayGateway {
	return &RazorpayGateway{payments: payments, timeout: timeout}
}

// Charge captures an authorised payment for amount.
func (g *RazorpayGateway) Charge(ctx context.Context, paymentToken string, amount decimal.Decimal, currency string) (models.GatewayReceipt, error) {
	return g.call(ctx, "capture", paymentToken, amount, currency, g.payments.Capture)
}

// Refund returns amount of a captured payment to the card.
func (g *RazorpayGateway) Refund(ctx context.Context, externalID string, amount decimal.Decimal, currency string) (models.GatewayReceipt, error) {
	return g.call(ctx, "refund", externalID, amount, currency, g.payments.Refund)
}

type razorpayCall func(string, int, map[string]interface{}, map[string]string) (map[string]interface{}, error)

type razorpayResult struct {
	body map[string]interface{}
	err  error
}

func (g *RazorpayGateway) call(
	ctx context.Context,
	op, paymentID string,
	amount decimal.Decimal,
	currency string,
	fn razorpayCall,
) (models.GatewayReceipt, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	// Razorpay expects the smallest currency unit.
	minor := int(amount.Shift(2).Round(0).IntPart())
	data := map[string]interface{}{"currency": strings.ToUpper(currency)}

	done := make(chan razorpayResult, 1)
	go func() {
		body, err := fn(paymentID, minor, data, nil)
		done <- razorpayResult{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		logger.Log.Errorw("razorpay call timed out", "op", op, "payment_id", paymentID, "error", ctx.Err())
		return models.GatewayReceipt{}, fmt.Errorf("%w: %s %s: %v", xerrors.ErrGateway, op, paymentID, ctx.Err())
	case res := <-done:
		if res.err != nil {
			logger.Log.Errorw("razorpay call failed", "op", op, "payment_id", paymentID, "error", res.err)
			return models.GatewayReceipt{}, fmt.Errorf("%w: %s %s: %v", xerrors.ErrGateway, op, paymentID, res.err)
		}

		receipt := models.GatewayReceipt{
			ExternalID: fmt.Sprint(res.body["id"]),
			Status:     fmt.Sprint(res.body["status"]),
		}
		logger.Log.Infow("razorpay call succeeded", "op", op, "payment_id", paymentID, "external_id", receipt.ExternalID, "status", receipt.Status)
		return receipt, nil
	}
}
