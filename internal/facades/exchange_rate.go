package facades

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// quotePrecision is the number of decimal places kept from the float32 feed.
const quotePrecision = 8

// ExchangeRatesGRPCFacade reads the external rate feed over gRPC.
type ExchangeRatesGRPCFacade struct {
	client pb.ExchangeServiceClient
}

// NewExchangeRatesGRPCFacade creates a new facade with a gRPC client.
func NewExchangeRatesGRPCFacade(client pb.ExchangeServiceClient) *ExchangeRatesGRPCFacade {
	return &ExchangeRatesGRPCFacade{client: client}
}

// GetExchangeRates fetches all rates, quoted as units of currency per 1 USD.
// Codes are upper-cased; quotes that are not finite positive numbers are dropped.
func (f *ExchangeRatesGRPCFacade) GetExchangeRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	resp, err := f.client.GetExchangeRates(ctx, &pb.Empty{})
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rates via gRPC", "error", err)
		return nil, fromStatus(err)
	}

	rates := make(map[string]decimal.Decimal, len(resp.Rates))
	for currency, rate := range resp.Rates {
		q, ok := quote(rate)
		if !ok {
			logger.Log.Warnw("dropping unusable quote", "currency", currency, "quote", rate)
			continue
		}
		rates[strings.ToUpper(currency)] = q
	}

	return rates, nil
}

// GetExchangeRateForCurrency fetches how many units of toCurrency one unit of
// fromCurrency buys.
func (f *ExchangeRatesGRPCFacade) GetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	req := &pb.CurrencyRequest{
		FromCurrency: strings.ToUpper(fromCurrency),
		ToCurrency:   strings.ToUpper(toCurrency),
	}

	resp, err := f.client.GetExchangeRateForCurrency(ctx, req)
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rate for currency via gRPC",
			"from", req.FromCurrency, "to", req.ToCurrency, "error", err)
		return decimal.Zero, fromStatus(err)
	}

	rate, ok := quote(resp.Rate)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: exchanger quoted %v for %s->%s",
			xerrors.ErrNotFound, resp.Rate, req.FromCurrency, req.ToCurrency)
	}
	return rate, nil
}

func quote(v float32) (decimal.Decimal, bool) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat32(v).Round(quotePrecision), true
}

// fromStatus maps "no such currency" answers onto ErrNotFound and leaves
// transport failures as they are.
func fromStatus(err error) error {
	switch status.Code(err) {
	case codes.NotFound, codes.InvalidArgument:
		return fmt.Errorf("%w: %w", xerrors.ErrNotFound, err)
	default:
		return err
	}
}
